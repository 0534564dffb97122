package trace

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// TraceLevel controls the verbosity of measurement tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelAttempts captures one record per attempt of the escalation loop.
	TraceLevelAttempts TraceLevel = "attempts"
	// TraceLevelRounds additionally captures one record per completed round.
	TraceLevelRounds TraceLevel = "rounds"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:     true,
	TraceLevelAttempts: true,
	TraceLevelRounds:   true,
	"":                 true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects attempt and round records during a measurement.
type SimulationTrace struct {
	Config   TraceConfig     `yaml:"-"`
	Attempts []AttemptRecord `yaml:"attempts"`
	Rounds   []RoundRecord   `yaml:"rounds,omitempty"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Attempts: make([]AttemptRecord, 0),
		Rounds:   make([]RoundRecord, 0),
	}
}

// RecordAttempt appends an attempt record. No-op at TraceLevelNone.
func (st *SimulationTrace) RecordAttempt(record AttemptRecord) {
	if st.Config.Level == TraceLevelNone || st.Config.Level == "" {
		return
	}
	st.Attempts = append(st.Attempts, record)
}

// RecordRound appends a round record. Only kept at TraceLevelRounds.
func (st *SimulationTrace) RecordRound(record RoundRecord) {
	if st.Config.Level != TraceLevelRounds {
		return
	}
	st.Rounds = append(st.Rounds, record)
}

// WriteYAML exports the trace and its summary as one YAML document.
func (st *SimulationTrace) WriteYAML(w io.Writer) error {
	doc := struct {
		Level   TraceLevel       `yaml:"level"`
		Summary *TraceSummary    `yaml:"summary"`
		Trace   *SimulationTrace `yaml:"trace"`
	}{st.Config.Level, Summarize(st), st}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	return enc.Close()
}
