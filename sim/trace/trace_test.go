package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSimulationTrace_RecordAttempt_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for attempts
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelAttempts})

	// WHEN an attempt record is recorded
	st.RecordAttempt(AttemptRecord{Attempt: 1, RoundSize: 1000, WaitPrecision: 0.07, Failures: []string{"wait-precision"}})

	// THEN the trace contains one attempt record with correct data
	if len(st.Attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(st.Attempts))
	}
	if st.Attempts[0].RoundSize != 1000 {
		t.Errorf("expected round size 1000, got %d", st.Attempts[0].RoundSize)
	}
}

func TestSimulationTrace_RecordRound_OnlyAtRoundsLevel(t *testing.T) {
	tests := []struct {
		level      TraceLevel
		wantRounds int
		wantTries  int
	}{
		{TraceLevelNone, 0, 0},
		{"", 0, 0},
		{TraceLevelAttempts, 0, 1},
		{TraceLevelRounds, 2, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			// GIVEN a trace at the level
			st := NewSimulationTrace(TraceConfig{Level: tt.level})

			// WHEN two rounds and one attempt are recorded
			st.RecordRound(RoundRecord{Attempt: 1, Round: 1})
			st.RecordRound(RoundRecord{Attempt: 1, Round: 2})
			st.RecordAttempt(AttemptRecord{Attempt: 1})

			// THEN only the records the level asks for are kept
			assert.Len(t, st.Rounds, tt.wantRounds)
			assert.Len(t, st.Attempts, tt.wantTries)
		})
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelRounds})
	for i := 1; i <= 3; i++ {
		st.RecordRound(RoundRecord{Attempt: 1, Round: i, MeanWait: float64(i)})
	}
	for i, r := range st.Rounds {
		assert.Equal(t, i+1, r.Round)
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"attempts", true},
		{"rounds", true},
		{"", true},
		{"decisions", false},
		{"ROUNDS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestSimulationTrace_WriteYAML(t *testing.T) {
	// GIVEN a trace with one failed and one converged attempt
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelRounds})
	st.RecordRound(RoundRecord{Attempt: 1, Round: 1, RoundSize: 100, MeanWait: 0.9})
	st.RecordAttempt(AttemptRecord{Attempt: 1, RoundSize: 100, Failures: []string{"wait-precision"}})
	st.RecordAttempt(AttemptRecord{Attempt: 2, RoundSize: 200, Converged: true})

	// WHEN it is exported
	var buf bytes.Buffer
	require.NoError(t, st.WriteYAML(&buf))

	// THEN the document carries the level, the summary and the records
	var doc struct {
		Level   string       `yaml:"level"`
		Summary TraceSummary `yaml:"summary"`
		Trace   struct {
			Attempts []AttemptRecord `yaml:"attempts"`
			Rounds   []RoundRecord   `yaml:"rounds"`
		} `yaml:"trace"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "rounds", doc.Level)
	assert.Equal(t, 2, doc.Summary.ConvergedAttempt)
	assert.Len(t, doc.Trace.Attempts, 2)
	assert.Equal(t, 0.9, doc.Trace.Rounds[0].MeanWait)
	assert.True(t, strings.Contains(buf.String(), "wait-precision"))
}
