package sim

import (
	"fmt"
	"math"
)

// Defaults applied by DefaultConfig.
const (
	DefaultRoundSize          = 1000
	DefaultRounds             = 30
	DefaultPrecisionTarget    = 0.05
	DefaultRoundSizeIncrement = 100
	DefaultMaxEscalations     = 50
	// SelfCheckTransientEvents drains the first cycle of the self-check schedule
	// (three arrivals, three departures) so every round starts on an empty system.
	SelfCheckTransientEvents = 6
)

// Config groups everything one measurement needs.
type Config struct {
	Utilization float64    `yaml:"utilization"` // arrival rate λ in (0, 1); service rate is 1
	Discipline  Discipline `yaml:"discipline"`  // "fcfs" or "lcfs"
	RoundSize   int        `yaml:"round_size"`  // departures per round (must be > 1)
	Rounds      int        `yaml:"rounds"`      // rounds per attempt (must be > 1)
	Seed        uint64     `yaml:"seed"`

	// TransientEvents > 0 replaces the warm-up detector with a fixed-length transient.
	TransientEvents int `yaml:"transient_events"`
	// WarmupMaxEvents > 0 caps the warm-up detector.
	WarmupMaxEvents int `yaml:"warmup_max_events"`

	Confidence         float64 `yaml:"confidence"`           // 0 means DefaultConfidence
	PrecisionTarget    float64 `yaml:"precision_target"`     // max relative half-width of the mean intervals
	RoundSizeIncrement int     `yaml:"round_size_increment"` // growth of RoundSize per escalation
	MaxEscalations     int     `yaml:"max_escalations"`      // negative = unbounded

	// StrictChecks also requires variance Student-t precision within target and
	// the analytic values inside their intervals.
	StrictChecks bool `yaml:"strict_checks"`
	// SelfCheck swaps the random process for SelfCheckDurations and never escalates.
	SelfCheck bool `yaml:"self_check"`
}

// DefaultConfig returns a Config for utilization and discipline with every
// other field at its default.
func DefaultConfig(utilization float64, discipline Discipline) Config {
	return Config{
		Utilization:        utilization,
		Discipline:         discipline,
		RoundSize:          DefaultRoundSize,
		Rounds:             DefaultRounds,
		Confidence:         DefaultConfidence,
		PrecisionTarget:    DefaultPrecisionTarget,
		RoundSizeIncrement: DefaultRoundSizeIncrement,
		MaxEscalations:     DefaultMaxEscalations,
	}
}

// Validate checks ranges. It does not modify the Config.
func (c Config) Validate() error {
	if !c.SelfCheck {
		if math.IsNaN(c.Utilization) || c.Utilization <= 0 || c.Utilization >= 1 {
			return fmt.Errorf("utilization must be in (0, 1), got %g", c.Utilization)
		}
	}
	if !validDisciplines[c.Discipline] {
		return fmt.Errorf("unknown discipline %q", c.Discipline)
	}
	if c.RoundSize < 2 {
		return fmt.Errorf("round size must be at least 2, got %d", c.RoundSize)
	}
	if c.Rounds < 2 {
		return fmt.Errorf("rounds must be at least 2, got %d", c.Rounds)
	}
	if c.TransientEvents < 0 {
		return fmt.Errorf("transient events must be >= 0, got %d", c.TransientEvents)
	}
	if c.WarmupMaxEvents < 0 {
		return fmt.Errorf("warm-up max events must be >= 0, got %d", c.WarmupMaxEvents)
	}
	if c.Confidence != 0 && (c.Confidence <= 0 || c.Confidence >= 1) {
		return fmt.Errorf("confidence must be in (0, 1), got %g", c.Confidence)
	}
	if c.PrecisionTarget <= 0 || math.IsNaN(c.PrecisionTarget) {
		return fmt.Errorf("precision target must be > 0, got %g", c.PrecisionTarget)
	}
	if c.RoundSizeIncrement < 1 {
		return fmt.Errorf("round size increment must be >= 1, got %d", c.RoundSizeIncrement)
	}
	return nil
}

func (c Config) confidence() float64 {
	if c.Confidence == 0 {
		return DefaultConfidence
	}
	return c.Confidence
}

// transient returns the fixed transient length, or 0 to use the detector.
func (c Config) transient() int {
	if c.TransientEvents > 0 {
		return c.TransientEvents
	}
	if c.SelfCheck {
		return SelfCheckTransientEvents
	}
	return 0
}

// durations builds the DurationSource for this configuration.
func (c Config) durations() DurationSource {
	if c.SelfCheck {
		return SelfCheckDurations()
	}
	return NewRandomDurations(NewSimulationKey(c.Seed), c.Utilization)
}

// analytic returns the closed-form reference values for this configuration.
func (c Config) analytic() AnalyticValues {
	if c.SelfCheck {
		return SelfCheckAnalytic(c.Discipline)
	}
	return MM1Analytic(c.Utilization, c.Discipline)
}
