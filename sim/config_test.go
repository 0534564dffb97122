package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_FieldEquivalence(t *testing.T) {
	got := DefaultConfig(0.4, LCFS)
	want := Config{
		Utilization:        0.4,
		Discipline:         LCFS,
		RoundSize:          1000,
		Rounds:             30,
		Confidence:         0.95,
		PrecisionTarget:    0.05,
		RoundSizeIncrement: 100,
		MaxEscalations:     50,
	}
	assert.Equal(t, want, got)
	assert.NoError(t, got.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero utilization", func(c *Config) { c.Utilization = 0 }, "utilization"},
		{"unit utilization", func(c *Config) { c.Utilization = 1 }, "utilization"},
		{"unknown discipline", func(c *Config) { c.Discipline = "sjf" }, "discipline"},
		{"round size too small", func(c *Config) { c.RoundSize = 1 }, "round size"},
		{"single round", func(c *Config) { c.Rounds = 1 }, "rounds"},
		{"negative transient", func(c *Config) { c.TransientEvents = -1 }, "transient"},
		{"negative warm-up cap", func(c *Config) { c.WarmupMaxEvents = -5 }, "warm-up"},
		{"confidence out of range", func(c *Config) { c.Confidence = 1.2 }, "confidence"},
		{"zero precision", func(c *Config) { c.PrecisionTarget = 0 }, "precision"},
		{"zero increment", func(c *Config) { c.RoundSizeIncrement = 0 }, "increment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(0.5, FCFS)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_SelfCheckIgnoresUtilization(t *testing.T) {
	cfg := DefaultConfig(0, FCFS)
	cfg.SelfCheck = true
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, SelfCheckTransientEvents, cfg.transient())
}

func TestConfig_Transient(t *testing.T) {
	cfg := DefaultConfig(0.5, FCFS)
	assert.Equal(t, 0, cfg.transient(), "detector by default")
	cfg.TransientEvents = 250
	assert.Equal(t, 250, cfg.transient())
	cfg.SelfCheck = true
	assert.Equal(t, 250, cfg.transient(), "explicit length wins in self-check mode")
}

func TestConfig_Confidence_ZeroMeansDefault(t *testing.T) {
	cfg := DefaultConfig(0.5, FCFS)
	cfg.Confidence = 0
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultConfidence, cfg.confidence())
}
