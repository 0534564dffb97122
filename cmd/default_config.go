package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/queueing-sim/queueing-sim/sim"
)

// SweepGroup is one block of the sweep matrix: every utilization is run with
// every discipline, transient length and round size.
type SweepGroup struct {
	Name         string    `yaml:"name"`
	Utilizations []float64 `yaml:"utilizations"`
	Disciplines  []string  `yaml:"disciplines"`
	// TransientEvents of 0 selects the warm-up detector.
	TransientEvents []int `yaml:"transient_events"`
	RoundSizes      []int `yaml:"round_sizes"`
}

// SweepPlan represents the full sweep YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type SweepPlan struct {
	Seed   uint64       `yaml:"seed"`
	Rounds int          `yaml:"rounds"`
	Groups []SweepGroup `yaml:"groups"`
}

var matrixSizes = []int{1_000, 5_000, 10_000, 15_000, 20_000}

// DefaultSweepPlan is the built-in batch matrix: a small-load correctness set
// followed by every transient length and round size at moderate to high load.
func DefaultSweepPlan() *SweepPlan {
	both := []string{string(sim.FCFS), string(sim.LCFS)}
	return &SweepPlan{
		Seed:   9999,
		Rounds: sim.DefaultRounds,
		Groups: []SweepGroup{
			{
				Name:            "small-load",
				Utilizations:    []float64{0.1, 0.01, 0.001, 0.0001},
				Disciplines:     both,
				TransientEvents: []int{10_000},
				RoundSizes:      []int{20_000},
			},
			{
				Name:            "matrix",
				Utilizations:    []float64{0.2, 0.4, 0.6, 0.8, 0.9},
				Disciplines:     both,
				TransientEvents: matrixSizes,
				RoundSizes:      matrixSizes,
			},
		},
	}
}

// LoadSweepPlan reads a sweep plan with strict field checking: unknown keys
// are errors.
func LoadSweepPlan(path string) (*SweepPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep plan: %w", err)
	}
	return parseSweepPlan(data)
}

func parseSweepPlan(data []byte) (*SweepPlan, error) {
	var plan SweepPlan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("parsing sweep plan: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks the plan is non-empty and every discipline is known.
func (p *SweepPlan) Validate() error {
	if len(p.Groups) == 0 {
		return fmt.Errorf("sweep plan has no groups")
	}
	for i, g := range p.Groups {
		if len(g.Utilizations) == 0 || len(g.Disciplines) == 0 || len(g.RoundSizes) == 0 {
			return fmt.Errorf("sweep group %d (%q): utilizations, disciplines and round_sizes must be non-empty", i, g.Name)
		}
		for _, d := range g.Disciplines {
			if !sim.IsValidDiscipline(d) {
				return fmt.Errorf("sweep group %d (%q): unknown discipline %q", i, g.Name, d)
			}
		}
	}
	return nil
}

// Configs expands the plan into one sim.Config per combination, in plan
// order. base supplies every field the plan does not set.
func (p *SweepPlan) Configs(base sim.Config) ([]sim.Config, error) {
	if p.Seed != 0 {
		base.Seed = p.Seed
	}
	if p.Rounds != 0 {
		base.Rounds = p.Rounds
	}

	var configs []sim.Config
	for _, g := range p.Groups {
		transients := g.TransientEvents
		if len(transients) == 0 {
			transients = []int{0}
		}
		for _, transient := range transients {
			for _, roundSize := range g.RoundSizes {
				for _, rho := range g.Utilizations {
					for _, name := range g.Disciplines {
						d, err := sim.ParseDiscipline(name)
						if err != nil {
							return nil, err
						}
						cfg := base
						cfg.Utilization = rho
						cfg.Discipline = d
						cfg.TransientEvents = transient
						cfg.RoundSize = roundSize
						if err := cfg.Validate(); err != nil {
							return nil, fmt.Errorf("sweep group %q: %w", g.Name, err)
						}
						configs = append(configs, cfg)
					}
				}
			}
		}
	}
	return configs, nil
}
