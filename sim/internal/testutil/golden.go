// Package testutil provides shared test infrastructure for the queue simulator:
// the self-check golden dataset and float assertion helpers.
package testutil

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gopkg.in/yaml.v3"
)

// GoldenDataset represents the structure of testdata/selfcheck_golden.yaml.
type GoldenDataset struct {
	Cases []GoldenCase `yaml:"cases"`
}

// GoldenCase is one self-check configuration and the values it must produce.
type GoldenCase struct {
	Discipline string        `yaml:"discipline"`
	RoundSize  int           `yaml:"round_size"`
	Rounds     int           `yaml:"rounds"`
	Metrics    GoldenMetrics `yaml:"metrics"`
}

// GoldenMetrics are the expected estimates of a golden case.
type GoldenMetrics struct {
	// Exact
	TransientEvents int     `yaml:"transient_events"`
	SimulatedTime   float64 `yaml:"simulated_time"`

	Utilization         float64 `yaml:"utilization"`
	MeanWait            float64 `yaml:"mean_wait"`
	VarianceWait        float64 `yaml:"variance_wait"`
	MeanQueueLength     float64 `yaml:"mean_queue_length"`
	VarianceQueueLength float64 `yaml:"variance_queue_length"`
	MeanOccupancy       float64 `yaml:"mean_occupancy"`
	VarianceOccupancy   float64 `yaml:"variance_occupancy"`
	MeanSojourn         float64 `yaml:"mean_sojourn"`
	VarianceSojourn     float64 `yaml:"variance_sojourn"`
	MeanService         float64 `yaml:"mean_service"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "selfcheck_golden.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Cases) == 0 {
		t.Fatal("Golden dataset has no cases")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
// A zero expectation is compared with relTol as an absolute tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 {
		if math.Abs(got) > relTol {
			t.Errorf("%s: got %v, want 0 (tol=%v)", name, got, relTol)
		}
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
