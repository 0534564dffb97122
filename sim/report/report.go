// Package report persists measurements: one CSV row per measurement, appended
// to a results file, and a YAML summary per run.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/queueing-sim/queueing-sim/sim"
)

// Columns is the CSV header. Interval columns use the suffixes
// L (lower), C (center), U (upper), P (precision); TS marks Student-t and
// C2 chi-square intervals.
var Columns = []string{
	"run_id", "rho", "discipline", "seed", "round_size", "rounds", "transient_events", "attempts", "converged",
	"E[N]", "E[T]", "E[X]", "V(N)", "V(T)", "V(X)",
	"E[W]", "E[W]_IC_TS_L", "E[W]_IC_TS_C", "E[W]_IC_TS_U", "E[W]_IC_TS_P",
	"V(W)", "V(W)_IC_TS_L", "V(W)_IC_TS_C", "V(W)_IC_TS_U", "V(W)_IC_TS_P",
	"V(W)_IC_C2_L", "V(W)_IC_C2_C", "V(W)_IC_C2_U", "V(W)_IC_C2_P",
	"E[Nq]", "E[Nq]_IC_TS_L", "E[Nq]_IC_TS_C", "E[Nq]_IC_TS_U", "E[Nq]_IC_TS_P",
	"V(Nq)", "V(Nq)_IC_TS_L", "V(Nq)_IC_TS_C", "V(Nq)_IC_TS_U", "V(Nq)_IC_TS_P",
	"V(Nq)_IC_C2_L", "V(Nq)_IC_C2_C", "V(Nq)_IC_C2_U", "V(Nq)_IC_C2_P",
	"analytic_E[W]", "analytic_V(W)", "analytic_E[Nq]", "analytic_V(Nq)",
	"elapsed_s",
}

// CSVWriter appends measurement rows to a CSV file, writing the header only
// when the file is new or empty. Every row carries the writer's run id.
type CSVWriter struct {
	Path  string
	RunID uuid.UUID
}

// NewCSVWriter returns a writer for path with a fresh run id.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{Path: path, RunID: uuid.New()}
}

// Append writes one row per measurement.
func (w *CSVWriter) Append(measurements ...*sim.Measurement) error {
	needHeader, err := isEmpty(w.Path)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening results file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if needHeader {
		if err := writer.Write(Columns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}
	for i, m := range measurements {
		if err := writer.Write(Row(w.RunID, m)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing results file: %w", err)
	}
	return nil
}

func isEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking results file: %w", err)
	}
	return info.Size() == 0, nil
}

// Row renders m in Columns order.
func Row(runID uuid.UUID, m *sim.Measurement) []string {
	row := []string{
		runID.String(),
		formatFloat(m.Utilization),
		string(m.Discipline),
		strconv.FormatUint(m.Seed, 10),
		strconv.Itoa(m.RoundSize),
		strconv.Itoa(m.Rounds),
		strconv.Itoa(m.TransientEvents),
		strconv.Itoa(m.Attempts),
		strconv.FormatBool(m.Converged),
	}
	row = appendFloats(row,
		m.Occupancy.Mean, m.Sojourn.Mean, m.Service.Mean,
		m.Occupancy.Variance, m.Sojourn.Variance, m.Service.Variance)

	row = appendFloats(row, m.Wait.Mean)
	row = appendInterval(row, m.Wait.Interval)
	row = appendFloats(row, m.WaitVariance.Variance)
	row = appendInterval(row, m.WaitVariance.StudentT)
	row = appendInterval(row, m.WaitVariance.ChiSquare)

	row = appendFloats(row, m.QueueLength.Mean)
	row = appendInterval(row, m.QueueLength.Interval)
	row = appendFloats(row, m.QueueLengthVariance.Variance)
	row = appendInterval(row, m.QueueLengthVariance.StudentT)
	row = appendInterval(row, m.QueueLengthVariance.ChiSquare)

	a := m.Analytic
	row = appendFloats(row, a.MeanWait, a.VarianceWait, a.MeanQueueLength, a.VarianceQueueLength)
	return appendFloats(row, m.Elapsed.Seconds())
}

func appendInterval(row []string, ci sim.ConfidenceInterval) []string {
	return appendFloats(row, ci.Lower, ci.Center(), ci.Upper, ci.Precision())
}

func appendFloats(row []string, vs ...float64) []string {
	for _, v := range vs {
		row = append(row, formatFloat(v))
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RunSummary is the YAML document written at the end of a run.
type RunSummary struct {
	RunID        string             `yaml:"run_id"`
	CreatedAt    time.Time          `yaml:"created_at"`
	Measurements []*sim.Measurement `yaml:"measurements"`
	Failed       int                `yaml:"failed"` // measurements that did not converge
}

// NewRunSummary builds a summary of measurements under runID.
func NewRunSummary(runID uuid.UUID, measurements []*sim.Measurement) *RunSummary {
	s := &RunSummary{
		RunID:        runID.String(),
		CreatedAt:    time.Now().UTC(),
		Measurements: measurements,
	}
	for _, m := range measurements {
		if !m.Converged {
			s.Failed++
		}
	}
	return s
}

// WriteYAML encodes the summary to w.
func (s *RunSummary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding run summary: %w", err)
	}
	return enc.Close()
}

// WriteSummaryFile writes the summary to path, replacing any existing file.
func WriteSummaryFile(path string, s *RunSummary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	return nil
}
