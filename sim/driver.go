// Measurement driver: repeated rounds of batch means, confidence intervals over
// the per-round statistics, and the escalation loop that grows the round size
// until the intervals are tight and agree.

package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// ErrPrecisionNotAchieved is returned, wrapped, when the escalation cap is
// reached before the stop conditions hold. The last Measurement is still returned.
var ErrPrecisionNotAchieved = errors.New("precision not achieved")

// ErrSelfCheckFailed is returned, wrapped, when a self-check run does not
// reproduce its analytic values.
var ErrSelfCheckFailed = errors.New("self-check failed")

// Stop-condition identifiers listed in Measurement.Failures.
const (
	FailureWaitPrecision          = "wait-precision"
	FailureQueueLengthPrecision   = "queue-length-precision"
	FailureWaitVariance           = "wait-variance-disagree"
	FailureQueueLengthVariance    = "queue-length-variance-disagree"
	FailureWaitVariancePrecision  = "wait-variance-precision"
	FailureQueueVariancePrecision = "queue-length-variance-precision"
	FailureAnalyticWait           = "analytic-wait-outside"
	FailureAnalyticQueueLength    = "analytic-queue-length-outside"
	FailureAnalyticWaitVariance   = "analytic-wait-variance-outside"
	FailureAnalyticQueueVariance  = "analytic-queue-length-variance-outside"
	FailureAnalyticOccupancy      = "analytic-occupancy-outside"
	FailureAnalyticSojourn        = "analytic-sojourn-outside"
	FailureAnalyticService        = "analytic-service-outside"
)

// MeanEstimate is a batch-means estimate of a mean with its Student-t interval.
type MeanEstimate struct {
	Mean     float64            `yaml:"mean"`
	Interval ConfidenceInterval `yaml:"interval"`
}

// VarianceEstimate is the mean of the per-round variances with two intervals
// built by independent methods.
type VarianceEstimate struct {
	Variance  float64            `yaml:"variance"`
	StudentT  ConfidenceInterval `yaml:"student_t"`
	ChiSquare ConfidenceInterval `yaml:"chi_square"`
}

// Agrees reports whether the Student-t and chi-square intervals converge.
func (v VarianceEstimate) Agrees() bool {
	return Converges(v.StudentT, v.ChiSquare)
}

// Moments are plain across-round averages of the per-round mean and variance.
type Moments struct {
	Mean     float64 `yaml:"mean"`
	Variance float64 `yaml:"variance"`
}

// Measurement is the result of one attempt.
type Measurement struct {
	Utilization     float64    `yaml:"utilization"`
	Discipline      Discipline `yaml:"discipline"`
	Seed            uint64     `yaml:"seed"`
	RoundSize       int        `yaml:"round_size"`
	Rounds          int        `yaml:"rounds"`
	TransientEvents int        `yaml:"transient_events"`
	Attempts        int        `yaml:"attempts"`

	Wait                MeanEstimate     `yaml:"wait"`
	QueueLength         MeanEstimate     `yaml:"queue_length"`
	WaitVariance        VarianceEstimate `yaml:"wait_variance"`
	QueueLengthVariance VarianceEstimate `yaml:"queue_length_variance"`

	Occupancy Moments `yaml:"occupancy"`
	Sojourn   Moments `yaml:"sojourn"`
	Service   Moments `yaml:"service"`

	Analytic AnalyticValues `yaml:"analytic"`

	Converged     bool          `yaml:"converged"`
	Failures      []string      `yaml:"failures,omitempty"`
	SimulatedTime float64       `yaml:"simulated_time"`
	Elapsed       time.Duration `yaml:"elapsed"`
}

// Progress describes a completed round.
type Progress struct {
	Attempt   int
	Round     int
	Rounds    int
	RoundSize int
	Clock     float64
}

// ProgressFunc is invoked once per completed round.
type ProgressFunc func(Progress)

// Driver runs measurements for one Config.
type Driver struct {
	Config   Config
	Progress ProgressFunc           // optional
	Trace    *trace.SimulationTrace // optional
}

// NewDriver validates cfg and returns a Driver for it.
func NewDriver(cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Driver{Config: cfg}, nil
}

// Run executes attempts until the stop conditions hold. Each attempt restarts
// from the configured seed with a larger round size. When the escalation cap is
// hit, the last Measurement is returned along with an error wrapping
// ErrPrecisionNotAchieved.
func (d *Driver) Run(ctx context.Context) (*Measurement, error) {
	cfg := d.Config
	start := time.Now()
	roundSize := cfg.RoundSize

	for attempt := 1; ; attempt++ {
		m, err := d.attempt(ctx, attempt, roundSize)
		if err != nil {
			return nil, err
		}
		m.Elapsed = time.Since(start)
		d.recordAttempt(m)

		if m.Converged {
			logrus.Infof("ρ=%g %s converged after %d attempt(s), round size %d, E[W] %s",
				m.Utilization, m.Discipline, attempt, roundSize, m.Wait.Interval)
			return m, nil
		}
		if cfg.SelfCheck {
			return m, fmt.Errorf("%s: %v: %w", cfg.Discipline, m.Failures, ErrSelfCheckFailed)
		}
		if cfg.MaxEscalations >= 0 && attempt > cfg.MaxEscalations {
			return m, fmt.Errorf("ρ=%g %s after %d attempts (round size %d, failing %v): %w",
				cfg.Utilization, cfg.Discipline, attempt, roundSize, m.Failures, ErrPrecisionNotAchieved)
		}

		logrus.Infof("ρ=%g %s attempt %d failed %v; round size %d -> %d",
			cfg.Utilization, cfg.Discipline, attempt, m.Failures, roundSize, roundSize+cfg.RoundSizeIncrement)
		roundSize += cfg.RoundSizeIncrement
	}
}

// batchSeries holds one mean and one variance per round for a metric.
type batchSeries struct {
	means     *Sample
	variances *Sample
}

func (d *Driver) attempt(ctx context.Context, attempt, roundSize int) (*Measurement, error) {
	cfg := d.Config
	s := NewSimulator(cfg.Utilization, cfg.Discipline, cfg.durations())

	transient := cfg.transient()
	if transient > 0 {
		s.Advance(transient)
	} else {
		transient = s.Warmup(cfg.WarmupMaxEvents)
	}
	logrus.Debugf("attempt %d: transient of %d events ended at t=%.3f", attempt, transient, s.Clock)

	var series [metricCount]batchSeries
	for i := range series {
		series[i] = batchSeries{means: NewSample(cfg.Rounds), variances: NewSample(cfg.Rounds)}
	}

	for round := 1; round <= cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("measurement interrupted at attempt %d round %d: %w", attempt, round, err)
		}
		stats := s.RunRound(roundSize)
		for _, metric := range AllMetrics {
			mean, variance := stats.Moments(metric)
			series[metric].means.Append(mean)
			series[metric].variances.Append(variance)
		}
		if d.Trace != nil {
			d.Trace.RecordRound(trace.RoundRecord{
				Attempt:             attempt,
				Round:               round,
				RoundSize:           roundSize,
				Clock:               s.Clock,
				MeanWait:            series[MetricWait].means.Values()[round-1],
				VarianceWait:        series[MetricWait].variances.Values()[round-1],
				MeanQueueLength:     series[MetricQueueLength].means.Values()[round-1],
				VarianceQueueLength: series[MetricQueueLength].variances.Values()[round-1],
			})
		}
		if d.Progress != nil {
			d.Progress(Progress{Attempt: attempt, Round: round, Rounds: cfg.Rounds, RoundSize: roundSize, Clock: s.Clock})
		}
	}

	conf := cfg.confidence()
	m := &Measurement{
		Utilization:         cfg.Utilization,
		Discipline:          cfg.Discipline,
		Seed:                cfg.Seed,
		RoundSize:           roundSize,
		Rounds:              cfg.Rounds,
		TransientEvents:     transient,
		Attempts:            attempt,
		Wait:                meanEstimate(series[MetricWait], conf),
		QueueLength:         meanEstimate(series[MetricQueueLength], conf),
		WaitVariance:        varianceEstimate(series[MetricWait], roundSize-1, conf),
		QueueLengthVariance: varianceEstimate(series[MetricQueueLength], roundSize-1, conf),
		Occupancy:           moments(series[MetricOccupancy]),
		Sojourn:             moments(series[MetricSojourn]),
		Service:             moments(series[MetricService]),
		Analytic:            cfg.analytic(),
		SimulatedTime:       s.Clock,
	}
	if cfg.SelfCheck {
		m.Utilization = m.Analytic.Utilization
		m.Failures = analyticFailures(m, true)
	} else {
		m.Failures = stopFailures(m, cfg)
	}
	m.Converged = len(m.Failures) == 0
	return m, nil
}

func meanEstimate(bs batchSeries, conf float64) MeanEstimate {
	return MeanEstimate{Mean: bs.means.Mean(), Interval: StudentTInterval(bs.means, conf)}
}

// varianceEstimate builds the Student-t interval over the per-round variances
// and the chi-square interval on their mean, with dof degrees of freedom per
// round variance.
func varianceEstimate(bs batchSeries, dof int, conf float64) VarianceEstimate {
	v := bs.variances.Mean()
	return VarianceEstimate{
		Variance:  v,
		StudentT:  StudentTInterval(bs.variances, conf),
		ChiSquare: ChiSquareInterval(v, dof, conf),
	}
}

func moments(bs batchSeries) Moments {
	return Moments{Mean: bs.means.Mean(), Variance: bs.variances.Mean()}
}

// stopFailures lists the stop conditions m does not meet.
func stopFailures(m *Measurement, cfg Config) []string {
	var failures []string
	if m.Wait.Interval.Precision() > cfg.PrecisionTarget {
		failures = append(failures, FailureWaitPrecision)
	}
	if m.QueueLength.Interval.Precision() > cfg.PrecisionTarget {
		failures = append(failures, FailureQueueLengthPrecision)
	}
	if !m.WaitVariance.Agrees() {
		failures = append(failures, FailureWaitVariance)
	}
	if !m.QueueLengthVariance.Agrees() {
		failures = append(failures, FailureQueueLengthVariance)
	}
	if !cfg.StrictChecks {
		return failures
	}
	if m.WaitVariance.StudentT.Precision() > cfg.PrecisionTarget {
		failures = append(failures, FailureWaitVariancePrecision)
	}
	if m.QueueLengthVariance.StudentT.Precision() > cfg.PrecisionTarget {
		failures = append(failures, FailureQueueVariancePrecision)
	}
	return append(failures, analyticFailures(m, false)...)
}

// analyticFailures lists the analytic values that fall outside their
// estimates. With moments set, the plain occupancy, sojourn and service means
// are compared too, within the same relative slack Contains applies.
func analyticFailures(m *Measurement, withMoments bool) []string {
	a := m.Analytic
	var failures []string
	if !m.Wait.Interval.Contains(a.MeanWait) {
		failures = append(failures, FailureAnalyticWait)
	}
	if !m.QueueLength.Interval.Contains(a.MeanQueueLength) {
		failures = append(failures, FailureAnalyticQueueLength)
	}
	if !m.WaitVariance.StudentT.Contains(a.VarianceWait) {
		failures = append(failures, FailureAnalyticWaitVariance)
	}
	if !m.QueueLengthVariance.StudentT.Contains(a.VarianceQueueLength) {
		failures = append(failures, FailureAnalyticQueueVariance)
	}
	if !withMoments {
		return failures
	}
	if !pointInterval(m.Occupancy.Mean).Contains(a.MeanOccupancy) {
		failures = append(failures, FailureAnalyticOccupancy)
	}
	if !pointInterval(m.Sojourn.Mean).Contains(a.MeanSojourn) {
		failures = append(failures, FailureAnalyticSojourn)
	}
	if !pointInterval(m.Service.Mean).Contains(a.MeanService) {
		failures = append(failures, FailureAnalyticService)
	}
	return failures
}

func pointInterval(v float64) ConfidenceInterval {
	return NewConfidenceInterval(v, v)
}

func (d *Driver) recordAttempt(m *Measurement) {
	if d.Trace == nil {
		return
	}
	d.Trace.RecordAttempt(trace.AttemptRecord{
		Attempt:              m.Attempts,
		RoundSize:            m.RoundSize,
		TransientEvents:      m.TransientEvents,
		WaitPrecision:        m.Wait.Interval.Precision(),
		QueueLengthPrecision: m.QueueLength.Interval.Precision(),
		WaitVarianceAgree:    m.WaitVariance.Agrees(),
		QueueVarianceAgree:   m.QueueLengthVariance.Agrees(),
		Converged:            m.Converged,
		Failures:             m.Failures,
	})
}
