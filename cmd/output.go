package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/trace"
)

func measurementLabel(cfg sim.Config) string {
	if cfg.SelfCheck {
		return fmt.Sprintf("self-check %s", cfg.Discipline)
	}
	return fmt.Sprintf("ρ=%g %s", cfg.Utilization, cfg.Discipline)
}

// printMeasurement writes a human-readable report of m.
func printMeasurement(w io.Writer, m *sim.Measurement) {
	fmt.Fprintf(w, "=== ρ=%g %s | round size %d x %d rounds | transient %d events | attempts %d ===\n",
		m.Utilization, m.Discipline, m.RoundSize, m.Rounds, m.TransientEvents, m.Attempts)
	fmt.Fprintf(w, "E[W]  = %-10.5f (analytic %.5f)  t-student %s\n", m.Wait.Mean, m.Analytic.MeanWait, m.Wait.Interval)
	fmt.Fprintf(w, "V(W)  = %-10.5f (analytic %.5f)  t-student %s\n", m.WaitVariance.Variance, m.Analytic.VarianceWait, m.WaitVariance.StudentT)
	fmt.Fprintf(w, "%38s chi-square %s\n", "", m.WaitVariance.ChiSquare)
	fmt.Fprintf(w, "E[Nq] = %-10.5f (analytic %.5f)  t-student %s\n", m.QueueLength.Mean, m.Analytic.MeanQueueLength, m.QueueLength.Interval)
	fmt.Fprintf(w, "V(Nq) = %-10.5f (analytic %.5f)  t-student %s\n", m.QueueLengthVariance.Variance, m.Analytic.VarianceQueueLength, m.QueueLengthVariance.StudentT)
	fmt.Fprintf(w, "%38s chi-square %s\n", "", m.QueueLengthVariance.ChiSquare)
	fmt.Fprintf(w, "E[N]  = %-10.5f V(N) = %.5f\n", m.Occupancy.Mean, m.Occupancy.Variance)
	fmt.Fprintf(w, "E[T]  = %-10.5f V(T) = %.5f\n", m.Sojourn.Mean, m.Sojourn.Variance)
	fmt.Fprintf(w, "E[X]  = %-10.5f V(X) = %.5f\n", m.Service.Mean, m.Service.Variance)
	if m.Converged {
		fmt.Fprintf(w, "converged in %.3fs\n\n", m.Elapsed.Seconds())
	} else {
		fmt.Fprintf(w, "NOT converged after %.3fs: %v\n\n", m.Elapsed.Seconds(), m.Failures)
	}
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintf(w, "=== Trace Summary ===\n")
	fmt.Fprintf(w, "Attempts: %d, rounds recorded: %d, final round size: %d\n",
		s.TotalAttempts, s.TotalRounds, s.FinalRoundSize)
	fmt.Fprintf(w, "Converged at attempt: %d, best E[W] precision: %.4f\n", s.ConvergedAttempt, s.BestWaitPrecision)
	if len(s.FailureCounts) == 0 {
		return
	}
	names := make([]string, 0, len(s.FailureCounts))
	for name := range s.FailureCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-40s %d\n", name, s.FailureCounts[name])
	}
}
