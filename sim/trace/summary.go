package trace

import "math"

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalAttempts     int     `yaml:"total_attempts"`
	TotalRounds       int     `yaml:"total_rounds"`
	FinalRoundSize    int     `yaml:"final_round_size"`
	ConvergedAttempt  int     `yaml:"converged_attempt"` // 0 if no attempt converged
	BestWaitPrecision float64 `yaml:"best_wait_precision"`
	// FailureCounts counts how often each stop condition failed across attempts.
	FailureCounts map[string]int `yaml:"failure_counts"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		FailureCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalAttempts = len(st.Attempts)
	summary.TotalRounds = len(st.Rounds)

	if len(st.Attempts) > 0 {
		summary.BestWaitPrecision = math.Inf(1)
		for _, a := range st.Attempts {
			if a.WaitPrecision < summary.BestWaitPrecision {
				summary.BestWaitPrecision = a.WaitPrecision
			}
			if a.Converged && summary.ConvergedAttempt == 0 {
				summary.ConvergedAttempt = a.Attempt
			}
			for _, f := range a.Failures {
				summary.FailureCounts[f]++
			}
		}
		summary.FinalRoundSize = st.Attempts[len(st.Attempts)-1].RoundSize
	}

	return summary
}
