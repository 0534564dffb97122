package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queueing-sim/queueing-sim/sim/internal/testutil"
)

// TestSelfCheck_GoldenDataset replays every golden case through the driver.
func TestSelfCheck_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Cases {
		t.Run(tc.Discipline, func(t *testing.T) {
			d, err := ParseDiscipline(tc.Discipline)
			require.NoError(t, err)

			cfg := DefaultConfig(0, d)
			cfg.SelfCheck = true
			cfg.RoundSize = tc.RoundSize
			cfg.Rounds = tc.Rounds
			driver, err := NewDriver(cfg)
			require.NoError(t, err)

			m, err := driver.Run(context.Background())
			require.NoError(t, err)

			want := tc.Metrics
			const tol = 1e-9
			require.Equal(t, want.TransientEvents, m.TransientEvents)
			testutil.AssertFloat64Equal(t, "simulated_time", want.SimulatedTime, m.SimulatedTime, tol)
			testutil.AssertFloat64Equal(t, "utilization", want.Utilization, m.Utilization, tol)
			testutil.AssertFloat64Equal(t, "mean_wait", want.MeanWait, m.Wait.Mean, tol)
			testutil.AssertFloat64Equal(t, "variance_wait", want.VarianceWait, m.WaitVariance.Variance, tol)
			testutil.AssertFloat64Equal(t, "mean_queue_length", want.MeanQueueLength, m.QueueLength.Mean, tol)
			testutil.AssertFloat64Equal(t, "variance_queue_length", want.VarianceQueueLength, m.QueueLengthVariance.Variance, tol)
			testutil.AssertFloat64Equal(t, "mean_occupancy", want.MeanOccupancy, m.Occupancy.Mean, tol)
			testutil.AssertFloat64Equal(t, "variance_occupancy", want.VarianceOccupancy, m.Occupancy.Variance, tol)
			testutil.AssertFloat64Equal(t, "mean_sojourn", want.MeanSojourn, m.Sojourn.Mean, tol)
			testutil.AssertFloat64Equal(t, "variance_sojourn", want.VarianceSojourn, m.Sojourn.Variance, tol)
			testutil.AssertFloat64Equal(t, "mean_service", want.MeanService, m.Service.Mean, tol)
		})
	}
}
