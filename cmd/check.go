package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queueing-sim/queueing-sim/sim"
)

const (
	selfCheckRoundSize = 300
	selfCheckRounds    = 10
)

// checkCmd replays the deterministic self-check cycle under both disciplines
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the engine against a deterministic schedule with known results",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		failed := 0
		for _, d := range []sim.Discipline{sim.FCFS, sim.LCFS} {
			m, err := runSelfCheck(context.Background(), d)
			if m != nil {
				printMeasurement(os.Stdout, m)
			}
			if err != nil {
				logrus.Errorf("%v", err)
				failed++
			}
		}
		if failed > 0 {
			logrus.Fatalf("Self-check failed for %d discipline(s)", failed)
		}
		logrus.Info("Self-check passed.")
	},
}

func selfCheckConfig(d sim.Discipline) sim.Config {
	cfg := sim.DefaultConfig(0, d)
	cfg.SelfCheck = true
	cfg.RoundSize = selfCheckRoundSize
	cfg.Rounds = selfCheckRounds
	return cfg
}

func runSelfCheck(ctx context.Context, d sim.Discipline) (*sim.Measurement, error) {
	driver, err := sim.NewDriver(selfCheckConfig(d))
	if err != nil {
		return nil, err
	}
	return driver.Run(ctx)
}
