package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/queueing-sim/queueing-sim/sim"
)

// sweepCmd runs every configuration of a sweep plan in sequence
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Measure every configuration of a sweep plan",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		plan := DefaultSweepPlan()
		if path := viper.GetString("plan"); path != "" {
			loaded, err := LoadSweepPlan(path)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			plan = loaded
		}
		configs, err := plan.Configs(baseConfig())
		if err != nil {
			logrus.Fatalf("Invalid sweep plan: %v", err)
		}
		logrus.Infof("Sweeping %d configurations", len(configs))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var measurements []*sim.Measurement
		failed := 0
		for _, cfg := range configs {
			m, err := measure(ctx, cfg, nil)
			if err != nil && !errors.Is(err, sim.ErrPrecisionNotAchieved) {
				persist(measurements)
				logrus.Fatalf("Sweep aborted: %v", err)
			}
			if err != nil {
				failed++
				logrus.Warnf("%v", err)
			}
			printMeasurement(os.Stdout, m)
			measurements = append(measurements, m)
		}
		persist(measurements)
		if failed > 0 {
			logrus.Warnf("%d of %d configurations did not reach the target precision", failed, len(configs))
		}
	},
}

func init() {
	sweepCmd.Flags().String("plan", "", "YAML sweep plan (default: built-in batch matrix)")
	_ = viper.BindPFlag("plan", sweepCmd.Flags().Lookup("plan"))
}
