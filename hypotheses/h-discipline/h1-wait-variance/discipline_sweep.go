// H1 Discipline Wait-Variance Sweep
//
// Hypothesis: the service discipline leaves E[W] unchanged but LCFS inflates
// V(W) by a factor (2-ρ+ρ²)/((2-ρ)(1-ρ)) over FCFS, so the gap widens as the
// load approaches 1.
//
// Refuted if: at any swept utilization the FCFS and LCFS E[W] intervals do not
// converge, or the LCFS/FCFS V(W) ratio falls outside its Student-t bounds.
//
// This program measures both disciplines at each utilization and writes one
// CSV row per pair. The ratio columns are compared against the analytic ratio.
//
// Usage: go run discipline_sweep.go --output h1.csv --seed 7
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/queueing-sim/queueing-sim/sim"
)

func main() {
	output := flag.String("output", "h1_wait_variance.csv", "Output CSV file")
	seed := flag.Uint64("seed", 7, "Seed shared by both disciplines")
	roundSize := flag.Int("round-size", 5000, "Departures per round")
	flag.Parse()

	f, err := os.Create(*output)
	if err != nil {
		logrus.Fatalf("Create %s: %v", *output, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	_ = w.Write([]string{
		"rho",
		"fcfs_E[W]", "lcfs_E[W]", "means_converge",
		"fcfs_V(W)", "lcfs_V(W)", "ratio", "analytic_ratio",
		"ratio_L", "ratio_U", "ratio_inside",
	})

	for _, rho := range []float64{0.2, 0.4, 0.6, 0.8, 0.9} {
		fcfs := measure(rho, sim.FCFS, *seed, *roundSize)
		lcfs := measure(rho, sim.LCFS, *seed, *roundSize)
		fmt.Fprintf(os.Stderr, "ρ=%.1f: E[W] %s vs %s\n", rho, fcfs.Wait.Interval, lcfs.Wait.Interval)

		analyticRatio := lcfs.Analytic.VarianceWait / fcfs.Analytic.VarianceWait
		// Interval of the ratio from the endpoints of both Student-t intervals.
		ratioL := lcfs.WaitVariance.StudentT.Lower / fcfs.WaitVariance.StudentT.Upper
		ratioU := lcfs.WaitVariance.StudentT.Upper / fcfs.WaitVariance.StudentT.Lower
		_ = w.Write([]string{
			strconv.FormatFloat(rho, 'f', 1, 64),
			fmtFloat(fcfs.Wait.Mean), fmtFloat(lcfs.Wait.Mean),
			strconv.FormatBool(sim.Converges(fcfs.Wait.Interval, lcfs.Wait.Interval)),
			fmtFloat(fcfs.WaitVariance.Variance), fmtFloat(lcfs.WaitVariance.Variance),
			fmtFloat(lcfs.WaitVariance.Variance / fcfs.WaitVariance.Variance), fmtFloat(analyticRatio),
			fmtFloat(ratioL), fmtFloat(ratioU),
			strconv.FormatBool(ratioL <= analyticRatio && analyticRatio <= ratioU),
		})
	}
	fmt.Fprintf(os.Stderr, "Sweep complete. Output in %s\n", *output)
}

func measure(rho float64, d sim.Discipline, seed uint64, roundSize int) *sim.Measurement {
	cfg := sim.DefaultConfig(rho, d)
	cfg.Seed = seed
	cfg.RoundSize = roundSize
	driver, err := sim.NewDriver(cfg)
	if err != nil {
		logrus.Fatalf("ρ=%g %s: %v", rho, d, err)
	}
	m, err := driver.Run(context.Background())
	if m == nil {
		logrus.Fatalf("ρ=%g %s: %v", rho, d, err)
	}
	if err != nil {
		logrus.Warnf("%v", err)
	}
	return m
}

func fmtFloat(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
