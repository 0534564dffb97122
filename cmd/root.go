package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/report"
	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// optional config file; default $HOME/.queueing-sim.yaml
var cfgFile string

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queueing-sim",
	Short: "Discrete-event simulator for a single-server M/M/1 queue",
	Long: `queueing-sim estimates waiting time, queue length and occupancy of an
M/M/1 queue with batch means, growing the batch size until the 95% confidence
intervals reach the target precision and the variance estimators agree.`,
}

// runCmd measures one utilization and discipline
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure one utilization and discipline",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		d, err := sim.ParseDiscipline(viper.GetString("discipline"))
		if err != nil {
			logrus.Fatalf("Invalid discipline: %v", err)
		}
		cfg := baseConfig()
		cfg.Utilization = viper.GetFloat64("rho")
		cfg.Discipline = d

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		tr := newTrace()
		m, err := measure(ctx, cfg, tr)
		if m != nil {
			printMeasurement(os.Stdout, m)
			persist([]*sim.Measurement{m})
		}
		writeTrace(tr)
		if err != nil {
			logrus.Fatalf("Measurement failed: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.queueing-sim.yaml)")
	pf.String("log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	pf.String("output", "", "CSV file results are appended to (empty = none)")
	pf.String("summary", "", "YAML run summary file (empty = none)")
	pf.Bool("progress", true, "Show a progress bar on stderr")

	pf.Uint64("seed", 42, "Seed for arrival and service draws")
	pf.Int("round-size", sim.DefaultRoundSize, "Departures per round")
	pf.Int("rounds", sim.DefaultRounds, "Rounds per attempt")
	pf.Int("transient", 0, "Fixed transient length in events (0 = warm-up detector)")
	pf.Int("warmup-max", 0, "Cap on events consumed by the warm-up detector (0 = none)")
	pf.Float64("confidence", sim.DefaultConfidence, "Confidence level of every interval")
	pf.Float64("precision", sim.DefaultPrecisionTarget, "Target relative half-width of the mean intervals")
	pf.Int("increment", sim.DefaultRoundSizeIncrement, "Round size growth per escalation")
	pf.Int("max-escalations", sim.DefaultMaxEscalations, "Maximum escalations (negative = unbounded)")
	pf.Bool("strict", false, "Also require variance precision and analytic values inside the intervals")
	_ = viper.BindPFlags(pf)

	runCmd.Flags().Float64("rho", 0.5, "Utilization λ in (0, 1); the service rate is 1")
	runCmd.Flags().String("discipline", string(sim.FCFS), "Service discipline (fcfs, lcfs)")
	runCmd.Flags().String("trace-level", string(trace.TraceLevelNone), "Trace verbosity (none, attempts, rounds)")
	runCmd.Flags().String("trace-output", "", "YAML file the trace is written to (empty = stdout summary only)")
	_ = viper.BindPFlags(runCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(checkCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".queueing-sim")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("QSIM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			logrus.Fatalf("Failed to read config file: %v", err)
		}
		return
	}
	logrus.Debugf("Using config file %s", viper.ConfigFileUsed())
}

func setupLogging() {
	level, err := logrus.ParseLevel(viper.GetString("log"))
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", viper.GetString("log"))
	}
	logrus.SetLevel(level)
}

// baseConfig builds a sim.Config from the shared measurement settings.
func baseConfig() sim.Config {
	return sim.Config{
		Seed:               viper.GetUint64("seed"),
		RoundSize:          viper.GetInt("round-size"),
		Rounds:             viper.GetInt("rounds"),
		TransientEvents:    viper.GetInt("transient"),
		WarmupMaxEvents:    viper.GetInt("warmup-max"),
		Confidence:         viper.GetFloat64("confidence"),
		PrecisionTarget:    viper.GetFloat64("precision"),
		RoundSizeIncrement: viper.GetInt("increment"),
		MaxEscalations:     viper.GetInt("max-escalations"),
		StrictChecks:       viper.GetBool("strict"),
	}
}

// measure runs one driver, drawing a progress bar when enabled. A non-nil
// Measurement may come back together with an error when precision was not
// achieved.
func measure(ctx context.Context, cfg sim.Config, tr *trace.SimulationTrace) (*sim.Measurement, error) {
	driver, err := sim.NewDriver(cfg)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	driver.Trace = tr

	var bar *progressBar
	if viper.GetBool("progress") {
		bar = newProgressBar(os.Stderr, measurementLabel(cfg))
		driver.Progress = bar.Update
	}
	logrus.Infof("Starting measurement %s: round size %d, %d rounds, seed %d",
		measurementLabel(cfg), cfg.RoundSize, cfg.Rounds, cfg.Seed)

	m, err := driver.Run(ctx)
	if bar != nil {
		bar.Finish(m)
	}
	return m, err
}

// persist appends measurements to the CSV output and writes the YAML summary.
func persist(measurements []*sim.Measurement) {
	if len(measurements) == 0 {
		return
	}
	writer := report.NewCSVWriter(viper.GetString("output"))
	if writer.Path != "" {
		if err := writer.Append(measurements...); err != nil {
			logrus.Fatalf("Failed to write results: %v", err)
		}
		logrus.Infof("Appended %d row(s) to %s (run %s)", len(measurements), writer.Path, writer.RunID)
	}
	if path := viper.GetString("summary"); path != "" {
		if err := report.WriteSummaryFile(path, report.NewRunSummary(writer.RunID, measurements)); err != nil {
			logrus.Fatalf("Failed to write summary: %v", err)
		}
	}
}

func newTrace() *trace.SimulationTrace {
	level := viper.GetString("trace-level")
	if !trace.IsValidTraceLevel(level) {
		logrus.Fatalf("Invalid trace level: %s", level)
	}
	if level == "" || trace.TraceLevel(level) == trace.TraceLevelNone {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(level)})
}

func writeTrace(tr *trace.SimulationTrace) {
	if tr == nil {
		return
	}
	path := viper.GetString("trace-output")
	if path == "" {
		printTraceSummary(os.Stdout, trace.Summarize(tr))
		return
	}
	file, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Failed to create trace file: %v", err)
	}
	defer func() { _ = file.Close() }()
	if err := tr.WriteYAML(file); err != nil {
		logrus.Fatalf("Failed to write trace: %v", err)
	}
}
