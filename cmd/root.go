package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/edge-mobility/mobility-sim/sim"
	"github.com/edge-mobility/mobility-sim/sim/mobility"
	"github.com/edge-mobility/mobility-sim/sim/trace"
)

var (
	// CLI flags for the run
	scenarioPath string  // Path to the scenario YAML
	seed         int64   // Seed for site selection and dwell sampling
	horizon      float64 // Total simulated time (seconds)
	devices      int     // Number of mobile devices
	modelName    string  // Mobility model
	logLevel     string  // Log verbosity level
	traceLevel   string  // Relocation trace level
	outputFormat string  // Summary format: text, json, cbor
	outputPath   string  // Summary destination (stdout when empty)
	verify       bool    // Check ledger invariants at the end of the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mobility-sim",
	Short: "Discrete-event simulator for device mobility across edge sites",
}

// runCmd executes the simulation using the scenario file and CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the mobility simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("unable to load scenario: %v", err)
		}
		applyOverrides(cmd, sc)
		if err := validateScenario(sc); err != nil {
			logrus.Fatalf("invalid scenario %s: %v", scenarioPath, err)
		}
		if outputFormat != "text" && !sim.IsValidExportFormat(outputFormat) {
			logrus.Fatalf("unknown output format %q; valid: text, json, cbor", outputFormat)
		}

		logrus.Infof("Starting simulation: model=%s devices=%d sites=%d horizon=%.1fs seed=%d",
			sc.Model, sc.Devices, len(sc.Sites), sc.Horizon, sc.Seed)
		startTime := time.Now()

		result, err := runScenario(sc, verify)
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s", time.Since(startTime))

		if err := writeResult(result, outputFormat, outputPath); err != nil {
			logrus.Fatalf("unable to write summary: %v", err)
		}
	},
}

// validateCmd checks a scenario file without running it
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("unable to load scenario: %v", err)
		}
		if err := validateScenario(sc); err != nil {
			logrus.Fatalf("invalid scenario %s: %v", scenarioPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sites, %d devices, model %s)\n",
			scenarioPath, len(sc.Sites), sc.Devices, sc.Model)
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// applyOverrides copies explicitly set flags over scenario values.
func applyOverrides(cmd *cobra.Command, sc *sim.Scenario) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("horizon") {
		sc.Horizon = horizon
	}
	if flags.Changed("devices") {
		sc.Devices = devices
	}
	if flags.Changed("model") {
		sc.Model = modelName
	}
	if flags.Changed("trace-level") {
		sc.TraceLevel = traceLevel
	}
}

// validateScenario checks the scenario plus the names only this layer can resolve.
func validateScenario(sc *sim.Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	if !mobility.IsValidModel(sc.Model) {
		return fmt.Errorf("unknown model %q; valid: %v", sc.Model, mobility.ValidModelNames())
	}
	if !trace.IsValidTraceLevel(sc.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q; valid: none, relocations", sc.TraceLevel)
	}
	if sc.Model == mobility.NameRandomWaypoint && sc.WaypointSpeed == 0 {
		return fmt.Errorf("model %s requires waypoint_speed", sc.Model)
	}
	return nil
}

// runResult is what one run produces for reporting.
type runResult struct {
	Summary sim.RunSummary
	Trace   *trace.TraceSummary
}

// runScenario wires the kernel, the model and its observers, then runs to the horizon.
func runScenario(sc *sim.Scenario, verify bool) (runResult, error) {
	catalog, err := sc.Catalog()
	if err != nil {
		return runResult{}, err
	}
	simulator := sim.NewSimulator(sc.Horizon)
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(sc.Seed))
	metrics := sim.NewMetrics(catalog)
	recorder := trace.NewRecorder(trace.TraceLevel(sc.TraceLevel))

	model, err := mobility.New(sc.Model, mobility.Config{
		Catalog:          catalog,
		DwellTable:       sc.DwellTable(),
		ActivationOffset: sc.ActivationOffset,
		Scheduler:        simulator,
		RNG:              rng.ForSubsystem(sim.SubsystemMobility),
		Log:              sim.NewLogrusLineWriter(),
		Observers:        []mobility.Observer{metrics, recorder},
		WaypointSpeed:    sc.WaypointSpeed,
	})
	if err != nil {
		return runResult{}, err
	}
	if err := model.Initialize(sc.Devices); err != nil {
		return runResult{}, fmt.Errorf("initializing %s model: %w", sc.Model, err)
	}

	simulator.Run()
	metrics.Finalize(sc.Horizon)

	if verify {
		if err := mobility.CheckLedger(model, catalog, sc.Devices); err != nil {
			return runResult{}, fmt.Errorf("ledger check failed: %w", err)
		}
		logrus.Info("Ledger invariants hold")
	}

	res := runResult{Summary: metrics.Summary(sc.Model, sc.Seed, sc.Devices)}
	if recorder.Enabled() {
		res.Trace = trace.Summarize(recorder)
	}
	return res, nil
}

// writeResult prints or exports the run summary.
func writeResult(res runResult, format, path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if format == "text" {
		res.Summary.Print(w)
		if res.Trace != nil {
			printTraceSummary(w, res.Trace)
		}
		return nil
	}
	return sim.ExportSummary(w, res.Summary, format)
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Relocation Trace ===")
	fmt.Fprintf(w, "Relocations          : %d\n", ts.TotalRelocations)
	fmt.Fprintf(w, "Self Transitions     : %d\n", ts.SelfTransitions)
	fmt.Fprintf(w, "Max Dwell            : %.2f s\n", ts.MaxDwell)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, validateCmd} {
		c.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the scenario YAML file")
		c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
		_ = c.MarkFlagRequired("scenario")
	}

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for site selection and dwell sampling (overrides scenario)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 3600, "Total simulated time in seconds (overrides scenario)")
	runCmd.Flags().IntVar(&devices, "devices", 0, "Number of mobile devices (overrides scenario)")
	runCmd.Flags().StringVar(&modelName, "model", mobility.NameNomadic, "Mobility model: nomadic, random-waypoint (overrides scenario)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Relocation trace level: none, relocations (overrides scenario)")
	runCmd.Flags().StringVar(&outputFormat, "output-format", "text", "Summary format: text, json, cbor")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the summary to this file instead of stdout")
	runCmd.Flags().BoolVar(&verify, "verify", false, "Check occupancy ledger invariants at the end of the run")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}
