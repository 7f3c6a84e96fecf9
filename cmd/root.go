package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/court-sim/court-sim/sim"
	"github.com/court-sim/court-sim/sim/eventlog"
	"github.com/court-sim/court-sim/sim/workload"
)

var (
	// CLI flags for the simulation run
	startDate  string  // First simulated date (YYYY-MM-DD)
	days       int     // Number of working days to simulate
	seed       int64   // Seed for all stochastic decisions in the run
	logLevel   string  // Log verbosity level
	courtrooms int     // Number of courtrooms
	capacity   int     // Per-courtroom daily hearing capacity
	policyName string  // Scheduling policy (fifo, age, readiness)
	percentile string  // Stage duration percentile (median, p90)
	minGapDays int     // Minimum days between hearings of the same case
	filingRate float64 // Expected new filings per day (0 disables)

	// Case pool flags
	caseCount int    // Number of synthetic cases when no pool spec is given
	poolPath  string // YAML case-pool spec path

	// Output flags
	scenarioPath string // YAML scenario file overriding flags
	eventsPath   string // Event log output path
	metricsPath  string // Daily metrics output path
	eventSink    string // Event sink backend (csv, sqlite)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "court-sim",
	Short: "Discrete-event simulator for court docket scheduling",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the court simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		holidays := []time.Time{}
		if scenarioPath != "" {
			scenario, err := LoadScenarioConfig(scenarioPath)
			if err != nil {
				logrus.Fatalf("Could not load scenario: %v", err)
			}
			if err := scenario.Validate(); err != nil {
				logrus.Fatalf("Invalid scenario: %v", err)
			}
			applyScenario(scenario)
			holidays = scenario.ParsedHolidays()
		}

		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			logrus.Fatalf("Invalid start date %q: %v", startDate, err)
		}

		cfg := sim.Config{
			StartDate:         start,
			Days:              days,
			Seed:              seed,
			MinHearingGapDays: minGapDays,
			Percentile:        sim.Percentile(percentile),
			Policy:            policyName,
			DailyFilingRate:   filingRate,
			Holidays:          holidays,
		}

		// Build the case pool.
		var poolSpec *workload.PoolSpec
		if poolPath != "" {
			poolSpec, err = workload.LoadPoolSpec(poolPath)
			if err != nil {
				logrus.Fatalf("Could not load pool spec: %v", err)
			}
		} else {
			poolSpec = workload.DefaultPoolSpec(caseCount, seed)
		}
		cases, err := workload.GeneratePool(poolSpec, start)
		if err != nil {
			logrus.Fatalf("Could not generate case pool: %v", err)
		}

		// Open output sinks.
		var sink eventlog.Sink
		switch eventSink {
		case "csv":
			sink, err = eventlog.NewCSVSink(eventsPath)
		case "sqlite":
			sink, err = eventlog.NewSQLiteSink(eventsPath)
		default:
			logrus.Fatalf("Unknown event sink %q (want csv or sqlite)", eventSink)
		}
		if err != nil {
			logrus.Fatalf("Could not open event sink: %v", err)
		}
		events := eventlog.NewWriter(sink)

		metricsOut, err := eventlog.NewMetricsWriter(metricsPath)
		if err != nil {
			logrus.Fatalf("Could not open metrics file: %v", err)
		}

		logrus.Infof("Starting simulation: start=%s days=%d courtrooms=%d capacity=%d policy=%s",
			startDate, days, courtrooms, capacity, policyName)

		// Initialize and run the simulator
		s, err := sim.NewSimulator(cfg, cases,
			sim.NewCourtroomPool(courtrooms, capacity),
			sim.NewStaticParameterStore(), events, metricsOut)
		if err != nil {
			logrus.Fatalf("Could not construct simulator: %v", err)
		}
		if filingRate > 0 {
			s.SetFilingFunc(poolSpec.FilingFunc())
		}

		result, err := s.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if err := events.Close(); err != nil {
			logrus.Fatalf("Could not close event log: %v", err)
		}
		if err := metricsOut.Close(); err != nil {
			logrus.Fatalf("Could not close metrics file: %v", err)
		}

		s.Metrics.Print(result.EndDate, s.Gini())
		logrus.Infof("Run %s complete: %d hearings, %d disposals", result.RunID,
			result.HearingsTotal, result.Disposals)
	},
}

// applyScenario overrides flag values with scenario file settings.
func applyScenario(sc *ScenarioConfig) {
	if sc.Start != "" {
		startDate = sc.Start
	}
	if sc.Days != nil {
		days = *sc.Days
	}
	if sc.Seed != nil {
		seed = *sc.Seed
	}
	if sc.Courtrooms != nil {
		courtrooms = *sc.Courtrooms
	}
	if sc.Capacity != nil {
		capacity = *sc.Capacity
	}
	if sc.Policy != "" {
		policyName = sc.Policy
	}
	if sc.Percentile != "" {
		percentile = sc.Percentile
	}
	if sc.MinGapDays != nil {
		minGapDays = *sc.MinGapDays
	}
	if sc.FilingRate != nil {
		filingRate = *sc.FilingRate
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&startDate, "start", "2024-01-01", "First simulated date (YYYY-MM-DD)")
	runCmd.Flags().IntVar(&days, "days", 250, "Number of working days to simulate")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all stochastic decisions")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Court configuration
	runCmd.Flags().IntVar(&courtrooms, "courtrooms", 3, "Number of courtrooms")
	runCmd.Flags().IntVar(&capacity, "capacity", 25, "Per-courtroom daily hearing capacity")
	runCmd.Flags().StringVar(&policyName, "policy", "fifo", "Scheduling policy (fifo, age, readiness)")
	runCmd.Flags().StringVar(&percentile, "percentile", "median", "Stage duration percentile (median, p90)")
	runCmd.Flags().IntVar(&minGapDays, "min-gap-days", sim.DefaultMinHearingGapDays, "Minimum days between hearings of the same case")
	runCmd.Flags().Float64Var(&filingRate, "filing-rate", 0, "Expected new filings per day (0 disables mid-run filings)")

	// Case pool configuration
	runCmd.Flags().IntVar(&caseCount, "cases", 500, "Number of synthetic cases (ignored when --pool is set)")
	runCmd.Flags().StringVar(&poolPath, "pool", "", "YAML case-pool spec path")

	// Scenario and outputs
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file overriding flags")
	runCmd.Flags().StringVar(&eventsPath, "events", "events.csv", "Event log output path")
	runCmd.Flags().StringVar(&metricsPath, "metrics", "daily_metrics.csv", "Daily metrics output path")
	runCmd.Flags().StringVar(&eventSink, "event-sink", "csv", "Event sink backend (csv, sqlite)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
