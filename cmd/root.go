package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/jobsched/sim"
	"github.com/inference-sim/jobsched/sim/report"
	"github.com/inference-sim/jobsched/sim/trace"
	"github.com/inference-sim/jobsched/sim/workload"
)

var (
	inputPath    string // Command file
	outputPath   string // Report destination (stdout when empty)
	logLevel     string // Log verbosity level
	defaultsPath string // Optional YAML defaults file
	policyName   string // Policy active before the first configuration command
	quantumBase  int    // Static quantum base; static quantum = base + team
	team         int    // Initial team offset
	totalMemory  int    // Initial memory units
	totalDevices int    // Initial device units
	traceLevel   string // Decision trace level
	showSummary  bool   // Print run metrics after the simulation
	finishedCSV  string // Optional CSV export of finished records
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "jobsched",
	Short: "Discrete-event simulator for an operating-system job scheduler",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run [input] [output]",
	Short: "Run the job scheduling simulation over a command file",
	Args:  cobra.RangeArgs(0, 2),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if len(args) > 0 {
			inputPath = args[0]
		}
		if len(args) > 1 {
			outputPath = args[1]
		}
		if inputPath == "" {
			logrus.Fatalf("No input file provided. Exiting simulation.")
		}

		cfg, traceLvl, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		cmds, err := workload.LoadCommandsFile(inputPath)
		if err != nil {
			logrus.Fatalf("unable to read commands; %v", err)
		}

		var out io.Writer = os.Stdout
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("unable to create output file; %v", err)
			}
			defer f.Close()
			out = f
		}

		logrus.Infof("Starting simulation with M=%d S=%d, policy=%s, static quantum=%d",
			cfg.TotalMemory, cfg.TotalDevices, cfg.Policy, cfg.StaticQuantum(cfg.Team))

		s, st := runSimulation(cmds, out, cfg, traceLvl)

		if showSummary {
			s.Metrics.Print(out, s.Admission.Held())
		}
		if st.Enabled() {
			printTraceSummary(out, trace.Summarize(st))
		}
		if finishedCSV != "" {
			if err := report.SaveFinishedCSV(finishedCSV, s.Metrics.Finished); err != nil {
				logrus.Fatalf("unable to write finished records; %v", err)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// resolveConfig layers the YAML defaults file under explicitly set flags.
func resolveConfig(cmd *cobra.Command) (sim.SimConfig, trace.TraceLevel, error) {
	cfg := sim.NewSimConfig(totalMemory, totalDevices, team)
	cfg.QuantumBase = quantumBase
	cfg.Policy = sim.PolicyKind(policyName)
	level := trace.TraceLevel(traceLevel)

	if defaultsPath != "" {
		bundle, err := sim.LoadPolicyBundle(defaultsPath)
		if err != nil {
			return cfg, level, err
		}
		if err := bundle.Validate(); err != nil {
			return cfg, level, fmt.Errorf("invalid defaults file %s: %w", defaultsPath, err)
		}
		fromFlags := cfg
		bundle.Apply(&cfg)
		// Explicit flags win over the file
		flags := cmd.Flags()
		if flags.Changed("policy") {
			cfg.Policy = fromFlags.Policy
		}
		if flags.Changed("quantum-base") {
			cfg.QuantumBase = fromFlags.QuantumBase
		}
		if flags.Changed("team") {
			cfg.Team = fromFlags.Team
		}
		if flags.Changed("memory") {
			cfg.TotalMemory = fromFlags.TotalMemory
		}
		if flags.Changed("devices") {
			cfg.TotalDevices = fromFlags.TotalDevices
		}
		if bundle.Trace != "" && !flags.Changed("trace") {
			level = trace.TraceLevel(bundle.Trace)
		}
	}

	if !sim.IsValidPolicy(string(cfg.Policy)) {
		return cfg, level, fmt.Errorf("unknown policy %q", cfg.Policy)
	}
	if !trace.IsValidTraceLevel(string(level)) {
		return cfg, level, fmt.Errorf("unknown trace level %q", level)
	}
	return cfg, level, nil
}

// runSimulation feeds cmds through a fresh simulator whose reports go to out.
// The returned trace is nil unless level enables tracing.
func runSimulation(cmds []sim.Command, out io.Writer, cfg sim.SimConfig, level trace.TraceLevel) (*sim.Simulator, *trace.SimulationTrace) {
	s := sim.NewSimulator(cfg, report.NewTextReporter(out))
	var st *trace.SimulationTrace
	if level == trace.TraceLevelDecisions {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
		s.SetTrace(st)
	}
	s.Schedule(cmds...)
	s.Run()
	return s, st
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Admission Decisions  : %d\n", ts.TotalDecisions)
	fmt.Fprintf(w, "  admitted %d, held %d, rejected %d, reclaimed %d\n",
		ts.AdmittedCount, ts.HeldCount, ts.RejectedCount, ts.ReclaimedCount)
	fmt.Fprintf(w, "Dispatches           : %d\n", ts.DispatchCount)
	if ts.DispatchCount > 0 {
		fmt.Fprintf(w, "Mean Quantum         : %.4f\n", ts.MeanQuantum)
		fmt.Fprintf(w, "Max Quantum          : %.4f\n", ts.MaxQuantum)
	}
	fmt.Fprintf(w, "Policy Switches      : %d\n", ts.SwitchCount)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Command file to simulate")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report output file (default stdout)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&defaultsPath, "defaults", "", "YAML file with simulation defaults")

	// Scheduler configs
	runCmd.Flags().StringVar(&policyName, "policy", "dynamic", "Quantum policy before any switch command (dynamic, static, fcfs)")
	runCmd.Flags().IntVar(&quantumBase, "quantum-base", sim.DefaultQuantumBase, "Base of the static quantum (quantum = base + team)")
	runCmd.Flags().IntVar(&team, "team", 0, "Initial team offset")
	runCmd.Flags().IntVar(&totalMemory, "memory", 0, "Memory units before the first configuration command")
	runCmd.Flags().IntVar(&totalDevices, "devices", 0, "Device units before the first configuration command")

	// Outputs
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().BoolVar(&showSummary, "summary", false, "Print run metrics after the simulation")
	runCmd.Flags().StringVar(&finishedCSV, "finished-csv", "", "Write finished job records to this CSV file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
