package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/jobsched/sim/workload"
)

var (
	genSpecPath string // Generator spec YAML
	genOutput   string // Command file destination (stdout when empty)
	genSeed     int64  // Overrides the generator seed when set
	genNumJobs  int    // Overrides the generator job cap when set
)

// generateCmd writes a synthetic command file that `run` can consume
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic command file from a YAML workload spec",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if genSpecPath == "" {
			logrus.Fatalf("--spec is required")
		}
		spec, err := workload.LoadGeneratorSpec(genSpecPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = genSeed
		}
		if cmd.Flags().Changed("num-jobs") {
			spec.NumJobs = genNumJobs
		}

		lines, err := workload.Generate(spec)
		if err != nil {
			logrus.Fatalf("generation failed: %v", err)
		}

		var out io.Writer = os.Stdout
		if genOutput != "" {
			f, err := os.Create(genOutput)
			if err != nil {
				logrus.Fatalf("unable to create output file; %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := workload.WriteCommands(out, lines); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "YAML generator spec")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Command file to write (default stdout)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Seed overriding the generator file (same seed, same output)")
	generateCmd.Flags().IntVar(&genNumJobs, "num-jobs", 0, "Job cap overriding the generator file (0 = horizon only)")
	generateCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(generateCmd)
}
