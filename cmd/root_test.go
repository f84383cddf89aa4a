package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/jobsched/sim"
	"github.com/inference-sim/jobsched/sim/trace"
	"github.com/inference-sim/jobsched/sim/workload"
)

// newRunFlags registers the scheduler flags on a fresh command, resetting
// the package variables to their defaults.
func newRunFlags() *cobra.Command {
	c := &cobra.Command{Use: "run"}
	c.Flags().StringVar(&defaultsPath, "defaults", "", "")
	c.Flags().StringVar(&policyName, "policy", "dynamic", "")
	c.Flags().IntVar(&quantumBase, "quantum-base", sim.DefaultQuantumBase, "")
	c.Flags().IntVar(&team, "team", 0, "")
	c.Flags().IntVar(&totalMemory, "memory", 0, "")
	c.Flags().IntVar(&totalDevices, "devices", 0, "")
	c.Flags().StringVar(&traceLevel, "trace", "none", "")
	return c
}

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveConfig_FlagDefaults(t *testing.T) {
	c := newRunFlags()

	cfg, level, err := resolveConfig(c)

	require.NoError(t, err)
	assert.Equal(t, sim.NewSimConfig(0, 0, 0), cfg)
	assert.Equal(t, trace.TraceLevelNone, level)
}

func TestResolveConfig_DefaultsFileApplied(t *testing.T) {
	// GIVEN a defaults file and no explicit flags
	c := newRunFlags()
	require.NoError(t, c.Flags().Set("defaults", writeDefaults(t, "policy: static\nteam: 4\nmemory: 64\ntrace: decisions\n")))

	// WHEN resolved
	cfg, level, err := resolveConfig(c)

	// THEN the file values are used
	require.NoError(t, err)
	assert.Equal(t, sim.PolicyStatic, cfg.Policy)
	assert.Equal(t, 4, cfg.Team)
	assert.Equal(t, 64, cfg.TotalMemory)
	assert.Equal(t, sim.DefaultQuantumBase, cfg.QuantumBase)
	assert.Equal(t, trace.TraceLevelDecisions, level)
}

func TestResolveConfig_ExplicitFlagsWinOverFile(t *testing.T) {
	// GIVEN a defaults file and explicit --team and --trace flags
	c := newRunFlags()
	require.NoError(t, c.Flags().Set("defaults", writeDefaults(t, "team: 4\nquantum_base: 2\ntrace: decisions\n")))
	require.NoError(t, c.Flags().Set("team", "-3"))
	require.NoError(t, c.Flags().Set("trace", "none"))

	// WHEN resolved
	cfg, level, err := resolveConfig(c)

	// THEN the flags win and untouched file values still apply
	require.NoError(t, err)
	assert.Equal(t, -3, cfg.Team)
	assert.Equal(t, 2, cfg.QuantumBase)
	assert.Equal(t, trace.TraceLevelNone, level)
}

func TestResolveConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
		file  string
	}{
		{"unknown policy flag", map[string]string{"policy": "lottery"}, ""},
		{"unknown trace flag", map[string]string{"trace": "verbose"}, ""},
		{"invalid file", nil, "policy: lottery\n"},
		{"unknown key in file", nil, "quantum: 4\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newRunFlags()
			for k, v := range tc.flags {
				require.NoError(t, c.Flags().Set(k, v))
			}
			if tc.file != "" {
				require.NoError(t, c.Flags().Set("defaults", writeDefaults(t, tc.file)))
			}
			_, _, err := resolveConfig(c)
			assert.Error(t, err)
		})
	}
}

func TestRunSimulation_WritesReportsAndTrace(t *testing.T) {
	// GIVEN a small command file
	input := strings.Join([]string{
		"C 0 M=100 S=2 TEAM=-6",
		"S 0 STATIC",
		"A 1 J=1 M=10 S=0 R=10",
		"A 1 J=2 M=10 S=0 R=6",
		"D 20",
	}, "\n")
	cmds, err := workload.LoadCommands(strings.NewReader(input))
	require.NoError(t, err)

	// WHEN simulated with tracing
	var out bytes.Buffer
	s, st := runSimulation(cmds, &out, sim.NewSimConfig(0, 0, 0), trace.TraceLevelDecisions)

	// THEN the report shows both jobs finished in round-robin order
	report := out.String()
	assert.Contains(t, report, ">> Scheduler switched to STATIC RR at t=0.00\n")
	assert.Contains(t, report, "  2        1.00             15.00             14.00                 8\n")
	assert.Contains(t, report, "  1        1.00             17.00             16.00                 6\n")
	assert.Contains(t, report, "Total Finished Jobs:             2\n")
	require.NotNil(t, st)
	assert.Len(t, st.Dispatches, s.Metrics.Dispatches)

	// AND the summaries render
	var summary bytes.Buffer
	s.Metrics.Print(&summary, s.Admission.Held())
	printTraceSummary(&summary, trace.Summarize(st))
	assert.Contains(t, summary.String(), "=== Decision Trace ===")
	assert.Contains(t, summary.String(), "Policy Switches      : 1\n")
}

func TestRunSimulation_NoTraceByDefault(t *testing.T) {
	var out bytes.Buffer
	_, st := runSimulation(nil, &out, sim.NewSimConfig(0, 0, 0), trace.TraceLevelNone)
	assert.Nil(t, st)
	assert.Empty(t, out.String())
}
