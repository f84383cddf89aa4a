package workload

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/jobsched/sim"
)

// commandLine is one generated input line before formatting.
type commandLine struct {
	time float64
	kind sim.CommandKind
	text string
}

type generatedJob struct {
	arrival  float64
	memory   int
	devices  int
	service  int
	priority int
}

// Generate creates a command file from spec: a configuration command at t=0,
// the job arrivals of every class, the requested policy switches, periodic
// reports and a final report scheduled after every job must have finished.
// Deterministic given the same spec and seed.
// Returns the lines in time order.
func Generate(spec *GeneratorSpec) ([]string, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	resourceRNG := rng.ForSubsystem(sim.SubsystemResources)
	serviceRNG := rng.ForSubsystem(sim.SubsystemService)

	totalFraction := 0.0
	for _, c := range spec.Classes {
		totalFraction += c.RateFraction
	}

	var jobs []generatedJob
	for i := range spec.Classes {
		class := &spec.Classes[i]
		rate := spec.AggregateRate * class.RateFraction / totalFraction
		arrivals := NewArrivalSampler(class.Arrival, rate)
		memory, err := NewSizeSampler(class.Memory)
		if err != nil {
			return nil, fmt.Errorf("class %q memory distribution: %w", class.ID, err)
		}
		devices, err := NewSizeSampler(class.Devices)
		if err != nil {
			return nil, fmt.Errorf("class %q devices distribution: %w", class.ID, err)
		}
		service, err := NewSizeSampler(class.Service)
		if err != nil {
			return nil, fmt.Errorf("class %q service distribution: %w", class.ID, err)
		}
		priority := class.Priority
		if priority == 0 {
			priority = 1
		}

		t := 0.0
		for {
			t += arrivals.SampleIAT(arrivalRNG)
			at := roundTime(t)
			if at >= spec.Horizon {
				break
			}
			jobs = append(jobs, generatedJob{
				arrival:  at,
				memory:   memory.Sample(resourceRNG),
				devices:  devices.Sample(resourceRNG),
				service:  service.Sample(serviceRNG),
				priority: priority,
			})
		}
	}

	// Stable sort keeps class order for ties
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].arrival < jobs[j].arrival
	})
	if spec.NumJobs > 0 && len(jobs) > spec.NumJobs {
		jobs = jobs[:spec.NumJobs]
	}

	lines := []commandLine{{
		kind: sim.KindConfig,
		text: fmt.Sprintf("C 0 M=%d S=%d TEAM=%d", spec.System.Memory, spec.System.Devices, spec.System.Team),
	}}
	totalService := 0
	for i, j := range jobs {
		totalService += j.service
		lines = append(lines, commandLine{
			time: j.arrival,
			kind: sim.KindArrival,
			text: fmt.Sprintf("A %s J=%d M=%d S=%d R=%d P=%d",
				formatTime(j.arrival), i+1, j.memory, j.devices, j.service, j.priority),
		})
	}
	for _, sw := range spec.Switches {
		lines = append(lines, commandLine{time: sw.At, kind: sim.KindSwitch, text: fmt.Sprintf("S %s %s", formatTime(sw.At), sw.Mode)})
	}
	if spec.DisplayInterval > 0 {
		for t := spec.DisplayInterval; t < spec.Horizon; t += spec.DisplayInterval {
			at := roundTime(t)
			lines = append(lines, commandLine{time: at, kind: sim.KindDisplay, text: "D " + formatTime(at)})
		}
	}
	// With one CPU and every arrival before the horizon, all work is done by horizon + total service
	final := math.Ceil(spec.Horizon) + float64(totalService) + 1
	lines = append(lines, commandLine{time: final, kind: sim.KindDisplay, text: "D " + formatTime(final)})

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].time != lines[j].time {
			return lines[i].time < lines[j].time
		}
		return lines[i].kind.Rank() < lines[j].kind.Rank()
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	logrus.Infof("generated %d job(s) over horizon %.2f (seed %d)", len(jobs), spec.Horizon, spec.Seed)
	return out, nil
}

// WriteCommands writes lines to w, one command per line.
func WriteCommands(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			return fmt.Errorf("writing commands: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing commands: %w", err)
	}
	return nil
}

// roundTime rounds to the two decimals the reports print.
func roundTime(t float64) float64 {
	return math.Round(t*100) / 100
}

func formatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
