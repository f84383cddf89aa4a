package workload

import (
	"bytes"
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/jobsched/sim"
)

// GeneratorSpec describes a synthetic command file.
// Loaded from YAML via LoadGeneratorSpec(path).
//
// AggregateRate is in jobs per time unit across all classes. NumJobs caps
// the number of arrivals (0 = horizon only). DisplayInterval spaces the
// periodic reports (0 = only a final report).
type GeneratorSpec struct {
	Seed            int64        `yaml:"seed"`
	Horizon         float64      `yaml:"horizon"`
	NumJobs         int          `yaml:"num_jobs,omitempty"`
	AggregateRate   float64      `yaml:"aggregate_rate"`
	DisplayInterval float64      `yaml:"display_interval,omitempty"`
	System          SystemSpec   `yaml:"system"`
	Switches        []SwitchSpec `yaml:"switches,omitempty"`
	Classes         []ClassSpec  `yaml:"classes"`
}

// SystemSpec is the configuration command written at t=0.
type SystemSpec struct {
	Memory  int `yaml:"memory"`
	Devices int `yaml:"devices"`
	Team    int `yaml:"team"`
}

// SwitchSpec schedules a policy switch command.
type SwitchSpec struct {
	At   float64 `yaml:"at"`
	Mode string  `yaml:"mode"`
}

// ClassSpec defines one class of jobs sharing an arrival process and
// request distributions.
type ClassSpec struct {
	ID           string      `yaml:"id"`
	RateFraction float64     `yaml:"rate_fraction"`
	Priority     int         `yaml:"priority"`
	Arrival      ArrivalSpec `yaml:"arrival"`
	Memory       DistSpec    `yaml:"memory"`
	Devices      DistSpec    `yaml:"devices"`
	Service      DistSpec    `yaml:"service"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string   `yaml:"process"`
	CV      *float64 `yaml:"cv,omitempty"`
}

// DistSpec parameterizes a request-size distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validArrivalProcesses = map[string]bool{
		"poisson": true, "gamma": true, "weibull": true, "constant": true,
	}
	validDistTypes = map[string]bool{
		"gaussian": true, "exponential": true, "pareto_lognormal": true, "empirical": true, "constant": true, "uniform": true,
	}
)

// LoadGeneratorSpec reads and parses a YAML generator specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	var spec GeneratorSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all generator fields are valid.
func (s *GeneratorSpec) Validate() error {
	if err := validateFinitePositive("aggregate_rate", s.AggregateRate); err != nil {
		return err
	}
	if err := validateFinitePositive("horizon", s.Horizon); err != nil {
		return err
	}
	if s.NumJobs < 0 {
		return fmt.Errorf("num_jobs must be non-negative, got %d", s.NumJobs)
	}
	if s.DisplayInterval < 0 || math.IsNaN(s.DisplayInterval) || math.IsInf(s.DisplayInterval, 0) {
		return fmt.Errorf("display_interval must be a finite non-negative number, got %f", s.DisplayInterval)
	}
	if s.System.Memory < 0 || s.System.Devices < 0 {
		return fmt.Errorf("system capacity must be non-negative, got memory=%d devices=%d", s.System.Memory, s.System.Devices)
	}
	for i, sw := range s.Switches {
		if sw.At < 0 || math.IsNaN(sw.At) || math.IsInf(sw.At, 0) {
			return fmt.Errorf("switches[%d]: at must be a finite non-negative time, got %f", i, sw.At)
		}
		if _, ok := sim.ParsePolicyMode(sw.Mode); !ok {
			return fmt.Errorf("switches[%d]: unknown mode %q; valid prefixes: STAT, DYN, FCFS", i, sw.Mode)
		}
	}
	if len(s.Classes) == 0 {
		return fmt.Errorf("at least one job class required")
	}
	for i := range s.Classes {
		if err := validateClass(&s.Classes[i], i); err != nil {
			return err
		}
	}
	return nil
}

func validateClass(c *ClassSpec, idx int) error {
	prefix := fmt.Sprintf("classes[%d]", idx)
	if c.RateFraction <= 0 {
		return fmt.Errorf("%s: rate_fraction must be positive, got %f", prefix, c.RateFraction)
	}
	if c.Priority < 0 {
		return fmt.Errorf("%s: priority must be non-negative, got %d", prefix, c.Priority)
	}
	if !validArrivalProcesses[c.Arrival.Process] {
		return fmt.Errorf("%s: unknown arrival process %q; valid: poisson, gamma, weibull, constant", prefix, c.Arrival.Process)
	}
	if c.Arrival.Process == "weibull" && c.Arrival.CV != nil {
		cv := *c.Arrival.CV
		if cv < 0.01 || cv > 10.4 {
			return fmt.Errorf("%s: weibull CV must be in [0.01, 10.4], got %f", prefix, cv)
		}
	}
	if c.Arrival.CV != nil {
		if err := validateFinitePositive(prefix+".cv", *c.Arrival.CV); err != nil {
			return err
		}
	}
	if err := validateDistSpec(prefix+".memory", &c.Memory); err != nil {
		return err
	}
	if err := validateDistSpec(prefix+".devices", &c.Devices); err != nil {
		return err
	}
	if err := validateDistSpec(prefix+".service", &c.Service); err != nil {
		return err
	}
	return nil
}

func validateDistSpec(prefix string, d *DistSpec) error {
	if !validDistTypes[d.Type] {
		valid := slices.Sorted(maps.Keys(validDistTypes))
		return fmt.Errorf("%s: unknown distribution type %q; valid: %s", prefix, d.Type, strings.Join(valid, ", "))
	}
	for name, val := range d.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%s.params.%s must be a finite number, got %f", prefix, name, val)
		}
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
