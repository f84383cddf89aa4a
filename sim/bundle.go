package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/jobsched/sim/trace"
)

// PolicyBundle holds simulation defaults, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" — they do not override SimConfig.
// String fields use empty string for "not set".
type PolicyBundle struct {
	Policy      string `yaml:"policy"`
	QuantumBase *int   `yaml:"quantum_base"`
	Team        *int   `yaml:"team"`
	Memory      *int   `yaml:"memory"`
	Devices     *int   `yaml:"devices"`
	Trace       string `yaml:"trace"`
}

// LoadPolicyBundle reads and parses a YAML defaults file.
// Unknown keys are rejected so that typos surface as errors.
func LoadPolicyBundle(path string) (*PolicyBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy config: %w", err)
	}
	var bundle PolicyBundle
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing policy config: %w", err)
	}
	return &bundle, nil
}

// Validate checks that policy names and parameter ranges in the bundle are valid.
func (b *PolicyBundle) Validate() error {
	if !IsValidPolicy(b.Policy) {
		return fmt.Errorf("unknown policy %q", b.Policy)
	}
	if !trace.IsValidTraceLevel(b.Trace) {
		return fmt.Errorf("unknown trace level %q", b.Trace)
	}
	if b.QuantumBase != nil && *b.QuantumBase < 0 {
		return fmt.Errorf("quantum_base must be non-negative, got %d", *b.QuantumBase)
	}
	if b.Memory != nil && *b.Memory < 0 {
		return fmt.Errorf("memory must be non-negative, got %d", *b.Memory)
	}
	if b.Devices != nil && *b.Devices < 0 {
		return fmt.Errorf("devices must be non-negative, got %d", *b.Devices)
	}
	return nil
}

// Apply overrides the fields of cfg that are set in the bundle.
func (b *PolicyBundle) Apply(cfg *SimConfig) {
	if b.Policy != "" {
		cfg.Policy = PolicyKind(b.Policy)
	}
	if b.QuantumBase != nil {
		cfg.QuantumBase = *b.QuantumBase
	}
	if b.Team != nil {
		cfg.Team = *b.Team
	}
	if b.Memory != nil {
		cfg.TotalMemory = *b.Memory
	}
	if b.Devices != nil {
		cfg.TotalDevices = *b.Devices
	}
}
