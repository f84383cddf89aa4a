package sim

import (
	"fmt"
	"strings"
)

// QuantumPolicy chooses the time slice granted to the process being dispatched.
// ready holds every process still waiting; running has already been removed from it.
// The caller clamps the returned slice to running.RemainingService.
type QuantumPolicy interface {
	Name() string
	ChooseQuantum(now float64, ready *ReadyQueue, running *Process) float64
}

// PolicyKind names one of the three quantum policies.
type PolicyKind string

const (
	PolicyDynamic PolicyKind = "dynamic"
	PolicyStatic  PolicyKind = "static"
	PolicyFCFS    PolicyKind = "fcfs"
)

// ValidPolicies is the set of recognized policy names.
// Empty string defaults to PolicyDynamic.
var ValidPolicies = map[string]bool{"": true, "dynamic": true, "static": true, "fcfs": true}

// IsValidPolicy returns true if name is a recognized policy name.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// ParsePolicyMode maps a switch-command mode token to a policy.
// Matching is by case-insensitive prefix: STAT, DYN and FCFS.
func ParsePolicyMode(mode string) (PolicyKind, bool) {
	m := strings.ToUpper(mode)
	switch {
	case strings.HasPrefix(m, "STAT"):
		return PolicyStatic, true
	case strings.HasPrefix(m, "DYN"):
		return PolicyDynamic, true
	case strings.HasPrefix(m, "FCFS"):
		return PolicyFCFS, true
	default:
		return "", false
	}
}

// FCFSPolicy grants the whole remaining service: a process always runs to completion.
type FCFSPolicy struct{}

func (f *FCFSPolicy) Name() string { return "FCFS" }

func (f *FCFSPolicy) ChooseQuantum(_ float64, _ *ReadyQueue, running *Process) float64 {
	return running.RemainingService
}

// StaticQuantumPolicy grants a fixed slice regardless of system state.
type StaticQuantumPolicy struct {
	Quantum float64
}

// NewStaticQuantumPolicy creates a fixed-slice policy. Slices below 1 are raised to 1.
func NewStaticQuantumPolicy(quantum int) *StaticQuantumPolicy {
	return &StaticQuantumPolicy{Quantum: float64(max(1, quantum))}
}

func (s *StaticQuantumPolicy) Name() string { return "STATIC RR" }

func (s *StaticQuantumPolicy) ChooseQuantum(_ float64, _ *ReadyQueue, _ *Process) float64 {
	return s.Quantum
}

// AdaptiveQuantumPolicy grants the mean remaining work across the running
// process and every process in the ready queue.
type AdaptiveQuantumPolicy struct{}

func (a *AdaptiveQuantumPolicy) Name() string { return "DYNAMIC RR" }

func (a *AdaptiveQuantumPolicy) ChooseQuantum(_ float64, ready *ReadyQueue, running *Process) float64 {
	total := ready.RemainingWork() + running.RemainingService
	q := total / float64(ready.Len()+1)
	if q <= 0 {
		return running.RemainingService
	}
	return q
}

// NewQuantumPolicy creates a QuantumPolicy by kind.
// staticQuantum is only used by PolicyStatic.
// Empty string defaults to AdaptiveQuantumPolicy.
// Panics on unrecognized kinds.
func NewQuantumPolicy(kind PolicyKind, staticQuantum int) QuantumPolicy {
	if !IsValidPolicy(string(kind)) {
		panic(fmt.Sprintf("unknown quantum policy %q", kind))
	}
	switch kind {
	case "", PolicyDynamic:
		return &AdaptiveQuantumPolicy{}
	case PolicyStatic:
		return NewStaticQuantumPolicy(staticQuantum)
	case PolicyFCFS:
		return &FCFSPolicy{}
	default:
		panic(fmt.Sprintf("unhandled quantum policy %q", kind))
	}
}
