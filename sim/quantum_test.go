package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func readyWith(remaining ...float64) *ReadyQueue {
	rq := &ReadyQueue{}
	for i, r := range remaining {
		rq.Enqueue(NewProcess(Job{ID: i + 1, ServiceTime: r}, 0))
	}
	return rq
}

func TestFCFSPolicy_GrantsRemainingService(t *testing.T) {
	running := NewProcess(Job{ID: 9, ServiceTime: 7.5}, 0)
	got := (&FCFSPolicy{}).ChooseQuantum(3, readyWith(1, 2), running)
	assert.Equal(t, 7.5, got)
}

func TestStaticQuantumPolicy_FixedSlice(t *testing.T) {
	tests := []struct {
		configured int
		want       float64
	}{
		{10, 10},
		{15, 15},
		{1, 1},
		{0, 1},
		{-7, 1},
	}
	running := NewProcess(Job{ID: 1, ServiceTime: 100}, 0)
	for _, tc := range tests {
		p := NewStaticQuantumPolicy(tc.configured)
		assert.Equal(t, tc.want, p.ChooseQuantum(0, readyWith(3, 4), running), "configured=%d", tc.configured)
	}
}

func TestAdaptiveQuantumPolicy_MeanRemainingWork(t *testing.T) {
	// GIVEN ready processes with 4 and 6 remaining and a running process with 2
	ready := readyWith(4, 6)
	running := NewProcess(Job{ID: 3, ServiceTime: 2}, 0)

	// WHEN a quantum is chosen
	got := (&AdaptiveQuantumPolicy{}).ChooseQuantum(0, ready, running)

	// THEN it is (4+6+2)/3
	assert.Equal(t, 4.0, got)
}

func TestAdaptiveQuantumPolicy_EmptyReadyGrantsRemaining(t *testing.T) {
	running := NewProcess(Job{ID: 1, ServiceTime: 12}, 0)
	assert.Equal(t, 12.0, (&AdaptiveQuantumPolicy{}).ChooseQuantum(0, &ReadyQueue{}, running))
}

func TestAdaptiveQuantumPolicy_NonPositiveFallsBackToRemaining(t *testing.T) {
	running := NewProcess(Job{ID: 1, ServiceTime: 0}, 0)
	assert.Equal(t, 0.0, (&AdaptiveQuantumPolicy{}).ChooseQuantum(0, readyWith(0, 0), running))
}

func TestParsePolicyMode(t *testing.T) {
	tests := []struct {
		mode string
		want PolicyKind
		ok   bool
	}{
		{"STATIC", PolicyStatic, true},
		{"stat", PolicyStatic, true},
		{"Dynamic", PolicyDynamic, true},
		{"DYN", PolicyDynamic, true},
		{"fcfs", PolicyFCFS, true},
		{"FCFSX", PolicyFCFS, true},
		{"ST", "", false},
		{"RR", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, ok := ParsePolicyMode(tc.mode)
		assert.Equal(t, tc.ok, ok, "mode %q", tc.mode)
		assert.Equal(t, tc.want, got, "mode %q", tc.mode)
	}
}

func TestNewQuantumPolicy_ByKind(t *testing.T) {
	assert.IsType(t, &AdaptiveQuantumPolicy{}, NewQuantumPolicy("", 0))
	assert.IsType(t, &AdaptiveQuantumPolicy{}, NewQuantumPolicy(PolicyDynamic, 0))
	assert.IsType(t, &FCFSPolicy{}, NewQuantumPolicy(PolicyFCFS, 0))

	static := NewQuantumPolicy(PolicyStatic, 13)
	if assert.IsType(t, &StaticQuantumPolicy{}, static) {
		assert.Equal(t, 13.0, static.(*StaticQuantumPolicy).Quantum)
	}
}

func TestNewQuantumPolicy_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { NewQuantumPolicy("lottery", 0) })
}

func TestPolicyNames(t *testing.T) {
	assert.Equal(t, "DYNAMIC RR", (&AdaptiveQuantumPolicy{}).Name())
	assert.Equal(t, "STATIC RR", NewStaticQuantumPolicy(10).Name())
	assert.Equal(t, "FCFS", (&FCFSPolicy{}).Name())
}
