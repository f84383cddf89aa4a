package sim

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/jobsched/sim/trace"
)

// CPUState is the state of the single CPU slot.
type CPUState string

const (
	CPUIdle    CPUState = "idle"
	CPURunning CPUState = "running"
)

// ProcessScheduler owns the CPU slot. It dispatches processes from the
// ready queue with slices chosen by the active QuantumPolicy and produces
// a FinishedRecord for every completed process.
type ProcessScheduler struct {
	pool      *ResourcePool
	admission *AdmissionManager
	policy    QuantumPolicy
	metrics   *Metrics
	trace     *trace.SimulationTrace // nil when tracing is disabled

	running      *Process
	nextDecision float64
}

// NewProcessScheduler creates an idle scheduler.
func NewProcessScheduler(pool *ResourcePool, admission *AdmissionManager, policy QuantumPolicy, metrics *Metrics) *ProcessScheduler {
	if policy == nil {
		panic("NewProcessScheduler: policy must not be nil")
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &ProcessScheduler{
		pool:         pool,
		admission:    admission,
		policy:       policy,
		metrics:      metrics,
		nextDecision: math.Inf(1),
	}
}

// SetTrace enables decision recording into st. nil disables it.
func (ps *ProcessScheduler) SetTrace(st *trace.SimulationTrace) {
	ps.trace = st
}

// SetPolicy swaps the active policy. A slice that was already granted is not changed.
func (ps *ProcessScheduler) SetPolicy(p QuantumPolicy) {
	if p == nil {
		panic("SetPolicy: policy must not be nil")
	}
	ps.policy = p
}

// Policy returns the active policy.
func (ps *ProcessScheduler) Policy() QuantumPolicy {
	return ps.policy
}

// State returns CPURunning while a process holds the CPU.
func (ps *ProcessScheduler) State() CPUState {
	if ps.running != nil {
		return CPURunning
	}
	return CPUIdle
}

// Running returns the process holding the CPU, or nil.
func (ps *ProcessScheduler) Running() *Process {
	return ps.running
}

// NextDecisionTime returns the time of the next internal CPU event,
// or +Inf when the CPU is idle.
func (ps *ProcessScheduler) NextDecisionTime() float64 {
	return ps.nextDecision
}

// HasWork reports whether anything is running, ready or held.
func (ps *ProcessScheduler) HasWork() bool {
	return ps.running != nil || ps.admission.Waiting()
}

// TryStart dispatches the front of the ready queue if the CPU is idle.
// Returns the started process, or nil if nothing was started.
func (ps *ProcessScheduler) TryStart(now float64) *Process {
	if ps.running != nil {
		return nil
	}
	p := ps.admission.Ready.Dequeue()
	if p == nil {
		ps.nextDecision = math.Inf(1)
		return nil
	}

	p.State = StateRunning
	p.WaitTime += now - p.ReadySince
	slice := ps.policy.ChooseQuantum(now, ps.admission.Ready, p)
	p.PlannedQuantum = min(slice, p.RemainingService)
	ps.running = p
	ps.nextDecision = now + p.PlannedQuantum
	ps.metrics.Dispatches++

	logrus.Debugf("[t=%.2f] dispatch job %d: quantum=%.4f remaining=%.4f policy=%s",
		now, p.ID, p.PlannedQuantum, p.RemainingService, ps.policy.Name())
	if ps.trace.Enabled() {
		ps.trace.RecordDispatch(trace.DispatchRecord{
			JobID:     p.ID,
			Clock:     now,
			Quantum:   p.PlannedQuantum,
			Remaining: p.RemainingService,
			ReadyLen:  ps.admission.Ready.Len(),
			Policy:    ps.policy.Name(),
		})
	}
	return p
}

// Advance executes the internal CPU event due at now: the running process
// consumes its planned slice and either finishes or goes to the back of the
// ready queue. The next process is dispatched in both cases.
// Returns the completion record when a process finished, otherwise nil.
func (ps *ProcessScheduler) Advance(now float64) *FinishedRecord {
	p := ps.running
	if p == nil {
		ps.TryStart(now)
		return nil
	}

	p.RemainingService -= p.PlannedQuantum
	if p.Done() {
		p.RemainingService = 0
		fr := ps.finish(p, now)
		for _, rp := range ps.admission.Reclaim(now) {
			ps.metrics.Reclaimed++
			if ps.trace.Enabled() {
				ps.trace.RecordAdmission(trace.AdmissionRecord{
					JobID:   rp.ID,
					Clock:   now,
					Outcome: trace.OutcomeReclaimed,
					Reason:  "resources released",
				})
			}
		}
		ps.TryStart(now)
		return &fr
	}

	logrus.Debugf("[t=%.2f] slice expired for job %d, %.4f left", now, p.ID, p.RemainingService)
	ps.metrics.Preemptions++
	p.ReadySince = now
	ps.admission.Ready.Enqueue(p)
	ps.running = nil
	ps.TryStart(now)
	return nil
}

func (ps *ProcessScheduler) finish(p *Process, now float64) FinishedRecord {
	ps.pool.Release(p.Memory, p.Devices)
	p.State = StateFinished
	ps.running = nil
	ps.nextDecision = math.Inf(1)

	turnaround := now - p.ArrivalTime
	fr := FinishedRecord{
		JobID:          p.ID,
		ArrivalTime:    p.ArrivalTime,
		CompletionTime: now,
		Turnaround:     turnaround,
		WaitOverhead:   turnaround - p.ServiceTime,
	}
	ps.metrics.recordFinished(fr, p.WaitTime)
	logrus.Infof("[t=%.2f] finished job %d: turnaround=%.2f", now, p.ID, turnaround)
	return fr
}
