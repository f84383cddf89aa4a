// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/jobsched/sim/trace"
)

// Simulator is the simulation context: it holds the clock, the resource pool,
// the queues, the CPU slot and the pending external commands. Nothing in the
// package keeps state outside of it.
type Simulator struct {
	Clock float64
	// Timeline has all pending external commands
	Timeline  *Timeline
	Pool      *ResourcePool
	Admission *AdmissionManager
	CPU       *ProcessScheduler
	Metrics   *Metrics

	config   SimConfig
	team     int
	policies map[PolicyKind]QuantumPolicy
	reporter Reporter
	trace    *trace.SimulationTrace
}

// NewSimulator creates a simulator from cfg. A nil reporter discards all output.
func NewSimulator(cfg SimConfig, reporter Reporter) *Simulator {
	if !IsValidPolicy(string(cfg.Policy)) {
		panic(fmt.Sprintf("unknown quantum policy %q", cfg.Policy))
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyDynamic
	}
	if reporter == nil {
		reporter = DiscardReporter{}
	}
	pool := NewResourcePool(cfg.TotalMemory, cfg.TotalDevices)
	admission := NewAdmissionManager(pool)
	metrics := NewMetrics()
	s := &Simulator{
		Timeline:  NewTimeline(),
		Pool:      pool,
		Admission: admission,
		Metrics:   metrics,
		config:    cfg,
		team:      cfg.Team,
		reporter:  reporter,
	}
	s.buildPolicies()
	s.CPU = NewProcessScheduler(pool, admission, s.policies[cfg.Policy], metrics)
	return s
}

// SetTrace enables decision recording. nil disables it.
func (sim *Simulator) SetTrace(st *trace.SimulationTrace) {
	sim.trace = st
	sim.CPU.SetTrace(st)
}

// Team returns the current team offset.
func (sim *Simulator) Team() int {
	return sim.team
}

// Schedule adds external commands to the timeline.
func (sim *Simulator) Schedule(cmds ...Command) {
	for _, c := range cmds {
		sim.Timeline.Schedule(c)
	}
}

// Run drives the simulation until no external command remains and the CPU,
// ready queue and hold queues are all empty. Jobs that stay held once the
// input is exhausted stop the loop as well.
func (sim *Simulator) Run() {
	for sim.Timeline.Len() > 0 || sim.CPU.HasWork() {
		internal := sim.CPU.NextDecisionTime()
		external := sim.Timeline.NextTime()

		switch nextSource(internal, external) {
		case sourceNone:
			logrus.Infof("[t=%.2f] %d job(s) held with no future event", sim.Clock, sim.Admission.Held())
			sim.finish()
			return
		case sourceBoth:
			sim.advanceTo(internal)
			sim.CPU.Advance(sim.Clock)
			sim.executeNext()
		case sourceInternal:
			sim.advanceTo(internal)
			sim.CPU.Advance(sim.Clock)
		case sourceExternal:
			sim.advanceTo(external)
			sim.executeNext()
		}
	}
	sim.finish()
}

func (sim *Simulator) finish() {
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[t=%.2f] Simulation ended", sim.Clock)
}

func (sim *Simulator) advanceTo(t float64) {
	if t > sim.Clock {
		sim.Clock = t
	}
}

// executeNext pops the next external command and runs it. A failure, error
// or panic, is reported as a one-line diagnostic and the run continues.
func (sim *Simulator) executeNext() {
	cmd := sim.Timeline.PopNext()
	if cmd == nil {
		return
	}
	logrus.Debugf("[t=%.2f] executing %s command (line %d)", sim.Clock, cmd.Kind(), cmd.Order())
	if err := sim.execute(cmd); err != nil {
		sim.Metrics.Faults++
		logrus.Warnf("[t=%.2f] command failed: %v", sim.Clock, err)
		sim.reporter.Notice("ERROR processing: " + cmd.Line())
	}
}

func (sim *Simulator) execute(cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s command panicked: %v", cmd.Kind(), r)
		}
	}()
	return cmd.Execute(sim)
}

// buildPolicies creates one instance of each policy using the current team offset.
func (sim *Simulator) buildPolicies() {
	sim.policies = map[PolicyKind]QuantumPolicy{
		PolicyDynamic: NewQuantumPolicy(PolicyDynamic, 0),
		PolicyStatic:  NewQuantumPolicy(PolicyStatic, sim.config.StaticQuantum(sim.team)),
		PolicyFCFS:    NewQuantumPolicy(PolicyFCFS, 0),
	}
}

// resetPolicies rebuilds the policies after a configuration command and
// makes the configured initial policy active again. The running process keeps its slice.
func (sim *Simulator) resetPolicies() {
	sim.buildPolicies()
	sim.CPU.SetPolicy(sim.policies[sim.config.Policy])
}
