package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/jobsched/sim/trace"
)

// CommandKind is the leading tag of an external command.
type CommandKind byte

const (
	KindConfig  CommandKind = 'C'
	KindArrival CommandKind = 'A'
	KindDisplay CommandKind = 'D'
	KindSwitch  CommandKind = 'S'
)

// Rank orders commands sharing a timestamp: configuration first, then
// arrivals, then everything else.
func (k CommandKind) Rank() int {
	switch k {
	case KindConfig:
		return 0
	case KindArrival:
		return 1
	default:
		return 2
	}
}

func (k CommandKind) String() string {
	return string(rune(k))
}

// Command defines the interface for all external commands.
// Each command has a Timestamp, a Kind used for same-time ordering, the
// position of its line in the input, and an Execute method that advances
// simulation state when invoked.
type Command interface {
	Timestamp() float64
	Kind() CommandKind
	Order() uint64
	Line() string
	Execute(*Simulator) error
}

// CommandHeader carries the fields shared by every command.
type CommandHeader struct {
	Time float64 // Simulation time of the command
	Seq  uint64  // Position of the line in the input
	Raw  string  // Original line, for diagnostics
}

func (h CommandHeader) Timestamp() float64 { return h.Time }
func (h CommandHeader) Order() uint64      { return h.Seq }
func (h CommandHeader) Line() string       { return h.Raw }

// ConfigCommand (re)configures the system totals and the team offset.
// Nil fields keep their previous values.
type ConfigCommand struct {
	CommandHeader
	Memory  *int
	Devices *int
	Team    *int
}

func (c *ConfigCommand) Kind() CommandKind { return KindConfig }

// Execute resets the resource pool and rebuilds the quantum policies.
func (c *ConfigCommand) Execute(sim *Simulator) error {
	if sim.Clock < c.Time {
		sim.Clock = c.Time
	}
	memory, devices := sim.Pool.TotalMemory(), sim.Pool.TotalDevices()
	if c.Memory != nil {
		memory = *c.Memory
	}
	if c.Devices != nil {
		devices = *c.Devices
	}
	if memory < 0 || devices < 0 {
		return fmt.Errorf("negative system capacity M=%d S=%d", memory, devices)
	}
	if c.Team != nil {
		sim.team = *c.Team
	}
	sim.Pool.Configure(memory, devices)
	sim.resetPolicies()
	logrus.Infof("[t=%.2f] configured M=%d S=%d team=%d", sim.Clock, memory, devices, sim.team)
	return nil
}

// ArrivalCommand submits a new job.
type ArrivalCommand struct {
	CommandHeader
	Job Job
}

func (c *ArrivalCommand) Kind() CommandKind { return KindArrival }

// Execute submits the job and gives the CPU a chance to start it.
func (c *ArrivalCommand) Execute(sim *Simulator) error {
	j := c.Job
	if j.Memory < 0 || j.Devices < 0 {
		return fmt.Errorf("job %d: negative resource request M=%d S=%d", j.ID, j.Memory, j.Devices)
	}
	if j.ServiceTime < 0 {
		return fmt.Errorf("job %d: negative service time %.2f", j.ID, j.ServiceTime)
	}
	logrus.Infof("<< Arrival: job %d at %.2f", j.ID, sim.Clock)

	outcome := sim.Admission.Submit(j, sim.Clock)
	sim.Metrics.Submitted++
	switch outcome {
	case Admitted:
		sim.Metrics.Admitted++
	case HeldQ1, HeldQ2:
		sim.Metrics.Held++
	case Rejected:
		sim.Metrics.Rejected++
	}
	if sim.trace.Enabled() {
		sim.trace.RecordAdmission(trace.AdmissionRecord{
			JobID:   j.ID,
			Clock:   sim.Clock,
			Outcome: string(outcome),
		})
	}
	sim.CPU.TryStart(sim.Clock)
	return nil
}

// DisplayCommand requests a status report.
type DisplayCommand struct {
	CommandHeader
}

func (c *DisplayCommand) Kind() CommandKind { return KindDisplay }

// Execute hands a snapshot of the current state to the reporter.
func (c *DisplayCommand) Execute(sim *Simulator) error {
	sim.reporter.Report(sim.Snapshot())
	return nil
}

// SwitchCommand replaces the active quantum policy.
// Mode is the raw mode token, empty when the line had none.
type SwitchCommand struct {
	CommandHeader
	Mode string
}

func (c *SwitchCommand) Kind() CommandKind { return KindSwitch }

// Execute switches the policy, or writes a notice when the mode is not recognized.
func (c *SwitchCommand) Execute(sim *Simulator) error {
	if c.Mode == "" {
		sim.reporter.Notice(">> Unknown scheduler command: " + c.Raw)
		return nil
	}
	kind, ok := ParsePolicyMode(c.Mode)
	if !ok {
		sim.reporter.Notice(">> Unknown scheduler mode in: " + c.Raw)
		return nil
	}
	from := sim.CPU.Policy().Name()
	sim.CPU.SetPolicy(sim.policies[kind])
	to := sim.CPU.Policy().Name()
	if sim.trace.Enabled() {
		sim.trace.RecordSwitch(trace.SwitchRecord{Clock: sim.Clock, From: from, To: to})
	}
	sim.reporter.Notice(fmt.Sprintf(">> Scheduler switched to %s at t=%.2f", to, sim.Clock))
	return nil
}
