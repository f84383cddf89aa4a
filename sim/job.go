// Defines the Job and Process types. A Job is the immutable record of an
// arrival command; a Process is the mutable runtime instance created when the
// job is admitted into the ready queue.

package sim

import (
	"fmt"
)

// Epsilon absorbs floating-point residue when remaining service is compared to zero.
const Epsilon = 1e-9

// ProcessState represents the lifecycle state of an admitted process.
type ProcessState string

const (
	StateReady    ProcessState = "ready"
	StateRunning  ProcessState = "running"
	StateFinished ProcessState = "finished"
)

// Job is an arrival record. It is copied by value into hold queues and
// into the Process that admits it.
type Job struct {
	ID          int     // Job identifier from the J= field
	ArrivalTime float64 // Simulation time of arrival
	Memory      int     // Requested memory units
	Devices     int     // Requested device units
	ServiceTime float64 // Total service time needed at full admission
	Priority    int     // Priority tag; 1 routes to hold queue 1 when resources are scarce
	Serial      uint64  // Arrival serial, assigned on submission. FIFO tie-break only.
}

func (j Job) String() string {
	return fmt.Sprintf("Job: (ID: %d, ArrivalTime: %.2f, Memory: %d, Devices: %d, Service: %.2f, Priority: %d)",
		j.ID, j.ArrivalTime, j.Memory, j.Devices, j.ServiceTime, j.Priority)
}

// Process models an admitted job while it waits for, or holds, the CPU.
type Process struct {
	Job

	State            ProcessState
	RemainingService float64 // Service time still owed; reaches 0 on completion
	WaitTime         float64 // Accumulated time spent in the ready queue
	ReadySince       float64 // Time the process most recently entered the ready queue
	PlannedQuantum   float64 // Slice granted on the current dispatch, already clamped to RemainingService
}

// NewProcess instantiates a ready Process for an admitted job.
func NewProcess(j Job, now float64) *Process {
	return &Process{
		Job:              j,
		State:            StateReady,
		RemainingService: j.ServiceTime,
		ReadySince:       now,
	}
}

// Done reports whether the remaining service is zero within Epsilon.
func (p *Process) Done() bool {
	return p.RemainingService <= Epsilon
}

func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Remaining: %.2f, Waited: %.2f)",
		p.ID, p.State, p.RemainingService, p.WaitTime)
}
