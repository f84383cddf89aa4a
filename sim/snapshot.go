package sim

// Reporter receives status snapshots for display commands and one-line
// notices (policy switches, diagnostics). Rendering is left to the implementation.
type Reporter interface {
	Report(s Snapshot)
	Notice(msg string)
}

// DiscardReporter drops everything it is given.
type DiscardReporter struct{}

func (DiscardReporter) Report(Snapshot) {}
func (DiscardReporter) Notice(string)   {}

// ReadyEntry is one ready-queue line of a snapshot.
type ReadyEntry struct {
	JobID     int
	Remaining float64
}

// Snapshot is a read-only copy of the simulation state at one instant.
type Snapshot struct {
	Clock            float64
	TotalMemory      int
	AvailableMemory  int
	TotalDevices     int
	AvailableDevices int
	Policy           string
	Running          *ReadyEntry // nil when the CPU is idle
	Ready            []ReadyEntry
	Hold1            []Job // ascending memory, then arrival
	Hold2            []Job // arrival order
	Finished         []FinishedRecord
}

// Snapshot captures the current state.
func (sim *Simulator) Snapshot() Snapshot {
	s := Snapshot{
		Clock:            sim.Clock,
		TotalMemory:      sim.Pool.TotalMemory(),
		AvailableMemory:  sim.Pool.AvailableMemory(),
		TotalDevices:     sim.Pool.TotalDevices(),
		AvailableDevices: sim.Pool.AvailableDevices(),
		Policy:           sim.CPU.Policy().Name(),
		Hold1:            sim.Admission.Hold1.Items(),
		Hold2:            sim.Admission.Hold2.Items(),
		Finished:         append([]FinishedRecord(nil), sim.Metrics.Finished...),
	}
	if p := sim.CPU.Running(); p != nil {
		s.Running = &ReadyEntry{JobID: p.ID, Remaining: p.RemainingService}
	}
	for _, p := range sim.Admission.Ready.Items() {
		s.Ready = append(s.Ready, ReadyEntry{JobID: p.ID, Remaining: p.RemainingService})
	}
	return s
}
