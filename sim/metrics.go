// Tracks completion records and simulation-wide counters such as
// admissions, dispatches, preemptions and accumulated wait.

package sim

import (
	"fmt"
	"io"
)

// FinishedRecord is the completion record of one job.
// WaitOverhead is Turnaround minus the job's original service time.
type FinishedRecord struct {
	JobID          int
	ArrivalTime    float64
	CompletionTime float64
	Turnaround     float64
	WaitOverhead   float64
}

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	Submitted   int // Arrival commands executed
	Admitted    int // Admitted immediately on arrival
	Held        int // Sent to a hold queue on arrival
	Rejected    int // Larger than total capacity
	Reclaimed   int // Admitted later from a hold queue
	Dispatches  int // CPU dispatch decisions
	Preemptions int // Slices that expired with work remaining
	Faults      int // External commands that failed during handling

	TotalTurnaround float64 // Sum of turnaround over finished jobs
	TotalOverhead   float64 // Sum of WaitOverhead over finished jobs
	TotalWait       float64 // Sum of accumulated ready-queue wait over finished jobs
	SimEndedTime    float64 // Clock when the loop stopped

	Finished []FinishedRecord // Append-only, in completion order
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{Finished: make([]FinishedRecord, 0)}
}

func (m *Metrics) recordFinished(fr FinishedRecord, wait float64) {
	m.Finished = append(m.Finished, fr)
	m.TotalTurnaround += fr.Turnaround
	m.TotalOverhead += fr.WaitOverhead
	m.TotalWait += wait
}

// Completed returns the number of finished jobs.
func (m *Metrics) Completed() int {
	return len(m.Finished)
}

// MeanTurnaround returns the average turnaround over finished jobs, or 0.
func (m *Metrics) MeanTurnaround() float64 {
	if len(m.Finished) == 0 {
		return 0
	}
	return m.TotalTurnaround / float64(len(m.Finished))
}

// MeanOverhead returns the average WaitOverhead over finished jobs, or 0.
func (m *Metrics) MeanOverhead() float64 {
	if len(m.Finished) == 0 {
		return 0
	}
	return m.TotalOverhead / float64(len(m.Finished))
}

// Print writes the aggregated metrics at the end of the simulation.
// heldForever is the number of jobs still in a hold queue when the run stopped.
func (m *Metrics) Print(w io.Writer, heldForever int) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Simulation Ended     : %.2f\n", m.SimEndedTime)
	fmt.Fprintf(w, "Submitted Jobs       : %d\n", m.Submitted)
	fmt.Fprintf(w, "Rejected Jobs        : %d\n", m.Rejected)
	fmt.Fprintf(w, "Held Forever         : %d\n", heldForever)
	fmt.Fprintf(w, "Completed Jobs       : %d\n", m.Completed())
	fmt.Fprintf(w, "Dispatches           : %d\n", m.Dispatches)
	fmt.Fprintf(w, "Preemptions          : %d\n", m.Preemptions)
	if m.Faults > 0 {
		fmt.Fprintf(w, "Faulted Commands     : %d\n", m.Faults)
	}
	if m.Completed() > 0 {
		fmt.Fprintf(w, "Average Turnaround   : %.2f\n", m.MeanTurnaround())
		fmt.Fprintf(w, "Average Waited Time  : %.2f\n", m.MeanOverhead())
		fmt.Fprintf(w, "Total Ready Wait     : %.2f\n", m.TotalWait)
	}
}
