// Package report renders simulation snapshots for people and exports
// finished-job records for tools.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/inference-sim/jobsched/sim"
)

const rule = "--------------------------------------------------------"

// TextReporter writes status reports and notices as plain text.
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a TextReporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Notice writes msg on its own line.
func (r *TextReporter) Notice(msg string) {
	fmt.Fprintln(r.w, msg)
}

// Report writes the multi-section system status.
func (r *TextReporter) Report(s sim.Snapshot) {
	w := r.w
	fmt.Fprint(w, "\n\n-------------------------------------------------------\n")
	fmt.Fprintln(w, "System Status:                                         ")
	fmt.Fprintln(w, "-------------------------------------------------------")
	fmt.Fprintf(w, "          Time: %.2f\n", s.Clock)
	fmt.Fprintf(w, "  Total Memory: %d\n", s.TotalMemory)
	fmt.Fprintf(w, " Avail. Memory: %d\n", s.AvailableMemory)
	fmt.Fprintf(w, " Total Devices: %d\n", s.TotalDevices)
	fmt.Fprintf(w, "Avail. Devices: %d\n", s.AvailableDevices)
	fmt.Fprintln(w)

	section(w, "Jobs in Ready List")
	if len(s.Ready) == 0 {
		fmt.Fprintln(w, "  EMPTY")
	}
	for _, e := range s.Ready {
		fmt.Fprintf(w, "Job ID %d, %.2f Cycles left to completion.\n", e.JobID, e.Remaining)
	}
	fmt.Fprintln(w)

	section(w, "Jobs in Long Job List")
	fmt.Fprint(w, "  EMPTY\n\n")

	holdList(w, "Jobs in Hold List 1", s.Hold1)
	holdList(w, "Jobs in Hold List 2", s.Hold2)

	section(w, "Jobs in Hold List 3")
	fmt.Fprint(w, "  EMPTY\n\n\n")

	fmt.Fprintln(w, "Finished Jobs (detailed)                                ")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  Job    ArrivalTime     CompleteTime     TurnaroundTime    WaitedTime")
	fmt.Fprintln(w, "------------------------------------------------------------------------")
	if len(s.Finished) == 0 {
		fmt.Fprintln(w, "  EMPTY")
	} else {
		for _, fr := range s.Finished {
			fmt.Fprintf(w, "  %d%12.2f%18.2f%18.2f%18s\n",
				fr.JobID, fr.ArrivalTime, fr.CompletionTime, fr.Turnaround, FormatMetric(fr.WaitOverhead))
		}
		fmt.Fprintf(w, "Total Finished Jobs:             %d\n", len(s.Finished))
	}
	fmt.Fprint(w, "\n\n")
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%-56s\n", title)
	fmt.Fprintln(w, rule)
}

func holdList(w io.Writer, title string, jobs []sim.Job) {
	section(w, title)
	if len(jobs) == 0 {
		fmt.Fprintln(w, "  EMPTY")
	}
	for _, j := range jobs {
		fmt.Fprintf(w, "Job ID %d, %.2f Cycles left to completion.\n", j.ID, j.ServiceTime)
	}
	fmt.Fprintln(w)
}

// FormatMetric prints integral values without a fraction and everything
// else with five decimals.
func FormatMetric(v float64) string {
	if math.Abs(v-math.Round(v)) < 1e-9 {
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
	return strconv.FormatFloat(v, 'f', 5, 64)
}
