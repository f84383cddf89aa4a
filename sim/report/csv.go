package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/inference-sim/jobsched/sim"
)

var finishedHeader = []string{"job_id", "arrival_time", "completion_time", "turnaround", "waited_time"}

// WriteFinishedCSV writes one row per finished record, in completion order.
func WriteFinishedCSV(w io.Writer, records []sim.FinishedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(finishedHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, fr := range records {
		row := []string{
			strconv.Itoa(fr.JobID),
			strconv.FormatFloat(fr.ArrivalTime, 'f', -1, 64),
			strconv.FormatFloat(fr.CompletionTime, 'f', -1, 64),
			strconv.FormatFloat(fr.Turnaround, 'f', -1, 64),
			strconv.FormatFloat(fr.WaitOverhead, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing job %d: %w", fr.JobID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveFinishedCSV writes the records to the file at path, replacing it.
func SaveFinishedCSV(path string, records []sim.FinishedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteFinishedCSV(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
