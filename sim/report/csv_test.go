package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/jobsched/sim"
)

func TestWriteFinishedCSV(t *testing.T) {
	// GIVEN two finished records
	records := []sim.FinishedRecord{
		{JobID: 2, ArrivalTime: 1, CompletionTime: 15, Turnaround: 14, WaitOverhead: 8},
		{JobID: 1, ArrivalTime: 1, CompletionTime: 17.5, Turnaround: 16.5, WaitOverhead: 6.25},
	}

	// WHEN written
	var buf bytes.Buffer
	require.NoError(t, WriteFinishedCSV(&buf, records))

	// THEN the rows keep completion order under the header
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"job_id", "arrival_time", "completion_time", "turnaround", "waited_time"},
		{"2", "1", "15", "14", "8"},
		{"1", "1", "17.5", "16.5", "6.25"},
	}, rows)
}

func TestWriteFinishedCSV_EmptyHasHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFinishedCSV(&buf, nil))
	assert.Equal(t, "job_id,arrival_time,completion_time,turnaround,waited_time\n", buf.String())
}

func TestSaveFinishedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finished.csv")
	require.NoError(t, SaveFinishedCSV(path, []sim.FinishedRecord{{JobID: 9, CompletionTime: 3, Turnaround: 3}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "9,0,3,3,0\n")
}

func TestSaveFinishedCSV_BadPath(t *testing.T) {
	err := SaveFinishedCSV(filepath.Join(t.TempDir(), "missing", "finished.csv"), nil)
	assert.Error(t, err)
}
