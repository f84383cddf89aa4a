package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_EmptyTrace_ReturnsZeroSummary(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	assert.Zero(t, summary.TotalDecisions)
	assert.Zero(t, summary.DispatchCount)
	assert.Zero(t, summary.MeanQuantum)
	assert.NotNil(t, summary.PolicyDistribution)
}

func TestSummarize_NilTrace_ReturnsZeroSummary(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.TotalDecisions)
	assert.Empty(t, summary.PolicyDistribution)
}

func TestSummarize_CountsOutcomesAndQuanta(t *testing.T) {
	// GIVEN admissions of every outcome, three dispatches and one switch
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	for _, o := range []string{OutcomeAdmitted, OutcomeAdmitted, OutcomeHeldQ1, OutcomeHeldQ2, OutcomeRejected, OutcomeReclaimed} {
		st.RecordAdmission(AdmissionRecord{Outcome: o})
	}
	st.RecordDispatch(DispatchRecord{JobID: 1, Quantum: 4, Policy: "STATIC RR"})
	st.RecordDispatch(DispatchRecord{JobID: 2, Quantum: 4, Policy: "STATIC RR"})
	st.RecordDispatch(DispatchRecord{JobID: 1, Quantum: 1, Policy: "FCFS"})
	st.RecordSwitch(SwitchRecord{From: "STATIC RR", To: "FCFS"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN every counter reflects the records
	assert.Equal(t, 6, summary.TotalDecisions)
	assert.Equal(t, 2, summary.AdmittedCount)
	assert.Equal(t, 2, summary.HeldCount)
	assert.Equal(t, 1, summary.RejectedCount)
	assert.Equal(t, 1, summary.ReclaimedCount)
	assert.Equal(t, 3, summary.DispatchCount)
	assert.Equal(t, 3.0, summary.MeanQuantum)
	assert.Equal(t, 4.0, summary.MaxQuantum)
	assert.Equal(t, map[string]int{"STATIC RR": 2, "FCFS": 1}, summary.PolicyDistribution)
	assert.Equal(t, 1, summary.SwitchCount)
}
