package trace

import (
	"testing"
)

func TestSimulationTrace_RecordAdmission_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an admission record is recorded
	st.RecordAdmission(AdmissionRecord{
		JobID:   1,
		Clock:   3,
		Outcome: OutcomeHeldQ1,
	})

	// THEN the trace contains one admission record with correct data
	if len(st.Admissions) != 1 {
		t.Fatalf("expected 1 admission, got %d", len(st.Admissions))
	}
	if st.Admissions[0].JobID != 1 {
		t.Errorf("expected job 1, got %d", st.Admissions[0].JobID)
	}
	if st.Admissions[0].Outcome != OutcomeHeldQ1 {
		t.Errorf("expected outcome %q, got %q", OutcomeHeldQ1, st.Admissions[0].Outcome)
	}
}

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{
		JobID:     4,
		Clock:     10,
		Quantum:   2.5,
		Remaining: 6,
		ReadyLen:  2,
		Policy:    "DYNAMIC RR",
	})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].Quantum != 2.5 {
		t.Errorf("expected quantum 2.5, got %f", st.Dispatches[0].Quantum)
	}
	if st.Dispatches[0].ReadyLen != 2 {
		t.Errorf("expected ready length 2, got %d", st.Dispatches[0].ReadyLen)
	}
}

func TestSimulationTrace_RecordSwitch_AppendsRecord(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordSwitch(SwitchRecord{Clock: 5, From: "DYNAMIC RR", To: "FCFS"})

	if len(st.Switches) != 1 {
		t.Fatalf("expected 1 switch, got %d", len(st.Switches))
	}
	if st.Switches[0].To != "FCFS" {
		t.Errorf("expected switch to FCFS, got %s", st.Switches[0].To)
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must report disabled")
	}
	if NewSimulationTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("level none must report disabled")
	}
	if !NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("level decisions must report enabled")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true},
		{"detailed", false},
		{"DECISIONS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
