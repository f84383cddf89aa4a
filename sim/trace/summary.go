package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	AdmittedCount      int // admitted on arrival
	HeldCount          int // held in either hold queue on arrival
	RejectedCount      int
	ReclaimedCount     int // admitted later from a hold queue
	DispatchCount      int
	MeanQuantum        float64
	MaxQuantum         float64
	PolicyDistribution map[string]int // policy name → dispatches granted under it
	SwitchCount        int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PolicyDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		switch a.Outcome {
		case OutcomeAdmitted:
			summary.AdmittedCount++
		case OutcomeHeldQ1, OutcomeHeldQ2:
			summary.HeldCount++
		case OutcomeRejected:
			summary.RejectedCount++
		case OutcomeReclaimed:
			summary.ReclaimedCount++
		}
	}

	if len(st.Dispatches) > 0 {
		totalQuantum := 0.0
		for _, d := range st.Dispatches {
			summary.PolicyDistribution[d.Policy]++
			totalQuantum += d.Quantum
			if d.Quantum > summary.MaxQuantum {
				summary.MaxQuantum = d.Quantum
			}
		}
		summary.DispatchCount = len(st.Dispatches)
		summary.MeanQuantum = totalQuantum / float64(len(st.Dispatches))
	}

	summary.SwitchCount = len(st.Switches)

	return summary
}
