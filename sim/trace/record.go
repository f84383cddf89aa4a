// Package trace provides decision-trace recording for scheduling analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// Admission outcomes recorded in AdmissionRecord.Outcome.
const (
	OutcomeAdmitted  = "admitted"
	OutcomeHeldQ1    = "held-q1"
	OutcomeHeldQ2    = "held-q2"
	OutcomeRejected  = "rejected"
	OutcomeReclaimed = "reclaimed"
)

// AdmissionRecord captures what happened to one job on submission or reclaim.
type AdmissionRecord struct {
	JobID   int
	Clock   float64
	Outcome string
	Reason  string
}

// DispatchRecord captures a single CPU dispatch and the slice it was granted.
type DispatchRecord struct {
	JobID     int
	Clock     float64
	Quantum   float64 // planned slice, already clamped to Remaining
	Remaining float64 // remaining service at dispatch time
	ReadyLen  int     // processes still waiting after this one was selected
	Policy    string
}

// SwitchRecord captures an explicit change of the active quantum policy.
type SwitchRecord struct {
	Clock float64
	From  string
	To    string
}
