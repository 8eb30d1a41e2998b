package domain

// TaskStatus is the employer-managed task state.
type TaskStatus string

const (
	TaskActive    TaskStatus = "active"
	TaskPaused    TaskStatus = "paused"
	TaskCompleted TaskStatus = "completed"
)

// taskTransitions: active and paused toggle freely, completed is
// terminal. Completion also happens automatically when the last slot is
// filled by an approved submission.
var taskTransitions = map[TaskStatus]map[TaskStatus]bool{
	TaskActive:    {TaskPaused: true, TaskCompleted: true},
	TaskPaused:    {TaskActive: true, TaskCompleted: true},
	TaskCompleted: {},
}

// CanChangeTaskStatus reports whether a manual status change is legal.
func CanChangeTaskStatus(from, to TaskStatus) bool {
	return taskTransitions[from][to]
}

// SubmissionStatus is the proof-of-work review state. pending moves to
// approved or rejected exactly once and is never reversed.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// PaymentStatus is the manual bank-transfer attestation state.
type PaymentStatus string

const (
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
)

// ProofStatus is the review state of an uploaded transaction proof.
type ProofStatus string

const (
	ProofPending  ProofStatus = "pending"
	ProofAccepted ProofStatus = "accepted"
	ProofRejected ProofStatus = "rejected"
)

// Worker ratings recorded by employers are constrained to this range.
const (
	MinRating = 1.0
	MaxRating = 5.0
)
