package model

import (
	"database/sql"
	"time"
)

// Profile is a row in the profiles table. WorkerStatus is written only
// through the status transition path; Version backs the optimistic
// serialization of concurrent transitions.
type Profile struct {
	UserID            string         `db:"user_id"`
	FullName          string         `db:"full_name"`
	Email             string         `db:"email"`
	Phone             sql.NullString `db:"phone"`
	Role              string         `db:"role"`
	WorkerStatus      string         `db:"worker_status"`
	Category          sql.NullString `db:"category"`
	Rating            float64        `db:"rating"`
	BankAccountHolder string         `db:"bank_account_holder"`
	BankAccountNumber string         `db:"bank_account_number"`
	BankIFSC          string         `db:"bank_ifsc"`
	Version           int            `db:"version"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// WorkerDocument is a row in worker_documents. One row per
// (worker, document_type); resubmission after rejection reuses the row.
type WorkerDocument struct {
	DocumentID         string         `db:"document_id"`
	WorkerID           string         `db:"worker_id"`
	DocumentType       string         `db:"document_type"`
	FilePath           string         `db:"file_path"`
	VerificationStatus string         `db:"verification_status"`
	VerifierID         sql.NullString `db:"verifier_id"`
	VerifierNotes      sql.NullString `db:"verifier_notes"`
	VerifiedAt         sql.NullTime   `db:"verified_at"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// WorkerInterview is a row in worker_interviews. A partial unique index
// guarantees at most one scheduled row per worker.
type WorkerInterview struct {
	InterviewID   string         `db:"interview_id"`
	WorkerID      string         `db:"worker_id"`
	EmployerID    string         `db:"employer_id"`
	ScheduledDate time.Time      `db:"scheduled_date"`
	Mode          string         `db:"mode"`
	MeetingLink   sql.NullString `db:"meeting_link"`
	Location      sql.NullString `db:"location"`
	Status        string         `db:"status"`
	Result        sql.NullString `db:"result"`
	Feedback      sql.NullString `db:"feedback"`
	Notes         sql.NullString `db:"notes"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Task is a row in tasks. CompletedSlots never exceeds Slots; reaching
// Slots flips the status to completed.
type Task struct {
	TaskID         string         `db:"task_id"`
	EmployerID     string         `db:"employer_id"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Budget         float64        `db:"budget"`
	Status         string         `db:"status"`
	Slots          int            `db:"slots"`
	CompletedSlots int            `db:"completed_slots"`
	Category       sql.NullString `db:"category"`
	Countries      sql.NullString `db:"countries"`
	AgeMin         sql.NullInt32  `db:"age_min"`
	AgeMax         sql.NullInt32  `db:"age_max"`
	Languages      sql.NullString `db:"languages"`
	DeviceTypes    sql.NullString `db:"device_types"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// TaskAssignment is a row in task_assignments.
type TaskAssignment struct {
	AssignmentID string    `db:"assignment_id"`
	TaskID       string    `db:"task_id"`
	WorkerID     string    `db:"worker_id"`
	CreatedAt    time.Time `db:"created_at"`
}

// TaskSubmission is a row in task_submissions. Rating is recorded at
// most once, after approval.
type TaskSubmission struct {
	SubmissionID  string          `db:"submission_id"`
	TaskID        string          `db:"task_id"`
	WorkerID      string          `db:"worker_id"`
	ProofText     sql.NullString  `db:"proof_text"`
	ProofFilePath sql.NullString  `db:"proof_file_path"`
	Status        string          `db:"status"`
	ReviewerID    sql.NullString  `db:"reviewer_id"`
	ReviewerNotes sql.NullString  `db:"reviewer_notes"`
	ReviewedAt    sql.NullTime    `db:"reviewed_at"`
	Rating        sql.NullFloat64 `db:"rating"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// PaymentRecord is a row in task_payment_records. At most one processing
// record exists per (task, worker, employer) triple.
type PaymentRecord struct {
	PaymentID     string         `db:"payment_id"`
	TaskID        string         `db:"task_id"`
	WorkerID      string         `db:"worker_id"`
	EmployerID    string         `db:"employer_id"`
	Amount        float64        `db:"amount"`
	PaymentStatus string         `db:"payment_status"`
	Method        string         `db:"method"`
	ExternalRef   sql.NullString `db:"external_ref"`
	CompletedAt   sql.NullTime   `db:"completed_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// TransactionProof is a row in transaction_proofs.
type TransactionProof struct {
	ProofID          string    `db:"proof_id"`
	PaymentID        string    `db:"payment_id"`
	FilePath         string    `db:"file_path"`
	ClaimedReference string    `db:"claimed_reference"`
	ReviewStatus     string    `db:"review_status"`
	CreatedAt        time.Time `db:"created_at"`
}

// StatusAudit is a row in worker_status_audit, appended in the same
// transaction as every applied status change.
type StatusAudit struct {
	AuditID    string    `db:"audit_id"`
	WorkerID   string    `db:"worker_id"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	Trigger    string    `db:"trigger"`
	Actor      string    `db:"actor"`
	CreatedAt  time.Time `db:"created_at"`
}

// WorkerVerificationRow is one row of the batched worker listing:
// profile fields plus document counters and the active interview, all
// produced by a single set-based query instead of per-worker round trips.
type WorkerVerificationRow struct {
	UserID        string         `db:"user_id"`
	FullName      string         `db:"full_name"`
	Email         string         `db:"email"`
	WorkerStatus  string         `db:"worker_status"`
	Category      sql.NullString `db:"category"`
	Rating        float64        `db:"rating"`
	DocsUploaded  int            `db:"docs_uploaded"`
	DocsApproved  int            `db:"docs_approved"`
	DocsRejected  int            `db:"docs_rejected"`
	InterviewID   sql.NullString `db:"interview_id"`
	InterviewDate sql.NullTime   `db:"interview_date"`
}
