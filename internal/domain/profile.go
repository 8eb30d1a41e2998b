package domain

// Role distinguishes the three user populations.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployer Role = "employer"
	RoleWorker   Role = "worker"
)

// Default ratings applied at registration.
const (
	DefaultWorkerRating   = 1.0
	DefaultEmployerRating = 3.0
)

// BankDetailPlaceholder is the sentinel stored for bank fields the user
// has not filled in yet. Payments must not progress while any bank field
// still holds it.
const BankDetailPlaceholder = "Not provided"

// IsValidRole reports whether r is one of the known roles.
func IsValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleEmployer || r == RoleWorker
}

// Transition is the audit-facing record of one applied status change.
// Changed is false for idempotent no-ops (re-promotion of an active
// worker, reschedule of an already scheduled interview).
type Transition struct {
	WorkerID string
	From     WorkerStatus
	To       WorkerStatus
	Trigger  StatusTrigger
	Actor    string
	Changed  bool
}
