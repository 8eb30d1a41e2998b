package domain

// WorkerStatus is the enumerated lifecycle state stored on a profile.
// Every status mutation goes through the transition table below; nothing
// else in the codebase writes the worker_status column.
type WorkerStatus string

const (
	StatusDocumentUploadPending WorkerStatus = "document_upload_pending"
	StatusVerificationPending   WorkerStatus = "verification_pending"
	StatusInterviewPending      WorkerStatus = "interview_pending"
	StatusInterviewScheduled    WorkerStatus = "interview_scheduled"
	StatusActiveEmployee        WorkerStatus = "active_employee"
	StatusRejected              WorkerStatus = "rejected"
)

// StatusTrigger names an event that may advance the worker lifecycle.
type StatusTrigger string

const (
	// TriggerDocumentsSubmitted fires when all required document types
	// have been uploaded at least once.
	TriggerDocumentsSubmitted StatusTrigger = "documents_submitted"

	// TriggerAllDocumentsApproved fires when every required document type
	// has an approved record.
	TriggerAllDocumentsApproved StatusTrigger = "all_documents_approved"

	// TriggerInterviewScheduled fires when an interview is scheduled for
	// the worker. Legal from interview_scheduled as well: a reschedule
	// keeps the state and is treated as a no-op transition.
	TriggerInterviewScheduled StatusTrigger = "interview_scheduled"

	// TriggerInterviewSelected promotes the worker to active_employee.
	// Idempotent: re-applying it to an already-active worker is a no-op.
	TriggerInterviewSelected StatusTrigger = "interview_selected"

	// TriggerInterviewRejected marks the worker rejected after a failed
	// interview.
	TriggerInterviewRejected StatusTrigger = "interview_rejected"

	// TriggerApplicationRejected is the admin-side terminal rejection,
	// legal from any pre-active state.
	TriggerApplicationRejected StatusTrigger = "application_rejected"

	// TriggerEmployerVerified is the employer track: employers start at
	// verification_pending and are promoted straight to active_employee.
	TriggerEmployerVerified StatusTrigger = "employer_verified"
)

// AllWorkerStatuses is the closed enumeration of legal status values.
var AllWorkerStatuses = []WorkerStatus{
	StatusDocumentUploadPending,
	StatusVerificationPending,
	StatusInterviewPending,
	StatusInterviewScheduled,
	StatusActiveEmployee,
	StatusRejected,
}

// transitions is the single source of truth for legal status changes.
var transitions = map[WorkerStatus]map[StatusTrigger]WorkerStatus{
	StatusDocumentUploadPending: {
		TriggerDocumentsSubmitted:  StatusVerificationPending,
		TriggerApplicationRejected: StatusRejected,
	},
	StatusVerificationPending: {
		TriggerAllDocumentsApproved: StatusInterviewPending,
		TriggerEmployerVerified:     StatusActiveEmployee,
		TriggerApplicationRejected:  StatusRejected,
	},
	StatusInterviewPending: {
		TriggerInterviewScheduled:  StatusInterviewScheduled,
		TriggerApplicationRejected: StatusRejected,
	},
	StatusInterviewScheduled: {
		TriggerInterviewScheduled:  StatusInterviewScheduled,
		TriggerInterviewSelected:   StatusActiveEmployee,
		TriggerInterviewRejected:   StatusRejected,
		TriggerApplicationRejected: StatusRejected,
	},
	StatusActiveEmployee: {
		// Re-applying the promotion is a legal no-op so that racing call
		// sites cannot fail a worker who is already active.
		TriggerInterviewSelected: StatusActiveEmployee,
	},
	StatusRejected: {},
}

// IsValidWorkerStatus reports whether s is a member of the closed
// status enumeration.
func IsValidWorkerStatus(s WorkerStatus) bool {
	for _, v := range AllWorkerStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no trigger can move the worker out of s.
// active_employee still accepts the idempotent re-promotion, but it never
// changes the state, so both active_employee and rejected are terminal.
func IsTerminal(s WorkerStatus) bool {
	return s == StatusActiveEmployee || s == StatusRejected
}

// NextStatus validates that the current state accepts the trigger and
// returns the resulting state. It is the only place transition legality
// is decided; callers that get an IllegalTransitionError must not write
// the status column at all.
func NextStatus(current WorkerStatus, trigger StatusTrigger) (WorkerStatus, error) {
	accepted, ok := transitions[current]
	if !ok {
		return "", &IllegalTransitionError{Current: current, Trigger: trigger}
	}

	next, ok := accepted[trigger]
	if !ok {
		return "", &IllegalTransitionError{Current: current, Trigger: trigger}
	}

	return next, nil
}

// InitialStatus returns the lifecycle entry point for a role.
func InitialStatus(role Role) WorkerStatus {
	if role == RoleEmployer {
		return StatusVerificationPending
	}
	return StatusDocumentUploadPending
}
