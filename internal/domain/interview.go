package domain

import "time"

// InterviewMode is online or offline; the mode decides which contact
// field (meeting link or location) is required.
type InterviewMode string

const (
	InterviewOnline  InterviewMode = "online"
	InterviewOffline InterviewMode = "offline"
)

// InterviewStatus is the per-record scheduling state. Completed records
// are immutable.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
)

// InterviewResult is recorded only when the interview completes.
type InterviewResult string

const (
	ResultSelected InterviewResult = "selected"
	ResultRejected InterviewResult = "rejected"
	ResultPending  InterviewResult = "pending"
)

// StatusTriggerForResult maps a completed interview's result onto the
// worker lifecycle trigger it fires.
func StatusTriggerForResult(r InterviewResult) (StatusTrigger, bool) {
	switch r {
	case ResultSelected:
		return TriggerInterviewSelected, true
	case ResultRejected:
		return TriggerInterviewRejected, true
	default:
		return "", false
	}
}

// TimeRemaining is the read-only projection of how long until a
// scheduled interview. It is derived, never stored; overdue interviews
// report zero rather than being auto-expired.
type TimeRemaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Overdue bool `json:"overdue"`
}

// RemainingUntil computes the projection for a scheduled date relative
// to now.
func RemainingUntil(scheduled, now time.Time) TimeRemaining {
	d := scheduled.Sub(now)
	if d <= 0 {
		return TimeRemaining{Overdue: true}
	}

	return TimeRemaining{
		Days:    int(d.Hours()) / 24,
		Hours:   int(d.Hours()) % 24,
		Minutes: int(d.Minutes()) % 60,
	}
}
