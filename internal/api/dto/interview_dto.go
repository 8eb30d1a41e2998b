package dto

import (
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

type ScheduleInterviewRequest struct {
	WorkerID      string    `json:"worker_id" binding:"required"`
	EmployerID    string    `json:"employer_id" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	Mode          string    `json:"mode" binding:"required"`
	MeetingLink   string    `json:"meeting_link"`
	Location      string    `json:"location"`
	Notes         string    `json:"notes"`
}

type InterviewResultRequest struct {
	Result   string `json:"result" binding:"required"`
	Feedback string `json:"feedback"`
	Actor    string `json:"actor" binding:"required"`
}

type InterviewDTO struct {
	InterviewID   string                `json:"interview_id"`
	WorkerID      string                `json:"worker_id"`
	EmployerID    string                `json:"employer_id"`
	ScheduledDate string                `json:"scheduled_date"`
	Mode          string                `json:"mode"`
	MeetingLink   string                `json:"meeting_link,omitempty"`
	Location      string                `json:"location,omitempty"`
	Status        string                `json:"status"`
	Result        string                `json:"result,omitempty"`
	Feedback      string                `json:"feedback,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	TimeRemaining *domain.TimeRemaining `json:"time_remaining,omitempty"`
	CreatedAt     string                `json:"created_at"`
}

// FromInterview maps an interview row. The time-remaining projection is
// derived here for scheduled records only; it is never stored.
func FromInterview(iv *model.WorkerInterview, now time.Time) InterviewDTO {
	out := InterviewDTO{
		InterviewID:   iv.InterviewID,
		WorkerID:      iv.WorkerID,
		EmployerID:    iv.EmployerID,
		ScheduledDate: iv.ScheduledDate.Format(time.RFC3339),
		Mode:          iv.Mode,
		MeetingLink:   iv.MeetingLink.String,
		Location:      iv.Location.String,
		Status:        iv.Status,
		Result:        iv.Result.String,
		Feedback:      iv.Feedback.String,
		Notes:         iv.Notes.String,
		CreatedAt:     iv.CreatedAt.Format(time.RFC3339),
	}
	if iv.Status == string(domain.InterviewScheduled) {
		remaining := domain.RemainingUntil(iv.ScheduledDate, now)
		out.TimeRemaining = &remaining
	}
	return out
}

type ScheduleInterviewResponse struct {
	Interview    InterviewDTO `json:"interview"`
	Rescheduled  bool         `json:"rescheduled"`
	WorkerStatus string       `json:"worker_status,omitempty"`
}

type InterviewResultResponse struct {
	Interview    InterviewDTO `json:"interview"`
	WorkerStatus string       `json:"worker_status,omitempty"`
}
