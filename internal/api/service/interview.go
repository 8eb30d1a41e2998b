package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/api/storage"
	"github.com/workhive/marketplace-be/internal/domain"
)

// InterviewService owns scheduling, rescheduling and result recording.
type InterviewService struct {
	store  Store
	events EventPublisher
	logger *slog.Logger
	now    func() time.Time
}

// NewInterviewService builds an InterviewService.
func NewInterviewService(store Store, events EventPublisher, logger *slog.Logger) *InterviewService {
	return &InterviewService{
		store:  store,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// ScheduleRequest carries a raw schedule/reschedule request.
type ScheduleRequest struct {
	WorkerID      string
	EmployerID    string
	ScheduledDate time.Time
	Mode          string
	MeetingLink   string
	Location      string
	Notes         string
}

// Schedule validates and applies a schedule or reschedule. The mode
// decides which contact field must be set; the other must be empty.
func (i *InterviewService) Schedule(ctx context.Context, req ScheduleRequest) (*storage.ScheduleResult, error) {
	if req.WorkerID == "" {
		return nil, domain.NewValidationError("worker_id", "must not be empty")
	}
	if req.EmployerID == "" {
		return nil, domain.NewValidationError("employer_id", "must not be empty")
	}
	if !req.ScheduledDate.After(i.now()) {
		return nil, domain.NewValidationError("scheduled_date", "must be in the future")
	}

	mode := domain.InterviewMode(req.Mode)
	switch mode {
	case domain.InterviewOnline:
		if req.MeetingLink == "" {
			return nil, domain.NewValidationError("meeting_link", "required for online interviews")
		}
		if req.Location != "" {
			return nil, domain.NewValidationError("location", "must be empty for online interviews")
		}
	case domain.InterviewOffline:
		if req.Location == "" {
			return nil, domain.NewValidationError("location", "required for offline interviews")
		}
		if req.MeetingLink != "" {
			return nil, domain.NewValidationError("meeting_link", "must be empty for offline interviews")
		}
	default:
		return nil, domain.NewValidationError("mode", "must be online or offline")
	}

	res, err := i.store.ScheduleInterview(ctx, storage.ScheduleParams{
		WorkerID:      req.WorkerID,
		EmployerID:    req.EmployerID,
		ScheduledDate: req.ScheduledDate,
		Mode:          mode,
		MeetingLink:   req.MeetingLink,
		Location:      req.Location,
		Notes:         req.Notes,
		Actor:         req.EmployerID,
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("Interview scheduled",
		slog.String("interview_id", res.Interview.InterviewID),
		slog.String("worker_id", req.WorkerID),
		slog.Bool("rescheduled", res.Rescheduled),
		slog.Time("scheduled_date", req.ScheduledDate),
	)

	publishEvent(ctx, i.events, i.logger, domain.NewEvent(domain.EventInterviewScheduled, req.WorkerID, res.Interview.InterviewID))
	if res.Transition != nil {
		publishEvent(ctx, i.events, i.logger, domain.NewEvent(domain.EventWorkerStatusChanged, req.WorkerID, ""))
	}

	return res, nil
}

// RecordResult completes a scheduled interview. A selected result
// promotes the worker, a rejected one rejects them; the interview write
// and the status change commit together.
func (i *InterviewService) RecordResult(ctx context.Context, interviewID, result, feedback, actor string) (*storage.ResultOutcome, error) {
	var r domain.InterviewResult
	switch result {
	case string(domain.ResultSelected):
		r = domain.ResultSelected
	case string(domain.ResultRejected):
		r = domain.ResultRejected
	case string(domain.ResultPending):
		r = domain.ResultPending
	default:
		return nil, domain.NewValidationError("result", "must be selected, rejected or pending")
	}

	out, err := i.store.CompleteInterview(ctx, interviewID, r, feedback, actor)
	if err != nil {
		return nil, err
	}

	i.logger.Info("Interview result recorded",
		slog.String("interview_id", interviewID),
		slog.String("result", result),
	)

	publishEvent(ctx, i.events, i.logger, domain.NewEvent(domain.EventInterviewCompleted, out.Interview.WorkerID, interviewID))
	if out.Transition != nil {
		publishEvent(ctx, i.events, i.logger, domain.NewEvent(domain.EventWorkerStatusChanged, out.Interview.WorkerID, ""))
	}

	return out, nil
}

// ListForWorker returns a worker's interviews.
func (i *InterviewService) ListForWorker(ctx context.Context, workerID string) ([]model.WorkerInterview, error) {
	if workerID == "" {
		return nil, domain.NewValidationError("worker_id", "must not be empty")
	}
	return i.store.ListInterviews(ctx, workerID)
}
