package service

import (
	"context"
	"log/slog"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

// ReviewService owns approve/reject decisions on submitted proof-of-work
// and the one-time post-approval worker rating.
type ReviewService struct {
	store  Store
	events EventPublisher
	logger *slog.Logger
}

// NewReviewService builds a ReviewService.
func NewReviewService(store Store, events EventPublisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{store: store, events: events, logger: logger}
}

// Decide records a terminal review decision. Only the task's owning
// employer may decide; repeating the same decision is a no-op and
// flipping raises ErrAlreadyReviewed.
func (r *ReviewService) Decide(ctx context.Context, submissionID, decision, reviewerID, notes string) (*model.TaskSubmission, error) {
	var status domain.SubmissionStatus
	switch decision {
	case string(domain.SubmissionApproved):
		status = domain.SubmissionApproved
	case string(domain.SubmissionRejected):
		status = domain.SubmissionRejected
	default:
		return nil, domain.NewValidationError("decision", "must be approved or rejected")
	}

	sub, err := r.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	task, err := r.store.GetTask(ctx, sub.TaskID)
	if err != nil {
		return nil, err
	}
	if task.EmployerID != reviewerID {
		return nil, domain.NewValidationError("reviewer_id", "only the task owner may review submissions")
	}

	out, err := r.store.DecideSubmission(ctx, submissionID, status, reviewerID, notes)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Submission decided",
		slog.String("submission_id", submissionID),
		slog.String("decision", decision),
		slog.String("task_id", sub.TaskID),
	)

	e := domain.NewEvent(domain.EventSubmissionDecided, sub.WorkerID, submissionID)
	e.TaskID = sub.TaskID
	publishEvent(ctx, r.events, r.logger, e)

	return out, nil
}

// Rate records the employer's one-time rating for an approved
// submission and folds it into the worker's average.
func (r *ReviewService) Rate(ctx context.Context, submissionID string, rating float64) (*model.TaskSubmission, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, domain.NewValidationError("rating", "must be between 1 and 5")
	}

	out, err := r.store.RateSubmission(ctx, submissionID, rating)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Submission rated",
		slog.String("submission_id", submissionID),
		slog.Float64("rating", rating),
	)

	return out, nil
}
