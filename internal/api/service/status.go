package service

import (
	"context"
	"log/slog"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

// StatusService is the status authority: the only component that moves
// a worker through the lifecycle. All other services funnel their
// transitions through the same storage write path this service uses.
type StatusService struct {
	store  Store
	events EventPublisher
	logger *slog.Logger
}

// NewStatusService builds a StatusService.
func NewStatusService(store Store, events EventPublisher, logger *slog.Logger) *StatusService {
	return &StatusService{store: store, events: events, logger: logger}
}

// Advance validates and applies one lifecycle trigger. Illegal triggers
// return an IllegalTransitionError without touching the row; no-op
// transitions (idempotent re-promotion) succeed without a write.
func (s *StatusService) Advance(ctx context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
	if workerID == "" {
		return nil, domain.NewValidationError("worker_id", "must not be empty")
	}

	tr, err := s.store.ApplyStatusTransition(ctx, workerID, trigger, actor)
	if err != nil {
		return nil, err
	}

	if tr.Changed {
		s.logger.Info("Worker status advanced",
			slog.String("worker_id", workerID),
			slog.String("from", string(tr.From)),
			slog.String("to", string(tr.To)),
			slog.String("trigger", string(trigger)),
			slog.String("actor", actor),
		)
		publishEvent(ctx, s.events, s.logger, domain.NewEvent(domain.EventWorkerStatusChanged, workerID, ""))
	}

	return tr, nil
}

// Reject applies the admin-side terminal rejection.
func (s *StatusService) Reject(ctx context.Context, workerID, actor string) (*domain.Transition, error) {
	return s.Advance(ctx, workerID, domain.TriggerApplicationRejected, actor)
}

// VerifyEmployer promotes an employer straight to active. Employers skip
// the document and interview track, so the role check here is the only
// guard between registration and task creation rights.
func (s *StatusService) VerifyEmployer(ctx context.Context, employerID, actor string) (*domain.Transition, error) {
	if employerID == "" {
		return nil, domain.NewValidationError("user_id", "must not be empty")
	}

	profile, err := s.store.GetProfile(ctx, employerID)
	if err != nil {
		return nil, err
	}
	if profile.Role != string(domain.RoleEmployer) {
		return nil, domain.NewValidationError("user_id", "only employer profiles can be verified this way")
	}

	return s.Advance(ctx, employerID, domain.TriggerEmployerVerified, actor)
}

// History returns the audit trail for a worker, newest first.
func (s *StatusService) History(ctx context.Context, workerID string) ([]model.StatusAudit, error) {
	if workerID == "" {
		return nil, domain.NewValidationError("worker_id", "must not be empty")
	}
	return s.store.ListStatusAudit(ctx, workerID)
}
