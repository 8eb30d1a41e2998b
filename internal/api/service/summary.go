package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/workhive/marketplace-be/internal/domain"
)

// WorkerSummary is the read-only lifecycle projection served to
// dashboards: status, per-document states and the active interview. It
// is cached; transition guards never consult it.
type WorkerSummary struct {
	WorkerID  string          `json:"worker_id"`
	FullName  string          `json:"full_name"`
	Status    string          `json:"status"`
	Rating    float64         `json:"rating"`
	Documents []DocumentState `json:"documents"`
	Interview *InterviewState `json:"interview,omitempty"`
}

// DocumentState is one document's verification state in the summary.
type DocumentState struct {
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
}

// InterviewState is the active interview in the summary, with the
// derived time-remaining projection.
type InterviewState struct {
	InterviewID   string               `json:"interview_id"`
	ScheduledDate time.Time            `json:"scheduled_date"`
	Mode          string               `json:"mode"`
	TimeRemaining domain.TimeRemaining `json:"time_remaining"`
}

// SummaryService serves worker lifecycle summaries cache-aside.
type SummaryService struct {
	store  Store
	cache  SummaryCache
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewSummaryService builds a SummaryService. cache may be nil, in which
// case every read goes to the database.
func NewSummaryService(store Store, cache SummaryCache, ttl time.Duration, logger *slog.Logger) *SummaryService {
	return &SummaryService{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// GetWorkerSummary returns the cached summary when fresh, otherwise
// rebuilds it from the canonical store and re-populates the cache.
// Cache failures degrade to database reads, never to request failures.
func (s *SummaryService) GetWorkerSummary(ctx context.Context, workerID string) (*WorkerSummary, error) {
	if workerID == "" {
		return nil, domain.NewValidationError("worker_id", "must not be empty")
	}

	key := domain.WorkerSummaryCacheKey(workerID)

	if s.cache != nil {
		raw, found, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("Worker summary cache read failed",
				slog.String("worker_id", workerID),
				slog.String("error", err.Error()),
			)
		case found:
			var summary WorkerSummary
			if err := json.Unmarshal([]byte(raw), &summary); err == nil {
				s.logger.Debug("Worker summary cache hit",
					slog.String("worker_id", workerID),
				)
				return &summary, nil
			}
			// Unreadable cache entry: drop it and rebuild.
			_ = s.cache.Del(ctx, key)
		}
	}

	summary, err := s.buildSummary(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
				s.logger.Warn("Worker summary cache write failed",
					slog.String("worker_id", workerID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return summary, nil
}

// buildSummary assembles the projection from the canonical store.
func (s *SummaryService) buildSummary(ctx context.Context, workerID string) (*WorkerSummary, error) {
	profile, err := s.store.GetProfile(ctx, workerID)
	if err != nil {
		return nil, err
	}

	docs, err := s.store.ListDocuments(ctx, workerID)
	if err != nil {
		return nil, err
	}

	summary := &WorkerSummary{
		WorkerID:  profile.UserID,
		FullName:  profile.FullName,
		Status:    profile.WorkerStatus,
		Rating:    profile.Rating,
		Documents: make([]DocumentState, 0, len(docs)),
	}
	for _, d := range docs {
		summary.Documents = append(summary.Documents, DocumentState{
			DocumentType: d.DocumentType,
			Status:       d.VerificationStatus,
		})
	}

	interview, err := s.store.GetScheduledInterview(ctx, workerID)
	switch {
	case err == nil:
		summary.Interview = &InterviewState{
			InterviewID:   interview.InterviewID,
			ScheduledDate: interview.ScheduledDate,
			Mode:          interview.Mode,
			TimeRemaining: domain.RemainingUntil(interview.ScheduledDate, s.now()),
		}
	case errors.Is(err, domain.ErrNotFound):
		// No active interview.
	default:
		return nil, err
	}

	return summary, nil
}
