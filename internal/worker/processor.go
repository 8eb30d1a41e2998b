package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/workhive/marketplace-be/internal/domain"
)

// processEvent drops the cache entries the event invalidates. Every
// event names a worker, and the worker summary folds in status,
// documents, interviews and rating, so one key covers all event types.
func (w *Worker) processEvent(ctx context.Context, event domain.Event) error {
	key := domain.WorkerSummaryCacheKey(event.WorkerID)

	w.logger.Debug("Invalidating cache entry",
		slog.String("event_id", event.EventID),
		slog.String("event_type", string(event.Type)),
		slog.String("key", key),
	)

	if err := w.cache.Del(ctx, key); err != nil {
		// Redis hiccups are transient; requeue and retry.
		return domain.NewRetryableError(fmt.Errorf("failed to invalidate %s: %w", key, err))
	}

	w.logger.Info("Cache entry invalidated",
		slog.String("event_type", string(event.Type)),
		slog.String("worker_id", event.WorkerID),
	)

	return nil
}
