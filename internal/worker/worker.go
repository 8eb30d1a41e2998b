package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/workhive/marketplace-be/internal/domain"
	"github.com/workhive/marketplace-be/shared/rabbitmq"
)

// Cache is the invalidation surface the worker needs. It is implemented
// by the shared Redis client.
type Cache interface {
	Del(ctx context.Context, keys ...string) error
}

// Config holds cache invalidator configuration
type Config struct {
	Logger        *slog.Logger
	RabbitClient  *rabbitmq.Client
	Cache         Cache
	Concurrency   int
	PrefetchCount int
	QueueName     string
}

// Worker consumes domain events and drops the cache entries they
// invalidate. Events carry no payload beyond identifiers; the API
// rebuilds summaries from the database on the next read.
type Worker struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	cache         Cache
	concurrency   int
	prefetchCount int
	queueName     string
	workerID      string
	eventsChan    chan *eventMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// eventMessage pairs a parsed event with its delivery tag for ACK/NACK.
type eventMessage struct {
	Event       domain.Event
	DeliveryTag uint64
}

// NewWorker creates a new cache invalidator instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		cache:         cfg.Cache,
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		queueName:     cfg.QueueName,
		workerID:      "cache-invalidator-" + uuid.New().String()[:8],
		eventsChan:    make(chan *eventMessage),
		stopChan:      make(chan struct{}),
	}
}

// Start begins consuming events and blocks until the context is
// canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting cache invalidator",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	return nil
}

// Stop gracefully stops the worker pool
func (w *Worker) Stop() {
	w.logger.Info("Stopping cache invalidator...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Cache invalidator stopped")
}
