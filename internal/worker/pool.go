package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/workhive/marketplace-be/internal/domain"
)

// spawnWorkerPool spawns N goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

// workerLoop is the main processing loop for each worker goroutine
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Info("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			w.logger.Info("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-w.eventsChan:
			if !ok {
				return
			}

			err := w.processEvent(ctx, msg.Event)

			channel := w.rabbitClient.GetChannel()
			if channel == nil {
				w.logger.Error("Failed to get RabbitMQ channel for ACK/NACK",
					slog.String("worker_name", workerName),
					slog.String("event_id", msg.Event.EventID),
				)
				continue
			}

			if err != nil {
				w.logger.Error("Event processing failed",
					slog.String("worker_name", workerName),
					slog.String("event_id", msg.Event.EventID),
					slog.String("error", err.Error()),
				)

				requeue := shouldRequeueEvent(err)
				if nackErr := channel.Nack(msg.DeliveryTag, false, requeue); nackErr != nil {
					w.logger.Error("Failed to NACK event",
						slog.String("worker_name", workerName),
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if ackErr := channel.Ack(msg.DeliveryTag, false); ackErr != nil {
				w.logger.Error("Failed to ACK event",
					slog.String("worker_name", workerName),
					slog.String("error", ackErr.Error()),
				)
			}
		}
	}
}

// shouldRequeueEvent requeues only transient failures. An event that
// cannot be processed for any other reason is dropped; the cache entry
// it targets expires by TTL anyway.
func shouldRequeueEvent(err error) bool {
	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
