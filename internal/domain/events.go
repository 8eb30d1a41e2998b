package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a domain event on the broker. Consumers treat events
// as cache-invalidation signals only; they never drive business logic.
type EventType string

const (
	EventWorkerStatusChanged EventType = "worker.status_changed"
	EventDocumentDecided     EventType = "document.decided"
	EventInterviewScheduled  EventType = "interview.scheduled"
	EventInterviewCompleted  EventType = "interview.completed"
	EventSubmissionDecided   EventType = "submission.decided"
	EventPaymentCompleted    EventType = "payment.completed"
)

// Event is the envelope published to the broker after a committed write.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       EventType `json:"event_type"`
	WorkerID   string    `json:"worker_id"`
	EntityID   string    `json:"entity_id,omitempty"`
	TaskID     string    `json:"task_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WorkerSummaryCacheKey is the Redis key for a worker's cached
// lifecycle summary. The cache invalidator deletes it when an event for
// the worker arrives.
func WorkerSummaryCacheKey(workerID string) string {
	return "worker:summary:" + workerID
}

// NewEvent builds an envelope with a fresh event id.
func NewEvent(t EventType, workerID, entityID string) Event {
	return Event{
		EventID:    uuid.New().String(),
		Type:       t,
		WorkerID:   workerID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}
