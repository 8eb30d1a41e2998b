package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/api/storage"
	"github.com/workhive/marketplace-be/internal/domain"
	"github.com/workhive/marketplace-be/shared/rabbitmq"
)

// Store is the persistence surface the services depend on. It is
// implemented by storage.Storage; tests substitute fakes.
type Store interface {
	// Profiles
	CreateProfile(ctx context.Context, p *model.Profile) error
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpdateBankDetails(ctx context.Context, userID, holder, account, ifsc string) error
	ListWorkerVerification(ctx context.Context) ([]model.WorkerVerificationRow, error)
	ListStatusAudit(ctx context.Context, workerID string) ([]model.StatusAudit, error)
	ApplyStatusTransition(ctx context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error)

	// Documents
	UpsertDocument(ctx context.Context, workerID string, docType domain.DocumentType, filePath string) (*storage.UploadResult, error)
	ListDocuments(ctx context.Context, workerID string) ([]model.WorkerDocument, error)
	ApplyDocumentDecision(ctx context.Context, documentID string, decision domain.DocumentStatus, verifierID, notes string) (*storage.DecisionResult, error)
	IsFullyApproved(ctx context.Context, workerID string) (bool, error)

	// Interviews
	ScheduleInterview(ctx context.Context, p storage.ScheduleParams) (*storage.ScheduleResult, error)
	GetInterview(ctx context.Context, interviewID string) (*model.WorkerInterview, error)
	ListInterviews(ctx context.Context, workerID string) ([]model.WorkerInterview, error)
	GetScheduledInterview(ctx context.Context, workerID string) (*model.WorkerInterview, error)
	CompleteInterview(ctx context.Context, interviewID string, result domain.InterviewResult, feedback, actor string) (*storage.ResultOutcome, error)

	// Tasks, assignments, submissions
	CreateTask(ctx context.Context, t *model.Task) error
	GetTask(ctx context.Context, taskID string) (*model.Task, error)
	ListTasks(ctx context.Context, filter storage.TaskFilter) ([]model.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, to domain.TaskStatus) (*model.Task, error)
	CreateAssignment(ctx context.Context, taskID, workerID string) (*model.TaskAssignment, error)
	GetAssignment(ctx context.Context, taskID, workerID string) (*model.TaskAssignment, error)
	CreateSubmission(ctx context.Context, sub *model.TaskSubmission) error
	ListSubmissions(ctx context.Context, taskID string) ([]model.TaskSubmission, error)
	GetSubmission(ctx context.Context, submissionID string) (*model.TaskSubmission, error)
	DecideSubmission(ctx context.Context, submissionID string, decision domain.SubmissionStatus, reviewerID, notes string) (*model.TaskSubmission, error)
	RateSubmission(ctx context.Context, submissionID string, rating float64) (*model.TaskSubmission, error)

	// Payments
	InitiatePayment(ctx context.Context, taskID, workerID, employerID string, amount float64, method string) (*model.PaymentRecord, bool, error)
	GetPayment(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
	ListPayments(ctx context.Context, taskID string) ([]model.PaymentRecord, error)
	AttachProof(ctx context.Context, paymentID, filePath, claimedReference string) (*model.TransactionProof, error)
	CompletePayment(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
}

var _ Store = (*storage.Storage)(nil)

// EventPublisher pushes committed domain events to the broker. Events
// are invalidation signals; publish failures are logged and never roll
// back the write they describe.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.Event) error
}

// SummaryCache is the cache-aside store for worker lifecycle summaries.
// Get reports a miss through the found flag, not an error.
type SummaryCache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RabbitPublisher is the AMQP-backed EventPublisher.
type RabbitPublisher struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

// NewRabbitPublisher wraps a connected RabbitMQ client.
func NewRabbitPublisher(client *rabbitmq.Client, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{client: client, logger: logger}
}

// Publish marshals the event and publishes it with retry.
func (p *RabbitPublisher) Publish(ctx context.Context, e domain.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Domain event published",
		slog.String("event_id", e.EventID),
		slog.String("event_type", string(e.Type)),
		slog.String("worker_id", e.WorkerID),
	)

	return nil
}

// publishEvent is the shared fire-and-forget helper: failures are
// logged, never propagated.
func publishEvent(ctx context.Context, events EventPublisher, logger *slog.Logger, e domain.Event) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, e); err != nil {
		logger.Error("Failed to publish domain event",
			slog.String("event_type", string(e.Type)),
			slog.String("worker_id", e.WorkerID),
			slog.String("error", err.Error()),
		)
	}
}
