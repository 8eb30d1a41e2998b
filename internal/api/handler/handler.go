package handler

import (
	"log/slog"
	"time"

	"github.com/workhive/marketplace-be/internal/api/service"
	"github.com/workhive/marketplace-be/internal/api/storage"
	"github.com/workhive/marketplace-be/shared/postgresql"
	"github.com/workhive/marketplace-be/shared/rabbitmq"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger       *slog.Logger
	DBClient     *postgresql.Client
	RabbitClient *rabbitmq.Client
	Cache        service.SummaryCache
	SummaryTTL   time.Duration
}

// services bundles the wired service layer shared by the handlers.
type services struct {
	profiles     *service.ProfileService
	status       *service.StatusService
	verification *service.VerificationService
	interviews   *service.InterviewService
	tasks        *service.TaskService
	reviews      *service.ReviewService
	payments     *service.PaymentService
	summaries    *service.SummaryService
}

func newServices(deps *Dependencies) *services {
	store := storage.NewStorage(deps.DBClient, deps.Logger)

	var events service.EventPublisher
	if deps.RabbitClient != nil {
		events = service.NewRabbitPublisher(deps.RabbitClient, deps.Logger)
	}

	return &services{
		profiles:     service.NewProfileService(store, deps.Logger),
		status:       service.NewStatusService(store, events, deps.Logger),
		verification: service.NewVerificationService(store, events, deps.Logger),
		interviews:   service.NewInterviewService(store, events, deps.Logger),
		tasks:        service.NewTaskService(store, deps.Logger),
		reviews:      service.NewReviewService(store, events, deps.Logger),
		payments:     service.NewPaymentService(store, events, deps.Logger),
		summaries:    service.NewSummaryService(store, deps.Cache, deps.SummaryTTL, deps.Logger),
	}
}
