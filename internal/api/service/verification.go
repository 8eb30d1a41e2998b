package service

import (
	"context"
	"log/slog"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/api/storage"
	"github.com/workhive/marketplace-be/internal/domain"
)

// VerificationService tracks per-document approval state and derives
// "all required documents approved" for the status authority.
type VerificationService struct {
	store  Store
	events EventPublisher
	logger *slog.Logger
}

// NewVerificationService builds a VerificationService.
func NewVerificationService(store Store, events EventPublisher, logger *slog.Logger) *VerificationService {
	return &VerificationService{store: store, events: events, logger: logger}
}

// UploadDocument records an uploaded credential file for a worker.
func (v *VerificationService) UploadDocument(ctx context.Context, workerID string, docType domain.DocumentType, filePath string) (*storage.UploadResult, error) {
	if !domain.IsRequiredDocumentType(docType) {
		return nil, domain.NewValidationError("document_type", "not a required document type")
	}
	if filePath == "" {
		return nil, domain.NewValidationError("file_path", "must not be empty")
	}

	profile, err := v.store.GetProfile(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if profile.Role != string(domain.RoleWorker) {
		return nil, domain.NewValidationError("worker_id", "documents belong to worker profiles")
	}

	res, err := v.store.UpsertDocument(ctx, workerID, docType, filePath)
	if err != nil {
		return nil, err
	}

	v.logger.Info("Document uploaded",
		slog.String("worker_id", workerID),
		slog.String("document_type", string(docType)),
	)

	if res.Transition != nil {
		publishEvent(ctx, v.events, v.logger, domain.NewEvent(domain.EventWorkerStatusChanged, workerID, ""))
	}

	return res, nil
}

// ListDocuments returns a worker's document records.
func (v *VerificationService) ListDocuments(ctx context.Context, workerID string) ([]model.WorkerDocument, error) {
	if workerID == "" {
		return nil, domain.NewValidationError("worker_id", "must not be empty")
	}
	return v.store.ListDocuments(ctx, workerID)
}

// RecordDecision persists a verifier verdict on a pending document.
// Approving the final outstanding type also advances the worker, and
// both effects land in one transaction.
func (v *VerificationService) RecordDecision(ctx context.Context, documentID, decision, verifierID, notes string) (*storage.DecisionResult, error) {
	var status domain.DocumentStatus
	switch decision {
	case string(domain.DocumentApproved):
		status = domain.DocumentApproved
	case string(domain.DocumentRejected):
		status = domain.DocumentRejected
	default:
		return nil, domain.NewValidationError("decision", "must be approved or rejected")
	}

	if verifierID == "" {
		return nil, domain.NewValidationError("verifier_id", "must not be empty")
	}

	res, err := v.store.ApplyDocumentDecision(ctx, documentID, status, verifierID, notes)
	if err != nil {
		return nil, err
	}

	v.logger.Info("Document decision recorded",
		slog.String("document_id", documentID),
		slog.String("decision", decision),
		slog.Bool("fully_approved", res.FullyApproved),
	)

	publishEvent(ctx, v.events, v.logger, domain.NewEvent(domain.EventDocumentDecided, res.Document.WorkerID, documentID))
	if res.Transition != nil {
		publishEvent(ctx, v.events, v.logger, domain.NewEvent(domain.EventWorkerStatusChanged, res.Document.WorkerID, ""))
	}

	return res, nil
}

// IsFullyApproved answers from the canonical stored documents, never
// from client state.
func (v *VerificationService) IsFullyApproved(ctx context.Context, workerID string) (bool, error) {
	if workerID == "" {
		return false, domain.NewValidationError("worker_id", "must not be empty")
	}
	return v.store.IsFullyApproved(ctx, workerID)
}
