package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/api/storage"
	"github.com/workhive/marketplace-be/internal/domain"
)

func workerProfile(id string) *model.Profile {
	return &model.Profile{
		UserID:       id,
		Role:         string(domain.RoleWorker),
		WorkerStatus: string(domain.StatusDocumentUploadPending),
	}
}

func TestVerificationService_UploadDocument(t *testing.T) {
	t.Run("rejects unknown document types", func(t *testing.T) {
		svc := NewVerificationService(&fakeStore{}, &fakePublisher{}, testLogger())

		_, err := svc.UploadDocument(context.Background(), "worker-1", domain.DocumentType("diploma_of_vibes"), "/files/x.pdf")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "document_type", validationErr.Field)
	})

	t.Run("rejects uploads for non-worker profiles", func(t *testing.T) {
		store := &fakeStore{
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				return &model.Profile{UserID: userID, Role: string(domain.RoleEmployer)}, nil
			},
		}
		svc := NewVerificationService(store, &fakePublisher{}, testLogger())

		_, err := svc.UploadDocument(context.Background(), "employer-1", domain.DocumentResume, "/files/resume.pdf")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
	})

	t.Run("upload that completes the set publishes a status event", func(t *testing.T) {
		store := &fakeStore{
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				return workerProfile(userID), nil
			},
			upsertDocumentFn: func(_ context.Context, workerID string, docType domain.DocumentType, filePath string) (*storage.UploadResult, error) {
				return &storage.UploadResult{
					Document: &model.WorkerDocument{
						DocumentID:         "doc-1",
						WorkerID:           workerID,
						DocumentType:       string(docType),
						FilePath:           filePath,
						VerificationStatus: string(domain.DocumentPending),
					},
					Transition: &domain.Transition{
						WorkerID: workerID,
						From:     domain.StatusDocumentUploadPending,
						To:       domain.StatusVerificationPending,
						Trigger:  domain.TriggerDocumentsSubmitted,
						Changed:  true,
					},
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewVerificationService(store, events, testLogger())

		res, err := svc.UploadDocument(context.Background(), "worker-1", domain.DocumentResume, "/files/resume.pdf")
		require.NoError(t, err)
		require.NotNil(t, res.Transition)

		published := events.published()
		require.Len(t, published, 1)
		assert.Equal(t, domain.EventWorkerStatusChanged, published[0].Type)
	})

	t.Run("upload short of the full set publishes nothing", func(t *testing.T) {
		store := &fakeStore{
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				return workerProfile(userID), nil
			},
			upsertDocumentFn: func(_ context.Context, workerID string, docType domain.DocumentType, filePath string) (*storage.UploadResult, error) {
				return &storage.UploadResult{
					Document: &model.WorkerDocument{
						DocumentID:   "doc-1",
						WorkerID:     workerID,
						DocumentType: string(docType),
					},
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewVerificationService(store, events, testLogger())

		res, err := svc.UploadDocument(context.Background(), "worker-1", domain.DocumentResume, "/files/resume.pdf")
		require.NoError(t, err)
		assert.Nil(t, res.Transition)
		assert.Empty(t, events.published())
	})
}

func TestVerificationService_RecordDecision(t *testing.T) {
	t.Run("rejects verdicts outside approved/rejected", func(t *testing.T) {
		svc := NewVerificationService(&fakeStore{}, &fakePublisher{}, testLogger())

		_, err := svc.RecordDecision(context.Background(), "doc-1", "maybe", "admin-1", "")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "decision", validationErr.Field)
	})

	t.Run("requires a verifier id", func(t *testing.T) {
		svc := NewVerificationService(&fakeStore{}, &fakePublisher{}, testLogger())

		_, err := svc.RecordDecision(context.Background(), "doc-1", "approved", "", "")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "verifier_id", validationErr.Field)
	})

	t.Run("final approval publishes document and status events", func(t *testing.T) {
		store := &fakeStore{
			applyDocDecisionFn: func(_ context.Context, documentID string, decision domain.DocumentStatus, verifierID, notes string) (*storage.DecisionResult, error) {
				assert.Equal(t, domain.DocumentApproved, decision)
				return &storage.DecisionResult{
					Document: &model.WorkerDocument{
						DocumentID:         documentID,
						WorkerID:           "worker-1",
						VerificationStatus: string(domain.DocumentApproved),
					},
					FullyApproved: true,
					Transition: &domain.Transition{
						WorkerID: "worker-1",
						From:     domain.StatusVerificationPending,
						To:       domain.StatusInterviewPending,
						Trigger:  domain.TriggerAllDocumentsApproved,
						Changed:  true,
					},
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewVerificationService(store, events, testLogger())

		res, err := svc.RecordDecision(context.Background(), "doc-1", "approved", "admin-1", "looks legit")
		require.NoError(t, err)
		assert.True(t, res.FullyApproved)

		published := events.published()
		require.Len(t, published, 2)
		assert.Equal(t, domain.EventDocumentDecided, published[0].Type)
		assert.Equal(t, domain.EventWorkerStatusChanged, published[1].Type)
	})

	t.Run("rejection publishes only the document event", func(t *testing.T) {
		store := &fakeStore{
			applyDocDecisionFn: func(_ context.Context, documentID string, decision domain.DocumentStatus, _ string, _ string) (*storage.DecisionResult, error) {
				assert.Equal(t, domain.DocumentRejected, decision)
				return &storage.DecisionResult{
					Document: &model.WorkerDocument{
						DocumentID:         documentID,
						WorkerID:           "worker-1",
						VerificationStatus: string(domain.DocumentRejected),
					},
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewVerificationService(store, events, testLogger())

		res, err := svc.RecordDecision(context.Background(), "doc-1", "rejected", "admin-1", "blurry scan")
		require.NoError(t, err)
		assert.False(t, res.FullyApproved)

		published := events.published()
		require.Len(t, published, 1)
		assert.Equal(t, domain.EventDocumentDecided, published[0].Type)
	})
}
