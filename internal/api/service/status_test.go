package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

func TestStatusService_Advance(t *testing.T) {
	t.Run("publishes status event when the state changed", func(t *testing.T) {
		store := &fakeStore{
			applyStatusTransitionFn: func(_ context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
				assert.Equal(t, "worker-1", workerID)
				assert.Equal(t, domain.TriggerDocumentsSubmitted, trigger)
				assert.Equal(t, "worker-1", actor)
				return &domain.Transition{
					WorkerID: workerID,
					From:     domain.StatusDocumentUploadPending,
					To:       domain.StatusVerificationPending,
					Trigger:  trigger,
					Actor:    actor,
					Changed:  true,
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewStatusService(store, events, testLogger())

		tr, err := svc.Advance(context.Background(), "worker-1", domain.TriggerDocumentsSubmitted, "worker-1")
		require.NoError(t, err)
		assert.True(t, tr.Changed)
		assert.Equal(t, domain.StatusVerificationPending, tr.To)

		published := events.published()
		require.Len(t, published, 1)
		assert.Equal(t, domain.EventWorkerStatusChanged, published[0].Type)
		assert.Equal(t, "worker-1", published[0].WorkerID)
	})

	t.Run("no-op transition publishes nothing", func(t *testing.T) {
		store := &fakeStore{
			applyStatusTransitionFn: func(_ context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
				return &domain.Transition{
					WorkerID: workerID,
					From:     domain.StatusActiveEmployee,
					To:       domain.StatusActiveEmployee,
					Trigger:  trigger,
					Actor:    actor,
					Changed:  false,
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewStatusService(store, events, testLogger())

		tr, err := svc.Advance(context.Background(), "worker-1", domain.TriggerInterviewSelected, "admin-1")
		require.NoError(t, err)
		assert.False(t, tr.Changed)
		assert.Empty(t, events.published())
	})

	t.Run("empty worker id fails validation", func(t *testing.T) {
		svc := NewStatusService(&fakeStore{}, &fakePublisher{}, testLogger())

		_, err := svc.Advance(context.Background(), "", domain.TriggerDocumentsSubmitted, "admin-1")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "worker_id", validationErr.Field)
	})

	t.Run("illegal transition surfaces unchanged", func(t *testing.T) {
		store := &fakeStore{
			applyStatusTransitionFn: func(_ context.Context, _ string, trigger domain.StatusTrigger, _ string) (*domain.Transition, error) {
				return nil, &domain.IllegalTransitionError{Current: domain.StatusRejected, Trigger: trigger}
			},
		}
		events := &fakePublisher{}
		svc := NewStatusService(store, events, testLogger())

		_, err := svc.Advance(context.Background(), "worker-1", domain.TriggerDocumentsSubmitted, "worker-1")

		var transitionErr *domain.IllegalTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Empty(t, events.published())
	})

	t.Run("publish failure never fails the request", func(t *testing.T) {
		store := &fakeStore{
			applyStatusTransitionFn: func(_ context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
				return &domain.Transition{
					WorkerID: workerID,
					From:     domain.StatusInterviewScheduled,
					To:       domain.StatusActiveEmployee,
					Trigger:  trigger,
					Actor:    actor,
					Changed:  true,
				}, nil
			},
		}
		events := &fakePublisher{err: errors.New("broker down")}
		svc := NewStatusService(store, events, testLogger())

		tr, err := svc.Advance(context.Background(), "worker-1", domain.TriggerInterviewSelected, "employer-1")
		require.NoError(t, err)
		assert.True(t, tr.Changed)
	})
}

func TestStatusService_VerifyEmployer(t *testing.T) {
	employerProfile := func(id string, status domain.WorkerStatus) *model.Profile {
		return &model.Profile{
			UserID:       id,
			Role:         string(domain.RoleEmployer),
			WorkerStatus: string(status),
		}
	}

	t.Run("promotes a pending employer to active", func(t *testing.T) {
		var gotTrigger domain.StatusTrigger
		store := &fakeStore{
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				return employerProfile(userID, domain.StatusVerificationPending), nil
			},
			applyStatusTransitionFn: func(_ context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
				gotTrigger = trigger
				return &domain.Transition{
					WorkerID: workerID,
					From:     domain.StatusVerificationPending,
					To:       domain.StatusActiveEmployee,
					Trigger:  trigger,
					Actor:    actor,
					Changed:  true,
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewStatusService(store, events, testLogger())

		tr, err := svc.VerifyEmployer(context.Background(), "employer-1", "admin-1")
		require.NoError(t, err)
		assert.Equal(t, domain.TriggerEmployerVerified, gotTrigger)
		assert.Equal(t, domain.StatusActiveEmployee, tr.To)

		published := events.published()
		require.Len(t, published, 1)
		assert.Equal(t, domain.EventWorkerStatusChanged, published[0].Type)
	})

	t.Run("rejects worker profiles", func(t *testing.T) {
		store := &fakeStore{
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				return workerProfile(userID), nil
			},
		}
		svc := NewStatusService(store, &fakePublisher{}, testLogger())

		_, err := svc.VerifyEmployer(context.Background(), "worker-1", "admin-1")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "user_id", validationErr.Field)
	})

	t.Run("empty employer id fails validation", func(t *testing.T) {
		svc := NewStatusService(&fakeStore{}, &fakePublisher{}, testLogger())

		_, err := svc.VerifyEmployer(context.Background(), "", "admin-1")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
	})

	t.Run("verification unblocks task creation", func(t *testing.T) {
		status := domain.StatusVerificationPending
		store := &fakeStore{
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				return employerProfile(userID, status), nil
			},
			applyStatusTransitionFn: func(_ context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
				status = domain.StatusActiveEmployee
				return &domain.Transition{
					WorkerID: workerID,
					From:     domain.StatusVerificationPending,
					To:       status,
					Trigger:  trigger,
					Actor:    actor,
					Changed:  true,
				}, nil
			},
			createTaskFn: func(_ context.Context, _ *model.Task) error { return nil },
		}
		statusSvc := NewStatusService(store, &fakePublisher{}, testLogger())
		taskSvc := NewTaskService(store, testLogger())

		req := CreateTaskRequest{
			EmployerID: "employer-1",
			Title:      "Survey run",
			Budget:     500,
			Slots:      10,
		}

		_, err := taskSvc.Create(context.Background(), req)
		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "employer_id", validationErr.Field)

		_, err = statusSvc.VerifyEmployer(context.Background(), "employer-1", "admin-1")
		require.NoError(t, err)

		task, err := taskSvc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "employer-1", task.EmployerID)
	})
}

func TestStatusService_Reject(t *testing.T) {
	var gotTrigger domain.StatusTrigger
	store := &fakeStore{
		applyStatusTransitionFn: func(_ context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
			gotTrigger = trigger
			return &domain.Transition{
				WorkerID: workerID,
				From:     domain.StatusVerificationPending,
				To:       domain.StatusRejected,
				Trigger:  trigger,
				Actor:    actor,
				Changed:  true,
			}, nil
		},
	}
	svc := NewStatusService(store, &fakePublisher{}, testLogger())

	tr, err := svc.Reject(context.Background(), "worker-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TriggerApplicationRejected, gotTrigger)
	assert.Equal(t, domain.StatusRejected, tr.To)
}
