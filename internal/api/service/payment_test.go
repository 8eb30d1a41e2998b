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

func TestPaymentService_Initiate(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name       string
			taskID     string
			workerID   string
			employerID string
			amount     float64
			wantField  string
		}{
			{"missing task id", "", "worker-1", "employer-1", 100, "payment"},
			{"missing worker id", "task-1", "", "employer-1", 100, "payment"},
			{"missing employer id", "task-1", "worker-1", "", 100, "payment"},
			{"zero amount", "task-1", "worker-1", "employer-1", 0, "amount"},
			{"negative amount", "task-1", "worker-1", "employer-1", -50, "amount"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := NewPaymentService(&fakeStore{}, &fakePublisher{}, testLogger())

				_, _, err := svc.Initiate(context.Background(), tt.taskID, tt.workerID, tt.employerID, tt.amount)

				var validationErr *domain.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, tt.wantField, validationErr.Field)
			})
		}
	})

	t.Run("only the task owner may initiate", func(t *testing.T) {
		store := &fakeStore{
			getTaskFn: func(_ context.Context, taskID string) (*model.Task, error) {
				return &model.Task{TaskID: taskID, EmployerID: "employer-1"}, nil
			},
		}
		svc := NewPaymentService(store, &fakePublisher{}, testLogger())

		_, _, err := svc.Initiate(context.Background(), "task-1", "worker-1", "employer-2", 100)

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "employer_id", validationErr.Field)
	})

	t.Run("new payment defaults to bank transfer", func(t *testing.T) {
		store := &fakeStore{
			getTaskFn: func(_ context.Context, taskID string) (*model.Task, error) {
				return &model.Task{TaskID: taskID, EmployerID: "employer-1"}, nil
			},
			initiatePaymentFn: func(_ context.Context, taskID, workerID, employerID string, amount float64, method string) (*model.PaymentRecord, bool, error) {
				assert.Equal(t, "bank_transfer", method)
				return &model.PaymentRecord{
					PaymentID:     "pay-1",
					TaskID:        taskID,
					WorkerID:      workerID,
					EmployerID:    employerID,
					Amount:        amount,
					PaymentStatus: string(domain.PaymentProcessing),
					Method:        method,
				}, false, nil
			},
		}
		svc := NewPaymentService(store, &fakePublisher{}, testLogger())

		rec, reused, err := svc.Initiate(context.Background(), "task-1", "worker-1", "employer-1", 250)
		require.NoError(t, err)
		assert.False(t, reused)
		assert.Equal(t, "pay-1", rec.PaymentID)
	})

	t.Run("repeat initiation reuses the processing record", func(t *testing.T) {
		store := &fakeStore{
			getTaskFn: func(_ context.Context, taskID string) (*model.Task, error) {
				return &model.Task{TaskID: taskID, EmployerID: "employer-1"}, nil
			},
			initiatePaymentFn: func(_ context.Context, taskID, workerID, employerID string, amount float64, method string) (*model.PaymentRecord, bool, error) {
				return &model.PaymentRecord{PaymentID: "pay-1", TaskID: taskID}, true, nil
			},
		}
		svc := NewPaymentService(store, &fakePublisher{}, testLogger())

		rec, reused, err := svc.Initiate(context.Background(), "task-1", "worker-1", "employer-1", 250)
		require.NoError(t, err)
		assert.True(t, reused)
		assert.Equal(t, "pay-1", rec.PaymentID)
	})
}

func TestPaymentService_AttachProof(t *testing.T) {
	paidWorker := func(id string) *model.Profile {
		return &model.Profile{
			UserID:            id,
			Role:              string(domain.RoleWorker),
			BankAccountHolder: "A. Worker",
			BankAccountNumber: "0011223344",
			BankIFSC:          "WRKH0001234",
		}
	}

	t.Run("requires a file path", func(t *testing.T) {
		svc := NewPaymentService(&fakeStore{}, &fakePublisher{}, testLogger())

		_, err := svc.AttachProof(context.Background(), "pay-1", "", "TXN-9")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "file_path", validationErr.Field)
	})

	t.Run("placeholder bank details block the attachment", func(t *testing.T) {
		attached := false
		store := &fakeStore{
			getPaymentFn: func(_ context.Context, paymentID string) (*model.PaymentRecord, error) {
				return &model.PaymentRecord{PaymentID: paymentID, WorkerID: "worker-1"}, nil
			},
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				p := paidWorker(userID)
				p.BankAccountNumber = domain.BankDetailPlaceholder
				return p, nil
			},
			attachProofFn: func(_ context.Context, _, _, _ string) (*model.TransactionProof, error) {
				attached = true
				return nil, nil
			},
		}
		svc := NewPaymentService(store, &fakePublisher{}, testLogger())

		_, err := svc.AttachProof(context.Background(), "pay-1", "/proofs/txn.png", "TXN-9")

		var validationErr *domain.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "bank_account_number", validationErr.Field)
		assert.False(t, attached)
	})

	t.Run("complete bank details let the proof through", func(t *testing.T) {
		store := &fakeStore{
			getPaymentFn: func(_ context.Context, paymentID string) (*model.PaymentRecord, error) {
				return &model.PaymentRecord{PaymentID: paymentID, WorkerID: "worker-1"}, nil
			},
			getProfileFn: func(_ context.Context, userID string) (*model.Profile, error) {
				return paidWorker(userID), nil
			},
			attachProofFn: func(_ context.Context, paymentID, filePath, claimedReference string) (*model.TransactionProof, error) {
				return &model.TransactionProof{
					ProofID:          "proof-1",
					PaymentID:        paymentID,
					FilePath:         filePath,
					ClaimedReference: claimedReference,
				}, nil
			},
		}
		svc := NewPaymentService(store, &fakePublisher{}, testLogger())

		proof, err := svc.AttachProof(context.Background(), "pay-1", "/proofs/txn.png", "TXN-9")
		require.NoError(t, err)
		assert.Equal(t, "proof-1", proof.ProofID)
	})
}

func TestPaymentService_Complete(t *testing.T) {
	t.Run("publishes a payment event", func(t *testing.T) {
		store := &fakeStore{
			completePaymentFn: func(_ context.Context, paymentID string) (*model.PaymentRecord, error) {
				return &model.PaymentRecord{
					PaymentID:     paymentID,
					TaskID:        "task-1",
					WorkerID:      "worker-1",
					PaymentStatus: string(domain.PaymentCompleted),
				}, nil
			},
		}
		events := &fakePublisher{}
		svc := NewPaymentService(store, events, testLogger())

		rec, err := svc.Complete(context.Background(), "pay-1")
		require.NoError(t, err)
		assert.Equal(t, string(domain.PaymentCompleted), rec.PaymentStatus)

		published := events.published()
		require.Len(t, published, 1)
		assert.Equal(t, domain.EventPaymentCompleted, published[0].Type)
		assert.Equal(t, "worker-1", published[0].WorkerID)
		assert.Equal(t, "task-1", published[0].TaskID)
	})

	t.Run("missing proof surfaces from the store", func(t *testing.T) {
		store := &fakeStore{
			completePaymentFn: func(_ context.Context, _ string) (*model.PaymentRecord, error) {
				return nil, domain.ErrProofRequired
			},
		}
		events := &fakePublisher{}
		svc := NewPaymentService(store, events, testLogger())

		_, err := svc.Complete(context.Background(), "pay-1")
		require.ErrorIs(t, err, domain.ErrProofRequired)
		assert.Empty(t, events.published())
	})
}
