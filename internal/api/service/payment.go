package service

import (
	"context"
	"log/slog"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

// PaymentService owns the manual bank-transfer attestation lifecycle:
// initiate, attach proof, complete.
type PaymentService struct {
	store  Store
	events EventPublisher
	logger *slog.Logger
}

// NewPaymentService builds a PaymentService.
func NewPaymentService(store Store, events EventPublisher, logger *slog.Logger) *PaymentService {
	return &PaymentService{store: store, events: events, logger: logger}
}

// Initiate creates the payment record for a (task, worker, employer)
// triple or reuses the processing one already on file.
func (p *PaymentService) Initiate(ctx context.Context, taskID, workerID, employerID string, amount float64) (*model.PaymentRecord, bool, error) {
	if taskID == "" || workerID == "" || employerID == "" {
		return nil, false, domain.NewValidationError("payment", "task_id, worker_id and employer_id are required")
	}
	if amount <= 0 {
		return nil, false, domain.NewValidationError("amount", "must be positive")
	}

	task, err := p.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, false, err
	}
	if task.EmployerID != employerID {
		return nil, false, domain.NewValidationError("employer_id", "only the task owner may pay for it")
	}

	rec, reused, err := p.store.InitiatePayment(ctx, taskID, workerID, employerID, amount, "bank_transfer")
	if err != nil {
		return nil, false, err
	}

	p.logger.Info("Payment initiated",
		slog.String("payment_id", rec.PaymentID),
		slog.String("task_id", taskID),
		slog.String("worker_id", workerID),
		slog.Bool("reused", reused),
	)

	return rec, reused, nil
}

// AttachProof stores an uploaded transfer proof. The worker's bank
// details must be fully populated first; placeholder values block the
// attachment before anything is written.
func (p *PaymentService) AttachProof(ctx context.Context, paymentID, filePath, claimedReference string) (*model.TransactionProof, error) {
	if filePath == "" {
		return nil, domain.NewValidationError("file_path", "must not be empty")
	}

	rec, err := p.store.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	worker, err := p.store.GetProfile(ctx, rec.WorkerID)
	if err != nil {
		return nil, err
	}
	if err := validateBankDetails(worker); err != nil {
		return nil, err
	}

	proof, err := p.store.AttachProof(ctx, paymentID, filePath, claimedReference)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Transaction proof attached",
		slog.String("payment_id", paymentID),
		slog.String("proof_id", proof.ProofID),
	)

	return proof, nil
}

// Complete transitions processing to completed; a payment without an
// attached proof cannot complete.
func (p *PaymentService) Complete(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	rec, err := p.store.CompletePayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Payment completed",
		slog.String("payment_id", paymentID),
		slog.String("task_id", rec.TaskID),
	)

	e := domain.NewEvent(domain.EventPaymentCompleted, rec.WorkerID, paymentID)
	e.TaskID = rec.TaskID
	publishEvent(ctx, p.events, p.logger, e)

	return rec, nil
}

// ListForTask returns a task's payment records.
func (p *PaymentService) ListForTask(ctx context.Context, taskID string) ([]model.PaymentRecord, error) {
	if taskID == "" {
		return nil, domain.NewValidationError("task_id", "must not be empty")
	}
	return p.store.ListPayments(ctx, taskID)
}

// validateBankDetails rejects empty or placeholder bank fields.
func validateBankDetails(worker *model.Profile) error {
	fields := map[string]string{
		"bank_account_holder": worker.BankAccountHolder,
		"bank_account_number": worker.BankAccountNumber,
		"bank_ifsc":           worker.BankIFSC,
	}

	for name, value := range fields {
		if value == "" || value == domain.BankDetailPlaceholder {
			return domain.NewValidationError(name, "worker bank details are incomplete")
		}
	}

	return nil
}
