package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

const paymentColumns = `payment_id, task_id, worker_id, employer_id, amount,
	payment_status, method, external_ref, completed_at, created_at, updated_at`

// InitiatePayment creates a payment record for the (task, worker,
// employer) triple or reuses the existing processing one. The lookup and
// insert share a transaction so concurrent initiations cannot produce
// duplicates.
func (s *Storage) InitiatePayment(ctx context.Context, taskID, workerID, employerID string, amount float64, method string) (*model.PaymentRecord, bool, error) {
	var out model.PaymentRecord
	var reused bool

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var existing model.PaymentRecord
		err := tx.GetContext(ctx, &existing,
			`SELECT `+paymentColumns+`
			 FROM task_payment_records
			 WHERE task_id = $1 AND worker_id = $2 AND employer_id = $3
			   AND payment_status = 'processing'
			 FOR UPDATE`,
			taskID, workerID, employerID,
		)

		switch {
		case err == nil:
			out = existing
			reused = true
			return nil

		case errors.Is(err, sql.ErrNoRows):
			err = tx.GetContext(ctx, &out,
				`INSERT INTO task_payment_records (
					payment_id, task_id, worker_id, employer_id, amount,
					payment_status, method, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, 'processing', $6, NOW(), NOW())
				RETURNING `+paymentColumns,
				uuid.New().String(), taskID, workerID, employerID, amount, method,
			)
			if err != nil {
				return fmt.Errorf("failed to insert payment: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("failed to look up payment: %w", err)
		}
	})
	if err != nil {
		return nil, false, err
	}

	if reused {
		s.logger.Info("Reusing existing processing payment",
			slog.String("payment_id", out.PaymentID),
			slog.String("task_id", taskID),
			slog.String("worker_id", workerID),
		)
	}

	return &out, reused, nil
}

// GetPayment fetches one payment record.
func (s *Storage) GetPayment(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	var p model.PaymentRecord
	err := s.db.GetContext(ctx, &p,
		`SELECT `+paymentColumns+` FROM task_payment_records WHERE payment_id = $1`,
		paymentID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

// ListPayments returns the payment records for a task.
func (s *Storage) ListPayments(ctx context.Context, taskID string) ([]model.PaymentRecord, error) {
	var rows []model.PaymentRecord
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+paymentColumns+`
		 FROM task_payment_records
		 WHERE task_id = $1
		 ORDER BY created_at DESC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return rows, nil
}

// AttachProof stores an uploaded transfer proof against a processing
// payment.
func (s *Storage) AttachProof(ctx context.Context, paymentID, filePath, claimedReference string) (*model.TransactionProof, error) {
	var out model.TransactionProof

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var status string
		err := tx.GetContext(ctx, &status,
			`SELECT payment_status FROM task_payment_records WHERE payment_id = $1 FOR UPDATE`,
			paymentID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load payment: %w", err)
		}

		if status != string(domain.PaymentProcessing) {
			return domain.NewValidationError("payment", "proof requires a processing payment")
		}

		err = tx.GetContext(ctx, &out,
			`INSERT INTO transaction_proofs (
				proof_id, payment_id, file_path, claimed_reference, review_status, created_at
			) VALUES ($1, $2, $3, $4, 'pending', NOW())
			RETURNING proof_id, payment_id, file_path, claimed_reference, review_status, created_at`,
			uuid.New().String(), paymentID, filePath, claimedReference,
		)
		if err != nil {
			return fmt.Errorf("failed to attach proof: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// CompletePayment moves a processing payment to completed. At least one
// attached proof is required; there is no proof-less completion path.
func (s *Storage) CompletePayment(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	var out model.PaymentRecord

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var p model.PaymentRecord
		err := tx.GetContext(ctx, &p,
			`SELECT `+paymentColumns+`
			 FROM task_payment_records
			 WHERE payment_id = $1
			 FOR UPDATE`,
			paymentID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load payment: %w", err)
		}

		if p.PaymentStatus != string(domain.PaymentProcessing) {
			return domain.NewValidationError("payment", "completion requires a processing payment")
		}

		var proofs int
		if err := tx.GetContext(ctx, &proofs,
			`SELECT COUNT(*) FROM transaction_proofs WHERE payment_id = $1`, paymentID); err != nil {
			return fmt.Errorf("failed to count proofs: %w", err)
		}
		if proofs == 0 {
			return domain.ErrProofRequired
		}

		err = tx.GetContext(ctx, &out,
			`UPDATE task_payment_records
			 SET payment_status = 'completed', completed_at = NOW(), updated_at = NOW()
			 WHERE payment_id = $1
			 RETURNING `+paymentColumns,
			paymentID,
		)
		if err != nil {
			return fmt.Errorf("failed to complete payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
