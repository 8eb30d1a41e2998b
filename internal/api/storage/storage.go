package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
	"github.com/workhive/marketplace-be/shared/postgresql"
)

// Storage owns all database access for the API service. Multi-step
// invariants (status transition + audit, interview result + promotion,
// approval + slot counting) are single transactions here so that partial
// writes cannot leak out.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a Storage backed by the shared PostgreSQL client.
func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		db:     pg.GetDB(),
		logger: logger,
	}
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("Failed to rollback transaction",
				slog.String("error", rbErr.Error()),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// lockedProfileStatus is the row shape read under FOR UPDATE before a
// status transition.
type lockedProfileStatus struct {
	WorkerStatus string `db:"worker_status"`
	Version      int    `db:"version"`
}

// applyStatusTransitionTx is the single write path for worker_status.
// It locks the profile row, validates the trigger against the transition
// table, bumps the version, and appends an audit row. No-op transitions
// (idempotent re-promotion, reschedule) touch nothing.
func (s *Storage) applyStatusTransitionTx(ctx context.Context, tx *sqlx.Tx, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
	var row lockedProfileStatus
	err := tx.GetContext(ctx, &row,
		`SELECT worker_status, version FROM profiles WHERE user_id = $1 FOR UPDATE`,
		workerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}

	current := domain.WorkerStatus(row.WorkerStatus)
	next, err := domain.NextStatus(current, trigger)
	if err != nil {
		return nil, err
	}

	tr := &domain.Transition{
		WorkerID: workerID,
		From:     current,
		To:       next,
		Trigger:  trigger,
		Actor:    actor,
	}

	if next == current {
		return tr, nil
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE profiles
		 SET worker_status = $1, version = version + 1, updated_at = NOW()
		 WHERE user_id = $2 AND version = $3`,
		string(next), workerID, row.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update worker status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrConflict
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO worker_status_audit (audit_id, worker_id, from_status, to_status, trigger, actor, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		uuid.New().String(), workerID, string(current), string(next), string(trigger), actor,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert status audit: %w", err)
	}

	tr.Changed = true
	return tr, nil
}

// ApplyStatusTransition applies a single trigger to a worker in its own
// transaction.
func (s *Storage) ApplyStatusTransition(ctx context.Context, workerID string, trigger domain.StatusTrigger, actor string) (*domain.Transition, error) {
	var tr *domain.Transition
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var txErr error
		tr, txErr = s.applyStatusTransitionTx(ctx, tx, workerID, trigger, actor)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// CreateProfile inserts a new profile row.
func (s *Storage) CreateProfile(ctx context.Context, p *model.Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (
			user_id, full_name, email, phone, role, worker_status, category,
			rating, bank_account_holder, bank_account_number, bank_ifsc,
			version, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14
		)`,
		p.UserID, p.FullName, p.Email, p.Phone, p.Role, p.WorkerStatus, p.Category,
		p.Rating, p.BankAccountHolder, p.BankAccountNumber, p.BankIFSC,
		p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfile fetches a profile by user id.
func (s *Storage) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	err := s.db.GetContext(ctx, &p,
		`SELECT user_id, full_name, email, phone, role, worker_status, category,
		        rating, bank_account_holder, bank_account_number, bank_ifsc,
		        version, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpdateBankDetails replaces the bank fields owned by the profile owner.
func (s *Storage) UpdateBankDetails(ctx context.Context, userID, holder, account, ifsc string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles
		 SET bank_account_holder = $1, bank_account_number = $2, bank_ifsc = $3, updated_at = NOW()
		 WHERE user_id = $4`,
		holder, account, ifsc, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank details: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListWorkerVerification returns the whole worker roster with document
// counters and the active interview in one set-based query, keyed on
// worker id, instead of a per-worker loop of round trips.
func (s *Storage) ListWorkerVerification(ctx context.Context) ([]model.WorkerVerificationRow, error) {
	query := `
		SELECT
			p.user_id, p.full_name, p.email, p.worker_status, p.category, p.rating,
			COALESCE(d.uploaded, 0) AS docs_uploaded,
			COALESCE(d.approved, 0) AS docs_approved,
			COALESCE(d.rejected, 0) AS docs_rejected,
			i.interview_id,
			i.scheduled_date AS interview_date
		FROM profiles p
		LEFT JOIN (
			SELECT worker_id,
			       COUNT(*) AS uploaded,
			       COUNT(*) FILTER (WHERE verification_status = 'approved') AS approved,
			       COUNT(*) FILTER (WHERE verification_status = 'rejected') AS rejected
			FROM worker_documents
			GROUP BY worker_id
		) d ON d.worker_id = p.user_id
		LEFT JOIN worker_interviews i
			ON i.worker_id = p.user_id AND i.status = 'scheduled'
		WHERE p.role = 'worker'
		ORDER BY p.created_at DESC
	`

	var rows []model.WorkerVerificationRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list worker verification: %w", err)
	}
	return rows, nil
}

// ListStatusAudit returns the transition history for a worker, newest
// first.
func (s *Storage) ListStatusAudit(ctx context.Context, workerID string) ([]model.StatusAudit, error) {
	var rows []model.StatusAudit
	err := s.db.SelectContext(ctx, &rows,
		`SELECT audit_id, worker_id, from_status, to_status, trigger, actor, created_at
		 FROM worker_status_audit
		 WHERE worker_id = $1
		 ORDER BY created_at DESC`,
		workerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list status audit: %w", err)
	}
	return rows, nil
}

// touchTimestamps fills create/update times on an insert model.
func touchTimestamps(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}
