package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

// UploadResult reports what a document upload did: the stored row, and
// the status transition fired when the upload completed the required set.
type UploadResult struct {
	Document   *model.WorkerDocument
	Transition *domain.Transition
}

// DecisionResult reports a verifier decision: the updated row, whether
// the worker is now fully approved, and the transition fired if so.
type DecisionResult struct {
	Document      *model.WorkerDocument
	FullyApproved bool
	Transition    *domain.Transition
}

// UpsertDocument records an upload. Approved documents are immutable;
// uploading over a rejected one resets the row to pending (resubmission).
// When the upload brings the worker to the full required set for the
// first time, the documents_submitted transition fires in the same
// transaction.
func (s *Storage) UpsertDocument(ctx context.Context, workerID string, docType domain.DocumentType, filePath string) (*UploadResult, error) {
	out := &UploadResult{}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var existing model.WorkerDocument
		err := tx.GetContext(ctx, &existing,
			`SELECT document_id, worker_id, document_type, file_path, verification_status,
			        verifier_id, verifier_notes, verified_at, created_at, updated_at
			 FROM worker_documents
			 WHERE worker_id = $1 AND document_type = $2
			 FOR UPDATE`,
			workerID, string(docType),
		)

		switch {
		case err == nil:
			if existing.VerificationStatus == string(domain.DocumentApproved) {
				return domain.NewValidationError("document_type", "document already approved and immutable")
			}
			// Rejected (or still pending) upload: reuse the row, reset to
			// pending and clear the previous verdict.
			row := existing
			err = tx.GetContext(ctx, &row,
				`UPDATE worker_documents
				 SET file_path = $1, verification_status = 'pending',
				     verifier_id = NULL, verifier_notes = NULL, verified_at = NULL,
				     updated_at = NOW()
				 WHERE document_id = $2
				 RETURNING document_id, worker_id, document_type, file_path, verification_status,
				           verifier_id, verifier_notes, verified_at, created_at, updated_at`,
				filePath, existing.DocumentID,
			)
			if err != nil {
				return fmt.Errorf("failed to reset document: %w", err)
			}
			out.Document = &row

		case errors.Is(err, sql.ErrNoRows):
			var row model.WorkerDocument
			err = tx.GetContext(ctx, &row,
				`INSERT INTO worker_documents (
					document_id, worker_id, document_type, file_path,
					verification_status, created_at, updated_at
				) VALUES ($1, $2, $3, $4, 'pending', NOW(), NOW())
				RETURNING document_id, worker_id, document_type, file_path, verification_status,
				          verifier_id, verifier_notes, verified_at, created_at, updated_at`,
				uuid.New().String(), workerID, string(docType), filePath,
			)
			if err != nil {
				return fmt.Errorf("failed to insert document: %w", err)
			}
			out.Document = &row

		default:
			return fmt.Errorf("failed to load document: %w", err)
		}

		uploaded, err := s.countRequiredTx(ctx, tx, workerID, "")
		if err != nil {
			return err
		}

		if uploaded == len(domain.RequiredDocumentTypes) {
			tr, trErr := s.applyStatusTransitionTx(ctx, tx, workerID, domain.TriggerDocumentsSubmitted, workerID)
			if trErr != nil {
				// The worker may already be past document_upload_pending
				// (resubmission after a rejection); that is not an error
				// for the upload itself.
				var illegal *domain.IllegalTransitionError
				if !errors.As(trErr, &illegal) {
					return trErr
				}
			} else if tr.Changed {
				out.Transition = tr
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ListDocuments returns all document rows for a worker.
func (s *Storage) ListDocuments(ctx context.Context, workerID string) ([]model.WorkerDocument, error) {
	var docs []model.WorkerDocument
	err := s.db.SelectContext(ctx, &docs,
		`SELECT document_id, worker_id, document_type, file_path, verification_status,
		        verifier_id, verifier_notes, verified_at, created_at, updated_at
		 FROM worker_documents
		 WHERE worker_id = $1
		 ORDER BY document_type`,
		workerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// ApplyDocumentDecision records a verifier verdict on a pending
// document. Approving the last outstanding required type advances the
// worker via all_documents_approved in the same transaction.
func (s *Storage) ApplyDocumentDecision(ctx context.Context, documentID string, decision domain.DocumentStatus, verifierID, notes string) (*DecisionResult, error) {
	out := &DecisionResult{}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var doc model.WorkerDocument
		err := tx.GetContext(ctx, &doc,
			`SELECT document_id, worker_id, document_type, file_path, verification_status,
			        verifier_id, verifier_notes, verified_at, created_at, updated_at
			 FROM worker_documents
			 WHERE document_id = $1
			 FOR UPDATE`,
			documentID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load document: %w", err)
		}

		if doc.VerificationStatus != string(domain.DocumentPending) {
			return domain.NewValidationError("document", "decision requires a pending document")
		}

		err = tx.GetContext(ctx, &doc,
			`UPDATE worker_documents
			 SET verification_status = $1, verifier_id = $2, verifier_notes = $3,
			     verified_at = NOW(), updated_at = NOW()
			 WHERE document_id = $4
			 RETURNING document_id, worker_id, document_type, file_path, verification_status,
			           verifier_id, verifier_notes, verified_at, created_at, updated_at`,
			string(decision), verifierID, notes, documentID,
		)
		if err != nil {
			return fmt.Errorf("failed to apply document decision: %w", err)
		}
		out.Document = &doc

		if decision != domain.DocumentApproved {
			return nil
		}

		approved, err := s.countRequiredTx(ctx, tx, doc.WorkerID, domain.DocumentApproved)
		if err != nil {
			return err
		}

		if approved == len(domain.RequiredDocumentTypes) {
			out.FullyApproved = true
			tr, trErr := s.applyStatusTransitionTx(ctx, tx, doc.WorkerID, domain.TriggerAllDocumentsApproved, verifierID)
			if trErr != nil {
				return trErr
			}
			if tr.Changed {
				out.Transition = tr
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// IsFullyApproved reports whether every required document type has an
// approved record, computed from the canonical stored rows.
func (s *Storage) IsFullyApproved(ctx context.Context, workerID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(DISTINCT document_type)
		 FROM worker_documents
		 WHERE worker_id = $1
		   AND verification_status = 'approved'
		   AND document_type = ANY($2)`,
		workerID, pq.Array(domain.RequiredDocumentTypeNames()),
	)
	if err != nil {
		return false, fmt.Errorf("failed to count approved documents: %w", err)
	}
	return count == len(domain.RequiredDocumentTypes), nil
}

// countRequiredTx counts distinct required document types for a worker,
// optionally restricted to one verification status.
func (s *Storage) countRequiredTx(ctx context.Context, tx *sqlx.Tx, workerID string, status domain.DocumentStatus) (int, error) {
	query := `
		SELECT COUNT(DISTINCT document_type)
		FROM worker_documents
		WHERE worker_id = $1 AND document_type = ANY($2)
	`
	args := []interface{}{workerID, pq.Array(domain.RequiredDocumentTypeNames())}

	if status != "" {
		query += ` AND verification_status = $3`
		args = append(args, string(status))
	}

	var count int
	if err := tx.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	s.logger.Debug("Counted required documents",
		slog.String("worker_id", workerID),
		slog.String("status", string(status)),
		slog.Int("count", count),
	)

	return count, nil
}
