package dto

import (
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
)

type UploadDocumentRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	FilePath     string `json:"file_path" binding:"required"`
}

type DocumentDecisionRequest struct {
	Decision   string `json:"decision" binding:"required"`
	VerifierID string `json:"verifier_id" binding:"required"`
	Notes      string `json:"notes"`
}

type DocumentDTO struct {
	DocumentID         string `json:"document_id"`
	WorkerID           string `json:"worker_id"`
	DocumentType       string `json:"document_type"`
	FilePath           string `json:"file_path"`
	VerificationStatus string `json:"verification_status"`
	VerifierID         string `json:"verifier_id,omitempty"`
	VerifierNotes      string `json:"verifier_notes,omitempty"`
	VerifiedAt         string `json:"verified_at,omitempty"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

// FromDocument maps a document row.
func FromDocument(d *model.WorkerDocument) DocumentDTO {
	out := DocumentDTO{
		DocumentID:         d.DocumentID,
		WorkerID:           d.WorkerID,
		DocumentType:       d.DocumentType,
		FilePath:           d.FilePath,
		VerificationStatus: d.VerificationStatus,
		VerifierID:         d.VerifierID.String,
		VerifierNotes:      d.VerifierNotes.String,
		CreatedAt:          d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          d.UpdatedAt.Format(time.RFC3339),
	}
	if d.VerifiedAt.Valid {
		out.VerifiedAt = d.VerifiedAt.Time.Format(time.RFC3339)
	}
	return out
}

type DocumentDecisionResponse struct {
	Document      DocumentDTO `json:"document"`
	FullyApproved bool        `json:"fully_approved"`
	WorkerStatus  string      `json:"worker_status,omitempty"`
}
