package dto

import (
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
)

type InitiatePaymentRequest struct {
	TaskID     string  `json:"task_id" binding:"required"`
	WorkerID   string  `json:"worker_id" binding:"required"`
	EmployerID string  `json:"employer_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
}

type AttachProofRequest struct {
	FilePath         string `json:"file_path" binding:"required"`
	ClaimedReference string `json:"claimed_reference"`
}

type PaymentDTO struct {
	PaymentID     string  `json:"payment_id"`
	TaskID        string  `json:"task_id"`
	WorkerID      string  `json:"worker_id"`
	EmployerID    string  `json:"employer_id"`
	Amount        float64 `json:"amount"`
	PaymentStatus string  `json:"payment_status"`
	Method        string  `json:"method"`
	ExternalRef   string  `json:"external_ref,omitempty"`
	CompletedAt   string  `json:"completed_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// FromPayment maps a payment row.
func FromPayment(p *model.PaymentRecord) PaymentDTO {
	out := PaymentDTO{
		PaymentID:     p.PaymentID,
		TaskID:        p.TaskID,
		WorkerID:      p.WorkerID,
		EmployerID:    p.EmployerID,
		Amount:        p.Amount,
		PaymentStatus: p.PaymentStatus,
		Method:        p.Method,
		ExternalRef:   p.ExternalRef.String,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.CompletedAt.Valid {
		out.CompletedAt = p.CompletedAt.Time.Format(time.RFC3339)
	}
	return out
}

type InitiatePaymentResponse struct {
	Payment PaymentDTO `json:"payment"`
	Reused  bool       `json:"reused"`
}

type ProofDTO struct {
	ProofID          string `json:"proof_id"`
	PaymentID        string `json:"payment_id"`
	FilePath         string `json:"file_path"`
	ClaimedReference string `json:"claimed_reference,omitempty"`
	ReviewStatus     string `json:"review_status"`
	CreatedAt        string `json:"created_at"`
}

// FromProof maps a proof row.
func FromProof(p *model.TransactionProof) ProofDTO {
	return ProofDTO{
		ProofID:          p.ProofID,
		PaymentID:        p.PaymentID,
		FilePath:         p.FilePath,
		ClaimedReference: p.ClaimedReference,
		ReviewStatus:     p.ReviewStatus,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}
