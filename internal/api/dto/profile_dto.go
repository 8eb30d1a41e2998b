package dto

import (
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
)

type RegisterProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Category string `json:"category"`
}

type UpdateBankDetailsRequest struct {
	BankAccountHolder string `json:"bank_account_holder" binding:"required"`
	BankAccountNumber string `json:"bank_account_number" binding:"required"`
	BankIFSC          string `json:"bank_ifsc" binding:"required"`
}

type ProfileDTO struct {
	UserID       string  `json:"user_id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	Role         string  `json:"role"`
	WorkerStatus string  `json:"worker_status"`
	Category     string  `json:"category,omitempty"`
	Rating       float64 `json:"rating"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// FromProfile maps a profile row. Bank fields stay private to the
// payment path and are never serialized here.
func FromProfile(p *model.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:       p.UserID,
		FullName:     p.FullName,
		Email:        p.Email,
		Phone:        p.Phone.String,
		Role:         p.Role,
		WorkerStatus: p.WorkerStatus,
		Category:     p.Category.String,
		Rating:       p.Rating,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

type WorkerVerificationDTO struct {
	UserID        string  `json:"user_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	WorkerStatus  string  `json:"worker_status"`
	Category      string  `json:"category,omitempty"`
	Rating        float64 `json:"rating"`
	DocsUploaded  int     `json:"docs_uploaded"`
	DocsApproved  int     `json:"docs_approved"`
	DocsRejected  int     `json:"docs_rejected"`
	InterviewID   string  `json:"interview_id,omitempty"`
	InterviewDate string  `json:"interview_date,omitempty"`
}

// FromWorkerVerification maps one batched roster row.
func FromWorkerVerification(r model.WorkerVerificationRow) WorkerVerificationDTO {
	out := WorkerVerificationDTO{
		UserID:       r.UserID,
		FullName:     r.FullName,
		Email:        r.Email,
		WorkerStatus: r.WorkerStatus,
		Category:     r.Category.String,
		Rating:       r.Rating,
		DocsUploaded: r.DocsUploaded,
		DocsApproved: r.DocsApproved,
		DocsRejected: r.DocsRejected,
	}
	if r.InterviewID.Valid {
		out.InterviewID = r.InterviewID.String
	}
	if r.InterviewDate.Valid {
		out.InterviewDate = r.InterviewDate.Time.Format(time.RFC3339)
	}
	return out
}

type StatusAuditDTO struct {
	AuditID    string `json:"audit_id"`
	WorkerID   string `json:"worker_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Trigger    string `json:"trigger"`
	Actor      string `json:"actor"`
	CreatedAt  string `json:"created_at"`
}

// FromStatusAudit maps one audit row.
func FromStatusAudit(a model.StatusAudit) StatusAuditDTO {
	return StatusAuditDTO{
		AuditID:    a.AuditID,
		WorkerID:   a.WorkerID,
		FromStatus: a.FromStatus,
		ToStatus:   a.ToStatus,
		Trigger:    a.Trigger,
		Actor:      a.Actor,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
