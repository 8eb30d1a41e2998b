package dto

import (
	"time"

	"github.com/workhive/marketplace-be/internal/api/model"
)

type CreateTaskRequest struct {
	EmployerID  string  `json:"employer_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget" binding:"required"`
	Slots       int     `json:"slots" binding:"required"`
	Category    string  `json:"category"`
	Countries   string  `json:"countries"`
	AgeMin      int     `json:"age_min"`
	AgeMax      int     `json:"age_max"`
	Languages   string  `json:"languages"`
	DeviceTypes string  `json:"device_types"`
}

type ListTasksRequest struct {
	EmployerID string `form:"employer_id"`
	Status     string `form:"status"`
	Category   string `form:"category"`
	PageSize   int    `form:"page_size"`
	Cursor     string `form:"cursor"`
}

type ChangeTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignWorkerRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
}

type SubmitProofRequest struct {
	WorkerID      string `json:"worker_id" binding:"required"`
	ProofText     string `json:"proof_text"`
	ProofFilePath string `json:"proof_file_path"`
}

type SubmissionDecisionRequest struct {
	Decision   string `json:"decision" binding:"required"`
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Notes      string `json:"notes"`
}

type RateSubmissionRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

type TaskDTO struct {
	TaskID         string  `json:"task_id"`
	EmployerID     string  `json:"employer_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Budget         float64 `json:"budget"`
	Status         string  `json:"status"`
	Slots          int     `json:"slots"`
	CompletedSlots int     `json:"completed_slots"`
	Category       string  `json:"category,omitempty"`
	Countries      string  `json:"countries,omitempty"`
	AgeMin         int     `json:"age_min,omitempty"`
	AgeMax         int     `json:"age_max,omitempty"`
	Languages      string  `json:"languages,omitempty"`
	DeviceTypes    string  `json:"device_types,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// FromTask maps a task row.
func FromTask(t *model.Task) TaskDTO {
	out := TaskDTO{
		TaskID:         t.TaskID,
		EmployerID:     t.EmployerID,
		Title:          t.Title,
		Description:    t.Description,
		Budget:         t.Budget,
		Status:         t.Status,
		Slots:          t.Slots,
		CompletedSlots: t.CompletedSlots,
		Category:       t.Category.String,
		Countries:      t.Countries.String,
		Languages:      t.Languages.String,
		DeviceTypes:    t.DeviceTypes.String,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
	}
	if t.AgeMin.Valid {
		out.AgeMin = int(t.AgeMin.Int32)
	}
	if t.AgeMax.Valid {
		out.AgeMax = int(t.AgeMax.Int32)
	}
	return out
}

type ListTasksResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

type AssignmentDTO struct {
	AssignmentID string `json:"assignment_id"`
	TaskID       string `json:"task_id"`
	WorkerID     string `json:"worker_id"`
	CreatedAt    string `json:"created_at"`
}

// FromAssignment maps an assignment row.
func FromAssignment(a *model.TaskAssignment) AssignmentDTO {
	return AssignmentDTO{
		AssignmentID: a.AssignmentID,
		TaskID:       a.TaskID,
		WorkerID:     a.WorkerID,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

type SubmissionDTO struct {
	SubmissionID  string  `json:"submission_id"`
	TaskID        string  `json:"task_id"`
	WorkerID      string  `json:"worker_id"`
	ProofText     string  `json:"proof_text,omitempty"`
	ProofFilePath string  `json:"proof_file_path,omitempty"`
	Status        string  `json:"status"`
	ReviewerID    string  `json:"reviewer_id,omitempty"`
	ReviewerNotes string  `json:"reviewer_notes,omitempty"`
	ReviewedAt    string  `json:"reviewed_at,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// FromSubmission maps a submission row.
func FromSubmission(s *model.TaskSubmission) SubmissionDTO {
	out := SubmissionDTO{
		SubmissionID:  s.SubmissionID,
		TaskID:        s.TaskID,
		WorkerID:      s.WorkerID,
		ProofText:     s.ProofText.String,
		ProofFilePath: s.ProofFilePath.String,
		Status:        s.Status,
		ReviewerID:    s.ReviewerID.String,
		ReviewerNotes: s.ReviewerNotes.String,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
	if s.ReviewedAt.Valid {
		out.ReviewedAt = s.ReviewedAt.Time.Format(time.RFC3339)
	}
	if s.Rating.Valid {
		out.Rating = s.Rating.Float64
	}
	return out
}
