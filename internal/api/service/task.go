package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/api/storage"
	"github.com/workhive/marketplace-be/internal/domain"
)

// TaskService owns task creation, listing, manual status changes,
// worker assignment and proof submission. Reviewing submissions belongs
// to ReviewService.
type TaskService struct {
	store  Store
	logger *slog.Logger
}

// NewTaskService builds a TaskService.
func NewTaskService(store Store, logger *slog.Logger) *TaskService {
	return &TaskService{store: store, logger: logger}
}

// CreateTaskRequest carries a raw task creation.
type CreateTaskRequest struct {
	EmployerID  string
	Title       string
	Description string
	Budget      float64
	Slots       int
	Category    string
	Countries   string
	AgeMin      int
	AgeMax      int
	Languages   string
	DeviceTypes string
}

// Create validates and inserts a task for an active employer.
func (t *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*model.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, domain.NewValidationError("title", "must not be empty")
	}
	if req.Budget <= 0 {
		return nil, domain.NewValidationError("budget", "must be positive")
	}
	if req.Slots < 1 {
		return nil, domain.NewValidationError("slots", "must be at least 1")
	}
	if req.AgeMin < 0 || (req.AgeMax > 0 && req.AgeMax < req.AgeMin) {
		return nil, domain.NewValidationError("age_range", "age_max must not be below age_min")
	}

	employer, err := t.store.GetProfile(ctx, req.EmployerID)
	if err != nil {
		return nil, err
	}
	if employer.Role != string(domain.RoleEmployer) {
		return nil, domain.NewValidationError("employer_id", "tasks belong to employer profiles")
	}
	if employer.WorkerStatus != string(domain.StatusActiveEmployee) {
		return nil, domain.NewValidationError("employer_id", "employer is not verified yet")
	}

	task := &model.Task{
		TaskID:      uuid.New().String(),
		EmployerID:  req.EmployerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Budget:      req.Budget,
		Status:      string(domain.TaskActive),
		Slots:       req.Slots,
	}
	task.Category = nullable(req.Category)
	task.Countries = nullable(req.Countries)
	task.Languages = nullable(req.Languages)
	task.DeviceTypes = nullable(req.DeviceTypes)
	if req.AgeMin > 0 {
		task.AgeMin = sql.NullInt32{Int32: int32(req.AgeMin), Valid: true}
	}
	if req.AgeMax > 0 {
		task.AgeMax = sql.NullInt32{Int32: int32(req.AgeMax), Valid: true}
	}

	if err := t.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	t.logger.Info("Task created",
		slog.String("task_id", task.TaskID),
		slog.String("employer_id", req.EmployerID),
		slog.Int("slots", req.Slots),
	)

	return task, nil
}

// Get fetches one task.
func (t *TaskService) Get(ctx context.Context, taskID string) (*model.Task, error) {
	if taskID == "" {
		return nil, domain.NewValidationError("task_id", "must not be empty")
	}
	return t.store.GetTask(ctx, taskID)
}

// List lists tasks with filters and keyset pagination.
func (t *TaskService) List(ctx context.Context, filter storage.TaskFilter) ([]model.Task, error) {
	return t.store.ListTasks(ctx, filter)
}

// ChangeStatus applies a manual active/paused/completed change.
func (t *TaskService) ChangeStatus(ctx context.Context, taskID, status string) (*model.Task, error) {
	switch domain.TaskStatus(status) {
	case domain.TaskActive, domain.TaskPaused, domain.TaskCompleted:
	default:
		return nil, domain.NewValidationError("status", "must be active, paused or completed")
	}

	return t.store.UpdateTaskStatus(ctx, taskID, domain.TaskStatus(status))
}

// Assign binds an active worker to an active task with free slots.
func (t *TaskService) Assign(ctx context.Context, taskID, workerID string) (*model.TaskAssignment, error) {
	worker, err := t.store.GetProfile(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker.Role != string(domain.RoleWorker) {
		return nil, domain.NewValidationError("worker_id", "assignments belong to worker profiles")
	}
	if worker.WorkerStatus != string(domain.StatusActiveEmployee) {
		return nil, domain.NewValidationError("worker_id", "worker is not an active employee")
	}

	a, err := t.store.CreateAssignment(ctx, taskID, workerID)
	if err != nil {
		return nil, err
	}

	t.logger.Info("Worker assigned to task",
		slog.String("task_id", taskID),
		slog.String("worker_id", workerID),
	)

	return a, nil
}

// Submit records a worker's proof-of-work against their assignment.
func (t *TaskService) Submit(ctx context.Context, taskID, workerID, proofText, proofFilePath string) (*model.TaskSubmission, error) {
	if proofText == "" && proofFilePath == "" {
		return nil, domain.NewValidationError("proof", "proof text or file is required")
	}

	if _, err := t.store.GetAssignment(ctx, taskID, workerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &model.TaskSubmission{
		SubmissionID:  uuid.New().String(),
		TaskID:        taskID,
		WorkerID:      workerID,
		ProofText:     nullable(proofText),
		ProofFilePath: nullable(proofFilePath),
		Status:        string(domain.SubmissionPending),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := t.store.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	t.logger.Info("Submission received",
		slog.String("submission_id", sub.SubmissionID),
		slog.String("task_id", taskID),
		slog.String("worker_id", workerID),
	)

	return sub, nil
}

// ListSubmissions returns a task's submissions for employer review.
func (t *TaskService) ListSubmissions(ctx context.Context, taskID string) ([]model.TaskSubmission, error) {
	if taskID == "" {
		return nil, domain.NewValidationError("task_id", "must not be empty")
	}
	return t.store.ListSubmissions(ctx, taskID)
}

// nullable wraps a possibly empty string for a nullable column.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
