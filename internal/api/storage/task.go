package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/workhive/marketplace-be/internal/api/model"
	"github.com/workhive/marketplace-be/internal/domain"
)

const taskColumns = `task_id, employer_id, title, description, budget, status,
	slots, completed_slots, category, countries, age_min, age_max,
	languages, device_types, created_at, updated_at`

const submissionColumns = `submission_id, task_id, worker_id, proof_text, proof_file_path,
	status, reviewer_id, reviewer_notes, reviewed_at, rating, created_at, updated_at`

// TaskFilter narrows the task listing; Cursor implements keyset
// pagination over (created_at, task_id).
type TaskFilter struct {
	EmployerID string
	Status     string
	Category   string
	PageSize   int
	Cursor     *TaskCursor
}

// TaskCursor is the keyset position for task pagination.
type TaskCursor struct {
	CreatedAt time.Time
	TaskID    string
}

// CreateTask inserts a task row.
func (s *Storage) CreateTask(ctx context.Context, t *model.Task) error {
	touchTimestamps(&t.CreatedAt, &t.UpdatedAt)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (
			task_id, employer_id, title, description, budget, status,
			slots, completed_slots, category, countries, age_min, age_max,
			languages, device_types, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16
		)`,
		t.TaskID, t.EmployerID, t.Title, t.Description, t.Budget, t.Status,
		t.Slots, t.CompletedSlots, t.Category, t.Countries, t.AgeMin, t.AgeMax,
		t.Languages, t.DeviceTypes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetTask fetches one task.
func (s *Storage) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	var t model.Task
	err := s.db.GetContext(ctx, &t,
		`SELECT `+taskColumns+` FROM tasks WHERE task_id = $1`,
		taskID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

// ListTasks lists tasks with filters and keyset pagination. One extra
// row is fetched so the caller can tell whether more pages exist.
func (s *Storage) ListTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.EmployerID != "" {
		query += fmt.Sprintf(" AND employer_id = $%d", argIdx)
		args = append(args, filter.EmployerID)
		argIdx++
	}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, task_id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.TaskID)
		argIdx += 2
	}

	query += " ORDER BY created_at DESC, task_id DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var tasks []model.Task
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskStatus applies a manual status change after validating it
// against the task transition table under a row lock.
func (s *Storage) UpdateTaskStatus(ctx context.Context, taskID string, to domain.TaskStatus) (*model.Task, error) {
	var out model.Task

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var t model.Task
		err := tx.GetContext(ctx, &t,
			`SELECT `+taskColumns+` FROM tasks WHERE task_id = $1 FOR UPDATE`,
			taskID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load task: %w", err)
		}

		if !domain.CanChangeTaskStatus(domain.TaskStatus(t.Status), to) {
			return domain.NewValidationError("status",
				fmt.Sprintf("cannot move task from %s to %s", t.Status, to))
		}

		err = tx.GetContext(ctx, &out,
			`UPDATE tasks SET status = $1, updated_at = NOW()
			 WHERE task_id = $2
			 RETURNING `+taskColumns,
			string(to), taskID,
		)
		if err != nil {
			return fmt.Errorf("failed to update task status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// CreateAssignment assigns a worker to a task while it is active and
// has free slots; the task row is locked so concurrent assignments
// cannot oversubscribe.
func (s *Storage) CreateAssignment(ctx context.Context, taskID, workerID string) (*model.TaskAssignment, error) {
	var out model.TaskAssignment

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var t model.Task
		err := tx.GetContext(ctx, &t,
			`SELECT `+taskColumns+` FROM tasks WHERE task_id = $1 FOR UPDATE`,
			taskID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load task: %w", err)
		}

		if t.Status != string(domain.TaskActive) {
			return domain.NewValidationError("task", "assignments require an active task")
		}

		var assigned int
		if err := tx.GetContext(ctx, &assigned,
			`SELECT COUNT(*) FROM task_assignments WHERE task_id = $1`, taskID); err != nil {
			return fmt.Errorf("failed to count assignments: %w", err)
		}
		if assigned >= t.Slots {
			return domain.NewValidationError("task", "no free slots")
		}

		var exists int
		if err := tx.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM task_assignments WHERE task_id = $1 AND worker_id = $2`,
			taskID, workerID); err != nil {
			return fmt.Errorf("failed to check assignment: %w", err)
		}
		if exists > 0 {
			return domain.ErrConflict
		}

		err = tx.GetContext(ctx, &out,
			`INSERT INTO task_assignments (assignment_id, task_id, worker_id, created_at)
			 VALUES ($1, $2, $3, NOW())
			 RETURNING assignment_id, task_id, worker_id, created_at`,
			uuid.New().String(), taskID, workerID,
		)
		if err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// GetAssignment fetches the assignment binding a worker to a task.
func (s *Storage) GetAssignment(ctx context.Context, taskID, workerID string) (*model.TaskAssignment, error) {
	var a model.TaskAssignment
	err := s.db.GetContext(ctx, &a,
		`SELECT assignment_id, task_id, worker_id, created_at
		 FROM task_assignments
		 WHERE task_id = $1 AND worker_id = $2`,
		taskID, workerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

// CreateSubmission records a worker's proof-of-work; one submission per
// (task, worker).
func (s *Storage) CreateSubmission(ctx context.Context, sub *model.TaskSubmission) error {
	touchTimestamps(&sub.CreatedAt, &sub.UpdatedAt)

	var exists int
	if err := s.db.GetContext(ctx, &exists,
		`SELECT COUNT(*) FROM task_submissions WHERE task_id = $1 AND worker_id = $2`,
		sub.TaskID, sub.WorkerID); err != nil {
		return fmt.Errorf("failed to check submission: %w", err)
	}
	if exists > 0 {
		return domain.ErrConflict
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO task_submissions (
			submission_id, task_id, worker_id, proof_text, proof_file_path,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.SubmissionID, sub.TaskID, sub.WorkerID, sub.ProofText, sub.ProofFilePath,
		sub.Status, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// ListSubmissions returns all submissions for a task.
func (s *Storage) ListSubmissions(ctx context.Context, taskID string) ([]model.TaskSubmission, error) {
	var subs []model.TaskSubmission
	err := s.db.SelectContext(ctx, &subs,
		`SELECT `+submissionColumns+`
		 FROM task_submissions
		 WHERE task_id = $1
		 ORDER BY created_at DESC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// GetSubmission fetches one submission.
func (s *Storage) GetSubmission(ctx context.Context, submissionID string) (*model.TaskSubmission, error) {
	var sub model.TaskSubmission
	err := s.db.GetContext(ctx, &sub,
		`SELECT `+submissionColumns+` FROM task_submissions WHERE submission_id = $1`,
		submissionID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &sub, nil
}

// DecideSubmission writes the terminal review decision exactly once.
// Repeating the same decision is a no-op; flipping raises
// ErrAlreadyReviewed. Approval fills a task slot and completes the task
// when the last slot fills, all in one transaction.
func (s *Storage) DecideSubmission(ctx context.Context, submissionID string, decision domain.SubmissionStatus, reviewerID, notes string) (*model.TaskSubmission, error) {
	var out model.TaskSubmission

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var sub model.TaskSubmission
		err := tx.GetContext(ctx, &sub,
			`SELECT `+submissionColumns+`
			 FROM task_submissions
			 WHERE submission_id = $1
			 FOR UPDATE`,
			submissionID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load submission: %w", err)
		}

		if sub.Status != string(domain.SubmissionPending) {
			if sub.Status == string(decision) {
				out = sub
				return nil
			}
			return domain.ErrAlreadyReviewed
		}

		var reviewNotes sql.NullString
		if notes != "" {
			reviewNotes = sql.NullString{String: notes, Valid: true}
		}

		err = tx.GetContext(ctx, &out,
			`UPDATE task_submissions
			 SET status = $1, reviewer_id = $2, reviewer_notes = $3,
			     reviewed_at = NOW(), updated_at = NOW()
			 WHERE submission_id = $4
			 RETURNING `+submissionColumns,
			string(decision), reviewerID, reviewNotes, submissionID,
		)
		if err != nil {
			return fmt.Errorf("failed to decide submission: %w", err)
		}

		if decision != domain.SubmissionApproved {
			return nil
		}

		// Fill a slot; the last slot completes the task.
		res, err := tx.ExecContext(ctx,
			`UPDATE tasks
			 SET completed_slots = completed_slots + 1,
			     status = CASE WHEN completed_slots + 1 >= slots THEN 'completed' ELSE status END,
			     updated_at = NOW()
			 WHERE task_id = $1 AND completed_slots < slots`,
			sub.TaskID,
		)
		if err != nil {
			return fmt.Errorf("failed to fill task slot: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return domain.ErrConflict
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// RateSubmission records the one-time post-approval rating and folds it
// into the worker's running average.
func (s *Storage) RateSubmission(ctx context.Context, submissionID string, rating float64) (*model.TaskSubmission, error) {
	var out model.TaskSubmission

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var sub model.TaskSubmission
		err := tx.GetContext(ctx, &sub,
			`SELECT `+submissionColumns+`
			 FROM task_submissions
			 WHERE submission_id = $1
			 FOR UPDATE`,
			submissionID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load submission: %w", err)
		}

		if sub.Status != string(domain.SubmissionApproved) {
			return domain.NewValidationError("submission", "rating requires an approved submission")
		}
		if sub.Rating.Valid {
			return domain.ErrAlreadyRated
		}

		err = tx.GetContext(ctx, &out,
			`UPDATE task_submissions
			 SET rating = $1, updated_at = NOW()
			 WHERE submission_id = $2
			 RETURNING `+submissionColumns,
			rating, submissionID,
		)
		if err != nil {
			return fmt.Errorf("failed to rate submission: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE profiles
			 SET rating = (
			 	SELECT AVG(rating) FROM task_submissions
			 	WHERE worker_id = $1 AND rating IS NOT NULL
			 ),
			 updated_at = NOW()
			 WHERE user_id = $1`,
			sub.WorkerID,
		)
		if err != nil {
			return fmt.Errorf("failed to update worker rating: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
