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

const interviewColumns = `interview_id, worker_id, employer_id, scheduled_date, mode,
	meeting_link, location, status, result, feedback, notes, created_at, updated_at`

// ScheduleParams carries a validated schedule/reschedule request.
// Exactly one of MeetingLink/Location is set, matching Mode.
type ScheduleParams struct {
	WorkerID      string
	EmployerID    string
	ScheduledDate time.Time
	Mode          domain.InterviewMode
	MeetingLink   string
	Location      string
	Notes         string
	Actor         string
}

// ScheduleResult reports the stored record, whether an existing
// scheduled record was updated in place, and the transition fired on a
// first-time schedule.
type ScheduleResult struct {
	Interview   *model.WorkerInterview
	Rescheduled bool
	Transition  *domain.Transition
}

// ResultOutcome reports a completed interview and the status transition
// applied with it.
type ResultOutcome struct {
	Interview  *model.WorkerInterview
	Transition *domain.Transition
}

// ScheduleInterview schedules or reschedules. If a scheduled record
// exists for the worker it is updated in place, so at most one scheduled
// row per worker ever exists; otherwise a row is inserted and the worker
// advances via interview_scheduled, atomically with the insert.
func (s *Storage) ScheduleInterview(ctx context.Context, p ScheduleParams) (*ScheduleResult, error) {
	out := &ScheduleResult{}

	var link, location sql.NullString
	if p.MeetingLink != "" {
		link = sql.NullString{String: p.MeetingLink, Valid: true}
	}
	if p.Location != "" {
		location = sql.NullString{String: p.Location, Valid: true}
	}

	var notes sql.NullString
	if p.Notes != "" {
		notes = sql.NullString{String: p.Notes, Valid: true}
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var existing model.WorkerInterview
		err := tx.GetContext(ctx, &existing,
			`SELECT `+interviewColumns+`
			 FROM worker_interviews
			 WHERE worker_id = $1 AND status = 'scheduled'
			 FOR UPDATE`,
			p.WorkerID,
		)

		switch {
		case err == nil:
			// Reschedule: overwrite the active record, clearing the field
			// belonging to the previous mode.
			var row model.WorkerInterview
			err = tx.GetContext(ctx, &row,
				`UPDATE worker_interviews
				 SET employer_id = $1, scheduled_date = $2, mode = $3,
				     meeting_link = $4, location = $5, notes = $6,
				     status = 'scheduled', updated_at = NOW()
				 WHERE interview_id = $7
				 RETURNING `+interviewColumns,
				p.EmployerID, p.ScheduledDate, string(p.Mode),
				link, location, notes,
				existing.InterviewID,
			)
			if err != nil {
				return fmt.Errorf("failed to reschedule interview: %w", err)
			}
			out.Interview = &row
			out.Rescheduled = true

		case errors.Is(err, sql.ErrNoRows):
			var row model.WorkerInterview
			err = tx.GetContext(ctx, &row,
				`INSERT INTO worker_interviews (
					interview_id, worker_id, employer_id, scheduled_date, mode,
					meeting_link, location, status, notes, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, 'scheduled', $8, NOW(), NOW())
				RETURNING `+interviewColumns,
				uuid.New().String(), p.WorkerID, p.EmployerID, p.ScheduledDate, string(p.Mode),
				link, location, notes,
			)
			if err != nil {
				return fmt.Errorf("failed to insert interview: %w", err)
			}
			out.Interview = &row

			tr, trErr := s.applyStatusTransitionTx(ctx, tx, p.WorkerID, domain.TriggerInterviewScheduled, p.Actor)
			if trErr != nil {
				return trErr
			}
			if tr.Changed {
				out.Transition = tr
			}

		default:
			return fmt.Errorf("failed to load scheduled interview: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetInterview fetches one interview record.
func (s *Storage) GetInterview(ctx context.Context, interviewID string) (*model.WorkerInterview, error) {
	var row model.WorkerInterview
	err := s.db.GetContext(ctx, &row,
		`SELECT `+interviewColumns+` FROM worker_interviews WHERE interview_id = $1`,
		interviewID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return &row, nil
}

// ListInterviews returns a worker's interview records, newest first.
func (s *Storage) ListInterviews(ctx context.Context, workerID string) ([]model.WorkerInterview, error) {
	var rows []model.WorkerInterview
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+interviewColumns+`
		 FROM worker_interviews
		 WHERE worker_id = $1
		 ORDER BY created_at DESC`,
		workerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return rows, nil
}

// GetScheduledInterview returns the worker's single active interview,
// or ErrNotFound.
func (s *Storage) GetScheduledInterview(ctx context.Context, workerID string) (*model.WorkerInterview, error) {
	var row model.WorkerInterview
	err := s.db.GetContext(ctx, &row,
		`SELECT `+interviewColumns+`
		 FROM worker_interviews
		 WHERE worker_id = $1 AND status = 'scheduled'`,
		workerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get scheduled interview: %w", err)
	}
	return &row, nil
}

// CompleteInterview records the result of a scheduled interview and
// applies the matching worker transition in the same transaction, so a
// worker can never end up completed+selected but not promoted.
func (s *Storage) CompleteInterview(ctx context.Context, interviewID string, result domain.InterviewResult, feedback, actor string) (*ResultOutcome, error) {
	out := &ResultOutcome{}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var row model.WorkerInterview
		err := tx.GetContext(ctx, &row,
			`SELECT `+interviewColumns+`
			 FROM worker_interviews
			 WHERE interview_id = $1
			 FOR UPDATE`,
			interviewID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to load interview: %w", err)
		}

		if row.Status != string(domain.InterviewScheduled) {
			return domain.NewValidationError("interview", "result requires a scheduled interview")
		}

		var fb sql.NullString
		if feedback != "" {
			fb = sql.NullString{String: feedback, Valid: true}
		}

		err = tx.GetContext(ctx, &row,
			`UPDATE worker_interviews
			 SET status = 'completed', result = $1, feedback = $2, updated_at = NOW()
			 WHERE interview_id = $3
			 RETURNING `+interviewColumns,
			string(result), fb, interviewID,
		)
		if err != nil {
			return fmt.Errorf("failed to complete interview: %w", err)
		}
		out.Interview = &row

		if trigger, ok := domain.StatusTriggerForResult(result); ok {
			tr, trErr := s.applyStatusTransitionTx(ctx, tx, row.WorkerID, trigger, actor)
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
