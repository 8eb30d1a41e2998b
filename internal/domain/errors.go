package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyReviewed is returned when a terminal submission decision
	// would be flipped by a second decide call.
	ErrAlreadyReviewed = errors.New("submission already reviewed")

	// ErrAlreadyRated is returned when a second rating is recorded for
	// the same submission.
	ErrAlreadyRated = errors.New("submission already rated")

	// ErrProofRequired is returned when a payment completion is attempted
	// without an attached transaction proof.
	ErrProofRequired = errors.New("transaction proof required before completion")

	// ErrConflict is returned when a concurrent modification is detected;
	// callers should refresh and retry.
	ErrConflict = errors.New("conflicting concurrent modification")
)

// ValidationError reports malformed or semantically invalid input. It is
// recoverable and surfaced to the caller immediately, before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IllegalTransitionError reports a status machine guard failure. The
// mutation must be blocked entirely, never partially applied.
type IllegalTransitionError struct {
	Current WorkerStatus
	Trigger StatusTrigger
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: trigger %q not accepted from state %q", e.Trigger, e.Current)
}

// DependencyError wraps failures of an external collaborator (database,
// broker, cache). Operations failing this way are safely retryable.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// RetryableError wraps transient failures that should trigger a requeue
// on the event consumer side.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError wraps err as retryable.
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
