// Package errors defines the shared error taxonomy for the taskgate library.
package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the taskgate library

var (
	// ErrStopped indicates that a submission was rejected because the
	// controller has been stopped
	ErrStopped = errors.New("concurrency controller has been stopped")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsRejected returns true if the error indicates a submission that was
// refused before the task ran (the task function was never invoked)
func IsRejected(err error) bool {
	return errors.Is(err, ErrStopped)
}

// ValidationError describes a configuration value that failed validation.
// It wraps ErrInvalidConfiguration so callers can match the whole class
// with errors.Is.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// TaskError reports that a task function failed. The task id is carried for
// diagnostics only; the underlying cause is available via Unwrap.
type TaskError struct {
	ID  string
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %v", e.ID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// RetryError reports that every attempt of a retried task failed.
// Attempts is the total number of invocations, including the first.
type RetryError struct {
	ID       string
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("task %s failed after %d attempts: %v", e.ID, e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error {
	return e.Err
}
