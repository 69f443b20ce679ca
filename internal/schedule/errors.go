package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a scheduling request is malformed:
// a non-positive task duration, a missing anchor date, or an
// unrecognized direction. Match with errors.Is.
var ErrInvalidInput = errors.New("invalid scheduling input")

// InputError records which part of the request was malformed. It wraps
// ErrInvalidInput for errors.Is matching.
type InputError struct {
	TaskID string // empty for anchor-level problems
	Field  string
	Reason string
}

// Error returns a human-readable description with task context when
// available.
func (e *InputError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("task %s: %s: %s", e.TaskID, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidInput for use with errors.Is.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
