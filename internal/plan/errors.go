package plan

import "errors"

// Sentinel errors for plan loading and validation.
var (
	// ErrNoManifest indicates no project.toml was found in the plan directory.
	ErrNoManifest = errors.New("project.toml not found in plan directory")
	// ErrMissingField indicates a required field (e.g. id, anchor_date) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateID indicates two or more tasks share the same ID.
	ErrDuplicateID = errors.New("duplicate task ID")
	// ErrBadDepRef indicates a needs entry that does not parse.
	ErrBadDepRef = errors.New("malformed dependency reference")
	// ErrBadDate indicates a date field that is not YYYY-MM-DD.
	ErrBadDate = errors.New("malformed date")
	// ErrBadDirection indicates a direction other than "start" or "end".
	ErrBadDirection = errors.New("invalid schedule direction")
	// ErrBadDuration indicates a non-positive task duration.
	ErrBadDuration = errors.New("duration must be a positive count of working days")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatMissingField ValidationCategory = "missing_field"
	ValCatDuplicateID  ValidationCategory = "duplicate_id"
	ValCatBadDepRef    ValidationCategory = "bad_dep_ref"
	ValCatBadDate      ValidationCategory = "bad_date"
	ValCatBadDirection ValidationCategory = "bad_direction"
	ValCatBadDuration  ValidationCategory = "bad_duration"
)

// ValidationError records a validation problem with source context.
type ValidationError struct {
	Category   ValidationCategory
	TaskID     string
	SourceFile string
	Field      string
	Err        error
}

// Error returns a human-readable string including source file and task context.
func (e *ValidationError) Error() string {
	if e.TaskID != "" {
		return e.SourceFile + ": task " + e.TaskID + ": " + e.Err.Error()
	}
	return e.SourceFile + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Warning is a recoverable data-quality condition: the plan still
// schedules, but the condition is worth surfacing. Today the only kind
// is a needs entry naming a task that does not exist; the scheduler
// drops such edges rather than failing.
type Warning struct {
	TaskID     string
	SourceFile string
	Ref        string
}

// String renders the warning for terminal output.
func (w Warning) String() string {
	return w.SourceFile + ": task " + w.TaskID + ": needs unknown task " + w.Ref + " (dropped)"
}
