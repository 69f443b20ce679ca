// Package store persists computed schedules on behalf of the scheduling
// engine. The engine itself holds no state between invocations; this is
// the collaborator that keeps the last complete result per project,
// plus an envelope history for drift inspection. Writes are
// all-or-nothing: a schedule is never partially persisted.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no stored schedule exists for a project.
var ErrNotFound = errors.New("no stored schedule for project")

// StoredTask is one task's persisted date assignment.
type StoredTask struct {
	TaskID       string
	Title        string
	Trade        string
	Start        time.Time
	End          time.Time
	DurationDays int
	Critical     bool
}

// StoredSchedule is a complete persisted schedule for one project.
type StoredSchedule struct {
	Project      string
	Direction    string
	AnchorDate   time.Time
	TargetEnd    time.Time // zero when no target was committed
	ProjectStart time.Time
	ProjectEnd   time.Time
	AtRisk       bool
	RiskReason   string
	ComputedAt   time.Time
	Tasks        []StoredTask
}

// Envelope is one historical project-level computation record.
type Envelope struct {
	ProjectStart time.Time
	ProjectEnd   time.Time
	AtRisk       bool
	RiskReason   string
	ComputedAt   time.Time
}

// Store is the persistence contract the CLI works against.
type Store interface {
	// Save persists the whole schedule in one transaction, replacing
	// any previous schedule for the same project and appending an
	// envelope history record.
	Save(ctx context.Context, s *StoredSchedule) error

	// Load returns the stored schedule for a project, or ErrNotFound.
	Load(ctx context.Context, project string) (*StoredSchedule, error)

	// History returns up to limit envelope records for a project,
	// newest first.
	History(ctx context.Context, project string, limit int) ([]Envelope, error)

	Close() error
}
