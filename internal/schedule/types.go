package schedule

import (
	"time"

	"github.com/devcatalyst07/fitplan/internal/dag"
)

// Direction selects which end of the project the anchor date pins.
type Direction string

const (
	// DirectionStart anchors the desired project start; dates are
	// propagated forward to the earliest feasible schedule.
	DirectionStart Direction = "start"
	// DirectionEnd anchors the required project end; dates are
	// propagated backward to the latest feasible schedule.
	DirectionEnd Direction = "end"
)

// ValidDirections is the set of recognized direction values.
var ValidDirections = map[Direction]bool{
	DirectionStart: true,
	DirectionEnd:   true,
}

// Anchor is the single fixed calendar date the whole schedule is pinned
// to, together with the direction of propagation.
type Anchor struct {
	Date      time.Time
	Direction Direction
}

// Options carries one complete scheduling request. Each call to Compute
// is a pure function of its Options; the engine holds no state between
// invocations.
type Options struct {
	Tasks  []dag.Task
	Edges  []dag.Edge
	Anchor Anchor

	// TargetEnd is a previously committed project end date, consulted
	// only for risk evaluation in forward mode. The zero value means no
	// target has been committed.
	TargetEnd time.Time

	// Now supplies the current date for backward-mode risk evaluation.
	// Nil defaults to time.Now; tests inject fixed clocks here.
	Now func() time.Time
}

// TaskDates is the computed assignment for a single task. Both dates
// fall on working days, End never precedes Start, and the working-day
// span from Start through End equals the task's duration.
type TaskDates struct {
	Start time.Time
	End   time.Time
}

// Result is a complete, internally consistent schedule for one project.
// It is only ever returned whole; a failed computation produces no
// per-task dates at all.
type Result struct {
	// Tasks maps task ID to its computed dates.
	Tasks map[string]TaskDates

	// ProjectStart and ProjectEnd are the envelope: the earliest start
	// and latest end across all tasks. For an empty task set both equal
	// the anchor date.
	ProjectStart time.Time
	ProjectEnd   time.Time

	AtRisk     bool
	RiskReason string

	// Order is the topological order the scheduler used, kept for
	// stable rendering downstream.
	Order []string

	// Slack maps task ID to its float in working days: how far the task
	// can slip without moving the project envelope. Zero slack marks
	// the critical path.
	Slack map[string]int

	// Dropped lists dependency edges discarded because they referenced
	// task IDs outside the task set. Surfaced for observability; never
	// an error.
	Dropped []dag.Edge
}

// Critical reports whether the task with the given ID has zero float.
func (r *Result) Critical(id string) bool {
	s, ok := r.Slack[id]
	return ok && s == 0
}
