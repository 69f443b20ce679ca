package schedule

import (
	"time"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/dag"
)

// backwardPass assigns each task the latest feasible dates given the
// anchor as the required project end. Tasks are visited in reverse
// topological order, so every successor's dates are final before its
// predecessor is computed, and end dates are fixed before starts.
//
// The candidate end is the minimum of the anchor and every outgoing
// constraint: for FS, one working day before the successor's start; for
// SS, the successor's start. A positive lag pulls the constraint the
// same number of working days earlier. A candidate landing on a weekend
// retreats to the previous working day, which also covers a weekend
// anchor. A task with no successors ends exactly at the anchor.
func backwardPass(g *dag.Graph, order []string, anchor time.Time) map[string]TaskDates {
	dates := make(map[string]TaskDates, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		end := anchor
		for _, e := range g.Successors(id) {
			succ := dates[e.Succ]
			var constraint time.Time
			switch e.Type {
			case dag.FS:
				constraint = calendar.SubtractWorkingDays(succ.Start, 1+e.LagDays)
			case dag.SS:
				constraint = calendar.SubtractWorkingDays(succ.Start, e.LagDays)
			}
			if constraint.Before(end) {
				end = constraint
			}
		}
		if !calendar.IsWorkingDay(end) {
			end = calendar.PrevWorkingDay(end)
		}
		start := calendar.SubtractWorkingDays(end, g.Task(id).DurationDays-1)
		dates[id] = TaskDates{Start: start, End: end}
	}
	return dates
}
