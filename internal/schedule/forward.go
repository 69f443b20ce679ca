package schedule

import (
	"time"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/dag"
)

// forwardPass assigns each task the earliest feasible dates given the
// anchor as the desired project start. Tasks are visited in topological
// order, so every predecessor's dates are final before a successor is
// computed.
//
// The candidate start is the maximum of the anchor and every incoming
// constraint: for FS, one working day after the predecessor's end; for
// SS, the predecessor's start. A positive lag pushes the constraint the
// same number of working days later. A candidate landing on a weekend
// advances to the next working day, which also covers a weekend anchor.
func forwardPass(g *dag.Graph, order []string, anchor time.Time) map[string]TaskDates {
	dates := make(map[string]TaskDates, len(order))
	for _, id := range order {
		start := anchor
		for _, e := range g.Predecessors(id) {
			pred := dates[e.Pred]
			var constraint time.Time
			switch e.Type {
			case dag.FS:
				constraint = calendar.AddWorkingDays(pred.End, 1+e.LagDays)
			case dag.SS:
				constraint = calendar.AddWorkingDays(pred.Start, e.LagDays)
			}
			if constraint.After(start) {
				start = constraint
			}
		}
		if !calendar.IsWorkingDay(start) {
			start = calendar.NextWorkingDay(start)
		}
		end := calendar.AddWorkingDays(start, g.Task(id).DurationDays-1)
		dates[id] = TaskDates{Start: start, End: end}
	}
	return dates
}
