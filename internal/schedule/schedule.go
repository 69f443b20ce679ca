// Package schedule computes calendar dates for a project's tasks from
// their durations, typed precedence edges, and a single anchor date,
// under a Monday–Friday working calendar. It contains the forward and
// backward schedulers, slack derivation, and the risk evaluator.
//
// The computation is synchronous and single-threaded per invocation:
// it either returns a complete schedule or an error, never a partial
// one. Distinct projects may be scheduled concurrently by independent
// callers since Compute shares no state between invocations.
package schedule

import (
	"time"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/dag"
)

// Compute runs one full scheduling pass: validate inputs, build the
// dependency graph, order it topologically, assign every task its
// dates, derive the project envelope and per-task slack, and evaluate
// risk. A cycle among valid edges yields a *dag.CycleError before any
// dates are assigned; malformed input yields an *InputError. An empty
// task set is valid and produces an envelope collapsed onto the anchor.
func Compute(opts Options) (*Result, error) {
	if opts.Anchor.Date.IsZero() {
		return nil, &InputError{Field: "anchor.date", Reason: "missing"}
	}
	if !ValidDirections[opts.Anchor.Direction] {
		return nil, &InputError{Field: "anchor.direction", Reason: "must be \"start\" or \"end\""}
	}
	for _, t := range opts.Tasks {
		if t.ID == "" {
			return nil, &InputError{Field: "id", Reason: "missing"}
		}
		if t.DurationDays <= 0 {
			return nil, &InputError{TaskID: t.ID, Field: "duration_days", Reason: "must be a positive count of working days"}
		}
	}

	anchor := calendar.Normalize(opts.Anchor.Date)

	g, err := dag.Build(opts.Tasks, opts.Edges)
	if err != nil {
		return nil, &InputError{Field: "tasks", Reason: err.Error()}
	}

	res := &Result{
		Tasks:        make(map[string]TaskDates, g.Len()),
		ProjectStart: anchor,
		ProjectEnd:   anchor,
		Slack:        make(map[string]int, g.Len()),
		Dropped:      g.Dropped(),
	}
	if g.Len() == 0 {
		return res, nil
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	res.Order = order

	switch opts.Anchor.Direction {
	case DirectionStart:
		res.Tasks = forwardPass(g, order, anchor)
	case DirectionEnd:
		res.Tasks = backwardPass(g, order, anchor)
	}

	envelope(res)
	deriveSlack(g, order, opts.Anchor.Direction, res)
	evaluateRisk(opts, res)

	return res, nil
}

// envelope derives the project bounds as the min start and max end
// across all assigned task dates.
func envelope(res *Result) {
	first := true
	for _, d := range res.Tasks {
		if first {
			res.ProjectStart, res.ProjectEnd = d.Start, d.End
			first = false
			continue
		}
		if d.Start.Before(res.ProjectStart) {
			res.ProjectStart = d.Start
		}
		if d.End.After(res.ProjectEnd) {
			res.ProjectEnd = d.End
		}
	}
}

// deriveSlack runs the opposite scheduling pass anchored at the far end
// of the computed envelope and measures, per task, how many working
// days separate the earliest and latest feasible starts. Zero slack
// marks the critical path.
func deriveSlack(g *dag.Graph, order []string, dir Direction, res *Result) {
	var earliest, latest map[string]TaskDates
	switch dir {
	case DirectionStart:
		earliest = res.Tasks
		latest = backwardPass(g, order, res.ProjectEnd)
	case DirectionEnd:
		latest = res.Tasks
		earliest = forwardPass(g, order, res.ProjectStart)
	}
	for id := range res.Tasks {
		span := calendar.WorkingDaySpan(earliest[id].Start, latest[id].Start)
		if span > 0 {
			span--
		}
		res.Slack[id] = span
	}
}

// evaluateRisk flags the schedule when it conflicts with a real-world
// constraint. Backward mode compares the computed project start against
// today; forward mode compares the computed project end against a
// previously committed target. An empty task set is never at risk.
func evaluateRisk(opts Options, res *Result) {
	if len(res.Tasks) == 0 {
		return
	}
	switch opts.Anchor.Direction {
	case DirectionEnd:
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		today := calendar.Normalize(now())
		if res.ProjectStart.Before(today) {
			res.AtRisk = true
			res.RiskReason = "required start date is in the past"
		}
	case DirectionStart:
		if !opts.TargetEnd.IsZero() && res.ProjectEnd.After(calendar.Normalize(opts.TargetEnd)) {
			res.AtRisk = true
			res.RiskReason = "computed duration exceeds available time"
		}
	}
}
