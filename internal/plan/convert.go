package plan

import (
	"fmt"
	"time"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/dag"
	"github.com/devcatalyst07/fitplan/internal/schedule"
)

// ScheduleOptions converts a parsed plan into one scheduling request.
// Malformed dependency refs and dates fail here; unknown dependency
// targets pass through as edges the graph builder drops and reports.
// Now may be nil, in which case the scheduler falls back to time.Now.
func (p *Plan) ScheduleOptions(now func() time.Time) (schedule.Options, error) {
	anchor, err := calendar.Parse(p.Manifest.Schedule.AnchorDate)
	if err != nil {
		return schedule.Options{}, fmt.Errorf("%w: schedule.anchor_date %q", ErrBadDate, p.Manifest.Schedule.AnchorDate)
	}

	opts := schedule.Options{
		Anchor: schedule.Anchor{
			Date:      anchor,
			Direction: schedule.Direction(p.Manifest.Schedule.Direction),
		},
		Now: now,
	}

	if te := p.Manifest.Schedule.TargetEnd; te != "" {
		target, err := calendar.Parse(te)
		if err != nil {
			return schedule.Options{}, fmt.Errorf("%w: schedule.target_end %q", ErrBadDate, te)
		}
		opts.TargetEnd = target
	}

	for _, t := range p.Tasks {
		opts.Tasks = append(opts.Tasks, dag.Task{
			ID:           t.ID,
			Title:        t.Title,
			Trade:        t.Trade,
			Priority:     t.Priority,
			DurationDays: t.DurationDays,
		})
		for _, ref := range t.Needs {
			dep, err := ParseDepRef(ref)
			if err != nil {
				return schedule.Options{}, fmt.Errorf("task %s: needs %q: %w", t.ID, ref, err)
			}
			opts.Edges = append(opts.Edges, dag.Edge{
				Pred:    dep.ID,
				Succ:    t.ID,
				Type:    dep.Type,
				LagDays: dep.LagDays,
			})
		}
	}

	return opts, nil
}

// Task returns the task spec with the given ID, or nil if absent.
func (p *Plan) Task(id string) *TaskSpec {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}
