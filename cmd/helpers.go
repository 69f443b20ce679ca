package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/config"
	"github.com/devcatalyst07/fitplan/internal/dag"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/schedule"
	"github.com/devcatalyst07/fitplan/internal/store"
	"github.com/devcatalyst07/fitplan/internal/telemetry"
	"github.com/devcatalyst07/fitplan/internal/ui"
)

// loadValidPlan loads the plan directory and runs validation. Warnings
// are returned alongside; any validation error fails the load.
func loadValidPlan(dir string) (*plan.Plan, []plan.Warning, error) {
	p, err := plan.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	warnings, errs := plan.Validate(p)
	if len(errs) > 0 {
		return nil, warnings, fmt.Errorf("plan %s: %d validation error(s), first: %w", dir, len(errs), &errs[0])
	}
	return p, warnings, nil
}

// computeSchedule converts a validated plan into a scheduling request
// and runs the engine.
func computeSchedule(p *plan.Plan) (*schedule.Result, error) {
	opts, err := p.ScheduleOptions(nil)
	if err != nil {
		return nil, err
	}
	return schedule.Compute(opts)
}

// openStore opens the schedule database named by the config.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	return store.NewSQLiteStore(ctx, cfg.DBPath)
}

// openTelemetry opens the JSONL emitter when a path is configured.
// A nil emitter is a valid no-op.
func openTelemetry(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.TelemetryPath)
}

// newRenderer builds the terminal renderer from config.
func newRenderer(cfg config.Config) *ui.Renderer {
	return ui.New(cfg.NoColor)
}

// storedFromResult converts a computed schedule into its persisted form.
func storedFromResult(p *plan.Plan, res *schedule.Result, now time.Time) *store.StoredSchedule {
	s := &store.StoredSchedule{
		Project:      p.Manifest.Project.Name,
		Direction:    p.Manifest.Schedule.Direction,
		ProjectStart: res.ProjectStart,
		ProjectEnd:   res.ProjectEnd,
		AtRisk:       res.AtRisk,
		RiskReason:   res.RiskReason,
		ComputedAt:   now,
	}

	// Both dates were already checked by plan.Validate, so a parse
	// failure here cannot happen; the zero value is kept if it does.
	if anchor, err := calendar.Parse(p.Manifest.Schedule.AnchorDate); err == nil {
		s.AnchorDate = anchor
	}
	if te := p.Manifest.Schedule.TargetEnd; te != "" {
		if target, err := calendar.Parse(te); err == nil {
			s.TargetEnd = target
		}
	}

	for _, id := range res.Order {
		dates := res.Tasks[id]
		st := store.StoredTask{
			TaskID:   id,
			Start:    dates.Start,
			End:      dates.End,
			Critical: res.Critical(id),
		}
		if t := p.Task(id); t != nil {
			st.Title = t.Title
			st.Trade = t.Trade
			st.DurationDays = t.DurationDays
		}
		s.Tasks = append(s.Tasks, st)
	}

	return s
}

// emitComputeFailure records why a computation could not produce a
// schedule. Cycles get their own event kind carrying the implicated
// task IDs.
func emitComputeFailure(em *telemetry.Emitter, project string, err error) {
	var cyc *dag.CycleError
	if !errors.As(err, &cyc) {
		return
	}
	_ = em.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      telemetry.KindCycleDetected,
		Project:   project,
		Data:      map[string]any{"tasks": cyc.TaskIDs},
	})
}

// emitScheduleEvents records one computation's telemetry trail.
func emitScheduleEvents(em *telemetry.Emitter, project string, res *schedule.Result) {
	now := time.Now()
	for _, e := range res.Dropped {
		_ = em.Emit(telemetry.Event{
			Timestamp: now,
			Kind:      telemetry.KindDanglingDep,
			Project:   project,
			TaskID:    e.Succ,
			Data:      map[string]string{"ref": e.Pred},
		})
	}
	if res.AtRisk {
		_ = em.Emit(telemetry.Event{
			Timestamp: now,
			Kind:      telemetry.KindRiskFlagged,
			Project:   project,
			Data:      map[string]string{"reason": res.RiskReason},
		})
	}
	_ = em.Emit(telemetry.Event{
		Timestamp: now,
		Kind:      telemetry.KindScheduleDone,
		Project:   project,
		Data: map[string]string{
			"project_start": res.ProjectStart.Format("2006-01-02"),
			"project_end":   res.ProjectEnd.Format("2006-01-02"),
		},
	})
}
