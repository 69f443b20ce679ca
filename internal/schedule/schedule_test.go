package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/dag"
)

func date(y int, m time.Month, d int) time.Time {
	return calendar.Date(y, m, d)
}

// fixedNow returns a clock pinned to the given date.
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func task(id string, duration int) dag.Task {
	return dag.Task{ID: id, DurationDays: duration}
}

func fs(pred, succ string) dag.Edge {
	return dag.Edge{Pred: pred, Succ: succ, Type: dag.FS}
}

func ss(pred, succ string) dag.Edge {
	return dag.Edge{Pred: pred, Succ: succ, Type: dag.SS}
}

func mustCompute(t *testing.T, opts Options) *Result {
	t.Helper()
	res, err := Compute(opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return res
}

func wantDates(t *testing.T, res *Result, id string, start, end time.Time) {
	t.Helper()
	d, ok := res.Tasks[id]
	if !ok {
		t.Fatalf("no dates computed for task %s", id)
	}
	if !d.Start.Equal(start) || !d.End.Equal(end) {
		t.Errorf("task %s = %s..%s, want %s..%s", id,
			calendar.Format(d.Start), calendar.Format(d.End),
			calendar.Format(start), calendar.Format(end))
	}
}

func TestForwardFinishToStart(t *testing.T) {
	t.Parallel()

	// Anchor Monday 2024-01-01. A: 3 days, no deps. B: 2 days, FS on A.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 3), task("b", 2)},
		Edges:  []dag.Edge{fs("a", "b")},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	})

	wantDates(t, res, "a", date(2024, time.January, 1), date(2024, time.January, 3))
	wantDates(t, res, "b", date(2024, time.January, 4), date(2024, time.January, 5))
	if !res.ProjectStart.Equal(date(2024, time.January, 1)) {
		t.Errorf("ProjectStart = %s, want 2024-01-01", calendar.Format(res.ProjectStart))
	}
	if !res.ProjectEnd.Equal(date(2024, time.January, 5)) {
		t.Errorf("ProjectEnd = %s, want 2024-01-05", calendar.Format(res.ProjectEnd))
	}
}

func TestForwardStartToStart(t *testing.T) {
	t.Parallel()

	// Same shape but B follows A start-to-start: B begins the same day
	// A does, not after A finishes.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 3), task("b", 2)},
		Edges:  []dag.Edge{ss("a", "b")},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	})

	wantDates(t, res, "b", date(2024, time.January, 1), date(2024, time.January, 2))
}

func TestForwardWeekendAnchor(t *testing.T) {
	t.Parallel()

	// Anchor Saturday 2024-01-06: effective start is Monday the 8th.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 1)},
		Anchor: Anchor{Date: date(2024, time.January, 6), Direction: DirectionStart},
	})
	wantDates(t, res, "a", date(2024, time.January, 8), date(2024, time.January, 8))
}

func TestForwardMultiplePredecessorsTakesMax(t *testing.T) {
	t.Parallel()

	// c waits for both a (ends Wed 3rd) and b (ends Mon 1st); the later
	// FS constraint wins.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 3), task("b", 1), task("c", 1)},
		Edges:  []dag.Edge{fs("a", "c"), fs("b", "c")},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	})
	wantDates(t, res, "c", date(2024, time.January, 4), date(2024, time.January, 4))
}

func TestForwardLagPushesConstraint(t *testing.T) {
	t.Parallel()

	// FS with a 2-working-day lag: a ends Mon 1st, b may start Thu 4th.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 1), task("b", 1)},
		Edges:  []dag.Edge{{Pred: "a", Succ: "b", Type: dag.FS, LagDays: 2}},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	})
	wantDates(t, res, "b", date(2024, time.January, 4), date(2024, time.January, 4))
}

func TestBackwardFinishToStart(t *testing.T) {
	t.Parallel()

	// Anchor Friday 2024-01-12 as required end. X: 2 days, no
	// successors. Y feeds X via FS, so Y must end one working day
	// before X starts.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("x", 2), task("y", 1)},
		Edges:  []dag.Edge{fs("y", "x")},
		Anchor: Anchor{Date: date(2024, time.January, 12), Direction: DirectionEnd},
		Now:    fixedNow(date(2024, time.January, 1)),
	})

	wantDates(t, res, "x", date(2024, time.January, 11), date(2024, time.January, 12))
	wantDates(t, res, "y", date(2024, time.January, 10), date(2024, time.January, 10))
}

func TestBackwardWeekendAnchor(t *testing.T) {
	t.Parallel()

	// Anchor Sunday 2024-01-07: effective end retreats to Friday the 5th.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 1)},
		Anchor: Anchor{Date: date(2024, time.January, 7), Direction: DirectionEnd},
		Now:    fixedNow(date(2024, time.January, 1)),
	})
	wantDates(t, res, "a", date(2024, time.January, 5), date(2024, time.January, 5))
}

func TestBackwardStartToStart(t *testing.T) {
	t.Parallel()

	// SS successor constraint: predecessor's end may not pass the
	// successor's start, with no one-day separation.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 2), task("b", 3)},
		Edges:  []dag.Edge{ss("a", "b")},
		Anchor: Anchor{Date: date(2024, time.January, 12), Direction: DirectionEnd},
		Now:    fixedNow(date(2024, time.January, 1)),
	})

	// b ends at the anchor: Wed 10th .. Fri 12th. a's end floor is b's
	// start, Wed 10th; a spans Tue 9th .. Wed 10th.
	wantDates(t, res, "b", date(2024, time.January, 10), date(2024, time.January, 12))
	wantDates(t, res, "a", date(2024, time.January, 9), date(2024, time.January, 10))
}

func TestScheduleInvariants(t *testing.T) {
	t.Parallel()

	tasks := []dag.Task{
		task("demo", 2), task("frame", 5), task("electrical", 4),
		task("plumbing", 3), task("lining", 3), task("paint", 2), task("fitoff", 4),
	}
	edges := []dag.Edge{
		fs("demo", "frame"),
		fs("frame", "electrical"),
		ss("electrical", "plumbing"),
		fs("electrical", "lining"), fs("plumbing", "lining"),
		fs("lining", "paint"),
		fs("paint", "fitoff"), {Pred: "frame", Succ: "fitoff", Type: dag.FS, LagDays: 3},
	}

	for _, dir := range []Direction{DirectionStart, DirectionEnd} {
		t.Run(string(dir), func(t *testing.T) {
			t.Parallel()
			res := mustCompute(t, Options{
				Tasks:  tasks,
				Edges:  edges,
				Anchor: Anchor{Date: date(2024, time.March, 4), Direction: dir},
				Now:    fixedNow(date(2024, time.January, 1)),
			})

			byID := make(map[string]dag.Task)
			for _, tk := range tasks {
				byID[tk.ID] = tk
			}

			for id, d := range res.Tasks {
				if !calendar.IsWorkingDay(d.Start) || !calendar.IsWorkingDay(d.End) {
					t.Errorf("task %s has weekend dates %s..%s", id,
						calendar.Format(d.Start), calendar.Format(d.End))
				}
				if d.End.Before(d.Start) {
					t.Errorf("task %s ends before it starts", id)
				}
				if span := calendar.WorkingDaySpan(d.Start, d.End); span != byID[id].DurationDays {
					t.Errorf("task %s spans %d working days, want %d", id, span, byID[id].DurationDays)
				}
				if d.Start.Before(res.ProjectStart) || d.End.After(res.ProjectEnd) {
					t.Errorf("task %s escapes the project envelope", id)
				}
			}

			for _, e := range edges {
				pred, succ := res.Tasks[e.Pred], res.Tasks[e.Succ]
				switch e.Type {
				case dag.FS:
					floor := calendar.AddWorkingDays(pred.End, 1)
					if succ.Start.Before(floor) {
						t.Errorf("FS violated: %s starts %s, before %s", e.Succ,
							calendar.Format(succ.Start), calendar.Format(floor))
					}
				case dag.SS:
					if succ.Start.Before(pred.Start) {
						t.Errorf("SS violated: %s starts before %s", e.Succ, e.Pred)
					}
				}
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	t.Parallel()

	opts := Options{
		Tasks:  []dag.Task{task("a", 3), task("b", 2), task("c", 4)},
		Edges:  []dag.Edge{fs("a", "b"), ss("a", "c")},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	}
	first := mustCompute(t, opts)
	second := mustCompute(t, opts)

	for id, d1 := range first.Tasks {
		d2 := second.Tasks[id]
		if !d1.Start.Equal(d2.Start) || !d1.End.Equal(d2.End) {
			t.Errorf("task %s differs between runs", id)
		}
	}
	if !first.ProjectStart.Equal(second.ProjectStart) || !first.ProjectEnd.Equal(second.ProjectEnd) {
		t.Error("envelope differs between runs")
	}
}

func TestCycleFailsWhole(t *testing.T) {
	t.Parallel()

	res, err := Compute(Options{
		Tasks:  []dag.Task{task("a", 1), task("b", 1), task("c", 1)},
		Edges:  []dag.Edge{fs("a", "b"), fs("b", "c"), fs("c", "a")},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	})
	if !errors.Is(err, dag.ErrCycle) {
		t.Fatalf("got %v, want dag.ErrCycle", err)
	}
	if res != nil {
		t.Error("partial result returned alongside cycle error")
	}
}

func TestEmptyTaskSet(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.January, 6) // a Saturday, kept as-is
	res := mustCompute(t, Options{
		Anchor: Anchor{Date: anchor, Direction: DirectionEnd},
		Now:    fixedNow(date(2030, time.January, 1)),
	})
	if len(res.Tasks) != 0 {
		t.Errorf("Tasks = %v, want none", res.Tasks)
	}
	if !res.ProjectStart.Equal(anchor) || !res.ProjectEnd.Equal(anchor) {
		t.Errorf("envelope = %s..%s, want collapsed on anchor",
			calendar.Format(res.ProjectStart), calendar.Format(res.ProjectEnd))
	}
	if res.AtRisk {
		t.Error("empty schedule flagged at risk")
	}
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
	}{
		{
			name: "zero duration",
			opts: Options{
				Tasks:  []dag.Task{task("a", 0)},
				Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
			},
		},
		{
			name: "negative duration",
			opts: Options{
				Tasks:  []dag.Task{task("a", -2)},
				Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
			},
		},
		{
			name: "missing anchor",
			opts: Options{
				Tasks: []dag.Task{task("a", 1)},
			},
		},
		{
			name: "bad direction",
			opts: Options{
				Tasks:  []dag.Task{task("a", 1)},
				Anchor: Anchor{Date: date(2024, time.January, 1), Direction: "sideways"},
			},
		},
		{
			name: "duplicate task id",
			opts: Options{
				Tasks:  []dag.Task{task("a", 1), task("a", 2)},
				Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
			},
		},
		{
			name: "empty task id",
			opts: Options{
				Tasks:  []dag.Task{task("", 1)},
				Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Compute(tt.opts)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
			if res != nil {
				t.Error("result returned alongside input error")
			}
		})
	}
}

func TestDanglingDependencyDropped(t *testing.T) {
	t.Parallel()

	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 1)},
		Edges:  []dag.Edge{fs("ghost", "a")},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	})
	wantDates(t, res, "a", date(2024, time.January, 1), date(2024, time.January, 1))
	if len(res.Dropped) != 1 {
		t.Errorf("Dropped = %v, want the ghost edge surfaced", res.Dropped)
	}
}

func TestBackwardRisk(t *testing.T) {
	t.Parallel()

	t.Run("start in the past", func(t *testing.T) {
		t.Parallel()
		// 10 working days of work ending Fri 2024-01-12 must start
		// Mon 2024-01-01; from the 8th that is already gone.
		res := mustCompute(t, Options{
			Tasks:  []dag.Task{task("a", 10)},
			Anchor: Anchor{Date: date(2024, time.January, 12), Direction: DirectionEnd},
			Now:    fixedNow(date(2024, time.January, 8)),
		})
		if !res.AtRisk {
			t.Fatal("schedule not flagged at risk")
		}
		if res.RiskReason != "required start date is in the past" {
			t.Errorf("RiskReason = %q", res.RiskReason)
		}
	})

	t.Run("start still ahead", func(t *testing.T) {
		t.Parallel()
		res := mustCompute(t, Options{
			Tasks:  []dag.Task{task("a", 2)},
			Anchor: Anchor{Date: date(2024, time.January, 12), Direction: DirectionEnd},
			Now:    fixedNow(date(2024, time.January, 8)),
		})
		if res.AtRisk {
			t.Errorf("flagged at risk: %s", res.RiskReason)
		}
	})
}

func TestForwardRisk(t *testing.T) {
	t.Parallel()

	tasks := []dag.Task{task("a", 5)}
	anchor := Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart}

	t.Run("overruns target", func(t *testing.T) {
		t.Parallel()
		res := mustCompute(t, Options{
			Tasks:     tasks,
			Anchor:    anchor,
			TargetEnd: date(2024, time.January, 3),
		})
		if !res.AtRisk {
			t.Fatal("schedule not flagged at risk")
		}
		if res.RiskReason != "computed duration exceeds available time" {
			t.Errorf("RiskReason = %q", res.RiskReason)
		}
	})

	t.Run("fits target", func(t *testing.T) {
		t.Parallel()
		res := mustCompute(t, Options{
			Tasks:     tasks,
			Anchor:    anchor,
			TargetEnd: date(2024, time.January, 5),
		})
		if res.AtRisk {
			t.Errorf("flagged at risk: %s", res.RiskReason)
		}
	})

	t.Run("no target means no risk", func(t *testing.T) {
		t.Parallel()
		res := mustCompute(t, Options{Tasks: tasks, Anchor: anchor})
		if res.AtRisk {
			t.Errorf("flagged at risk: %s", res.RiskReason)
		}
	})
}

func TestSlackMarksCriticalPath(t *testing.T) {
	t.Parallel()

	// a -> b is the 5-day critical chain; "side" (1 day) floats.
	res := mustCompute(t, Options{
		Tasks:  []dag.Task{task("a", 3), task("b", 2), task("side", 1)},
		Edges:  []dag.Edge{fs("a", "b")},
		Anchor: Anchor{Date: date(2024, time.January, 1), Direction: DirectionStart},
	})

	if !res.Critical("a") || !res.Critical("b") {
		t.Errorf("critical chain not flagged: slack = %v", res.Slack)
	}
	if res.Critical("side") {
		t.Errorf("floating task flagged critical: slack = %v", res.Slack)
	}
	if res.Slack["side"] != 4 {
		t.Errorf("Slack[side] = %d, want 4", res.Slack["side"])
	}
}
