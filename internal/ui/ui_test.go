package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/dag"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/schedule"
	"github.com/devcatalyst07/fitplan/internal/store"
)

func testPlan() *plan.Plan {
	return &plan.Plan{
		Manifest: plan.Manifest{
			Project: plan.Info{Name: "suite-400"},
		},
		Tasks: []plan.TaskSpec{
			{ID: "demo", Title: "Demolition", Trade: "demolition", DurationDays: 3},
			{ID: "frame", Title: "Framing", Trade: "carpentry", DurationDays: 2},
		},
	}
}

func testResult() *schedule.Result {
	return &schedule.Result{
		Tasks: map[string]schedule.TaskDates{
			"demo":  {Start: calendar.Date(2024, time.January, 1), End: calendar.Date(2024, time.January, 3)},
			"frame": {Start: calendar.Date(2024, time.January, 4), End: calendar.Date(2024, time.January, 5)},
		},
		ProjectStart: calendar.Date(2024, time.January, 1),
		ProjectEnd:   calendar.Date(2024, time.January, 5),
		Order:        []string{"demo", "frame"},
		Slack:        map[string]int{"demo": 0, "frame": 0},
	}
}

func TestScheduleTable(t *testing.T) {
	t.Parallel()
	r := New(true)

	out := r.ScheduleTable(testPlan(), testResult())

	for _, want := range []string{
		"suite-400",
		"2024-01-01 → 2024-01-05",
		"demo", "Demolition", "demolition",
		"frame", "Framing", "carpentry",
		"2024-01-04",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScheduleTable_DroppedEdges(t *testing.T) {
	t.Parallel()
	r := New(true)

	clean := r.ScheduleTable(testPlan(), testResult())
	if strings.Contains(clean, "dropped dependency") {
		t.Errorf("no dropped edges, yet output mentions them:\n%s", clean)
	}

	res := testResult()
	res.Dropped = []dag.Edge{{Pred: "permits", Succ: "frame", Type: dag.FS}}
	out := r.ScheduleTable(testPlan(), res)
	if !strings.Contains(out, "permits") || !strings.Contains(out, "dropped dependency") {
		t.Errorf("dropped edge not surfaced:\n%s", out)
	}
}

func TestRiskBanner(t *testing.T) {
	t.Parallel()
	r := New(true)

	res := testResult()
	if got := r.RiskBanner(res); !strings.Contains(got, "on track") {
		t.Errorf("RiskBanner (ok) = %q", got)
	}

	res.AtRisk = true
	res.RiskReason = "required start date is in the past"
	got := r.RiskBanner(res)
	if !strings.Contains(got, "AT RISK") || !strings.Contains(got, res.RiskReason) {
		t.Errorf("RiskBanner (at risk) = %q", got)
	}
}

func TestValidationReport(t *testing.T) {
	t.Parallel()
	r := New(true)

	t.Run("clean", func(t *testing.T) {
		out := r.ValidationReport(nil, nil)
		if !strings.Contains(out, "✓ valid") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("warnings only", func(t *testing.T) {
		warnings := []plan.Warning{{TaskID: "frame", SourceFile: "frame.md", Ref: "permits"}}
		out := r.ValidationReport(warnings, nil)
		if !strings.Contains(out, "permits") {
			t.Errorf("warning ref missing: %q", out)
		}
		if !strings.Contains(out, "1 warning(s)") {
			t.Errorf("verdict missing: %q", out)
		}
	})
}

func TestStoredSchedule(t *testing.T) {
	t.Parallel()
	r := New(true)

	s := &store.StoredSchedule{
		Project:      "suite-400",
		ProjectStart: calendar.Date(2024, time.January, 1),
		ProjectEnd:   calendar.Date(2024, time.January, 5),
		ComputedAt:   time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC),
		AtRisk:       true,
		RiskReason:   "computed duration exceeds available time",
		Tasks: []store.StoredTask{
			{TaskID: "demo", Title: "Demolition", Trade: "demolition",
				Start:        calendar.Date(2024, time.January, 1),
				End:          calendar.Date(2024, time.January, 3),
				DurationDays: 3, Critical: true},
		},
	}

	out := r.StoredSchedule(s)
	for _, want := range []string{"suite-400", "demo", "2024-01-03", "AT RISK"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()
	r := New(true)

	if got := r.History(nil); !strings.Contains(got, "no history") {
		t.Errorf("empty history = %q", got)
	}

	envs := []store.Envelope{
		{
			ProjectStart: calendar.Date(2024, time.January, 1),
			ProjectEnd:   calendar.Date(2024, time.January, 12),
			ComputedAt:   time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC),
			AtRisk:       true,
			RiskReason:   "computed duration exceeds available time",
		},
		{
			ProjectStart: calendar.Date(2024, time.January, 1),
			ProjectEnd:   calendar.Date(2024, time.January, 10),
			ComputedAt:   time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC),
		},
	}
	out := r.History(envs)
	if !strings.Contains(out, "2024-01-12") || !strings.Contains(out, "2024-01-10") {
		t.Errorf("envelope dates missing:\n%s", out)
	}
	if !strings.Contains(out, "at risk") || !strings.Contains(out, "on track") {
		t.Errorf("status column wrong:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a very long task title indeed", 10, "a very lo…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
