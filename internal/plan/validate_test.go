package plan

import (
	"errors"
	"testing"
)

func manifest(anchor, direction, target string) Manifest {
	return Manifest{
		Project: Info{Name: "test"},
		Schedule: ScheduleConfig{
			AnchorDate: anchor,
			Direction:  direction,
			TargetEnd:  target,
		},
	}
}

func validTask(id string) TaskSpec {
	return TaskSpec{ID: id, Title: id, DurationDays: 1, SourceFile: id + ".md"}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("clean plan", func(t *testing.T) {
		t.Parallel()
		p := &Plan{
			Manifest: manifest("2024-01-01", "start", ""),
			Tasks:    []TaskSpec{validTask("a"), validTask("b")},
		}
		warnings, errs := Validate(p)
		if len(errs) != 0 {
			t.Errorf("errs = %v, want none", errs)
		}
		if len(warnings) != 0 {
			t.Errorf("warnings = %v, want none", warnings)
		}
	})

	t.Run("unknown dep is a warning not an error", func(t *testing.T) {
		t.Parallel()
		a := validTask("a")
		a.Needs = []string{"ghost"}
		p := &Plan{
			Manifest: manifest("2024-01-01", "start", ""),
			Tasks:    []TaskSpec{a},
		}
		warnings, errs := Validate(p)
		if len(errs) != 0 {
			t.Errorf("errs = %v, want none", errs)
		}
		if len(warnings) != 1 || warnings[0].Ref != "ghost" {
			t.Errorf("warnings = %v, want one naming ghost", warnings)
		}
	})

	errCases := []struct {
		name     string
		plan     *Plan
		category ValidationCategory
		sentinel error
	}{
		{
			name: "missing project name",
			plan: &Plan{
				Manifest: Manifest{Schedule: ScheduleConfig{AnchorDate: "2024-01-01", Direction: "start"}},
			},
			category: ValCatMissingField,
			sentinel: ErrMissingField,
		},
		{
			name:     "missing anchor",
			plan:     &Plan{Manifest: manifest("", "start", "")},
			category: ValCatMissingField,
			sentinel: ErrMissingField,
		},
		{
			name:     "bad anchor date",
			plan:     &Plan{Manifest: manifest("01/01/2024", "start", "")},
			category: ValCatBadDate,
			sentinel: ErrBadDate,
		},
		{
			name:     "bad direction",
			plan:     &Plan{Manifest: manifest("2024-01-01", "sideways", "")},
			category: ValCatBadDirection,
			sentinel: ErrBadDirection,
		},
		{
			name:     "bad target end",
			plan:     &Plan{Manifest: manifest("2024-01-01", "start", "soon")},
			category: ValCatBadDate,
			sentinel: ErrBadDate,
		},
		{
			name: "duplicate task id",
			plan: &Plan{
				Manifest: manifest("2024-01-01", "start", ""),
				Tasks:    []TaskSpec{validTask("a"), validTask("a")},
			},
			category: ValCatDuplicateID,
			sentinel: ErrDuplicateID,
		},
		{
			name: "zero duration",
			plan: &Plan{
				Manifest: manifest("2024-01-01", "start", ""),
				Tasks:    []TaskSpec{{ID: "a", Title: "a", DurationDays: 0, SourceFile: "a.md"}},
			},
			category: ValCatBadDuration,
			sentinel: ErrBadDuration,
		},
		{
			name: "missing title",
			plan: &Plan{
				Manifest: manifest("2024-01-01", "start", ""),
				Tasks:    []TaskSpec{{ID: "a", DurationDays: 1, SourceFile: "a.md"}},
			},
			category: ValCatMissingField,
			sentinel: ErrMissingField,
		},
		{
			name: "malformed needs ref",
			plan: &Plan{
				Manifest: manifest("2024-01-01", "start", ""),
				Tasks: []TaskSpec{{
					ID: "a", Title: "a", DurationDays: 1, SourceFile: "a.md",
					Needs: []string{"b:nope"},
				}, validTask("b")},
			},
			category: ValCatBadDepRef,
			sentinel: ErrBadDepRef,
		},
	}

	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, errs := Validate(tt.plan)
			if len(errs) == 0 {
				t.Fatal("Validate found no errors")
			}
			found := false
			for i := range errs {
				if errs[i].Category == tt.category && errors.Is(&errs[i], tt.sentinel) {
					found = true
				}
			}
			if !found {
				t.Errorf("no %s error in %v", tt.category, errs)
			}
		})
	}
}
