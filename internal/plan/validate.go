package plan

import (
	"fmt"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/schedule"
)

// Validate checks a plan for structural correctness: required fields,
// unique IDs, parseable dates and dependency references, positive
// durations. It returns warnings separately from errors: a needs entry
// naming an unknown task is a warning (the scheduler drops the edge),
// never a failure. Cycle detection is not done here; it surfaces from
// the scheduler before any dates are assigned.
func Validate(p *Plan) ([]Warning, []ValidationError) {
	var warnings []Warning
	var errs []ValidationError

	if p.Manifest.Project.Name == "" {
		errs = append(errs, ValidationError{
			Category:   ValCatMissingField,
			SourceFile: "project.toml",
			Field:      "project.name",
			Err:        fmt.Errorf("%w: project.name", ErrMissingField),
		})
	}

	sched := p.Manifest.Schedule
	if sched.AnchorDate == "" {
		errs = append(errs, ValidationError{
			Category:   ValCatMissingField,
			SourceFile: "project.toml",
			Field:      "schedule.anchor_date",
			Err:        fmt.Errorf("%w: schedule.anchor_date", ErrMissingField),
		})
	} else if _, err := calendar.Parse(sched.AnchorDate); err != nil {
		errs = append(errs, ValidationError{
			Category:   ValCatBadDate,
			SourceFile: "project.toml",
			Field:      "schedule.anchor_date",
			Err:        fmt.Errorf("%w: %q", ErrBadDate, sched.AnchorDate),
		})
	}
	if !schedule.ValidDirections[schedule.Direction(sched.Direction)] {
		errs = append(errs, ValidationError{
			Category:   ValCatBadDirection,
			SourceFile: "project.toml",
			Field:      "schedule.direction",
			Err:        fmt.Errorf("%w: %q (want \"start\" or \"end\")", ErrBadDirection, sched.Direction),
		})
	}
	if sched.TargetEnd != "" {
		if _, err := calendar.Parse(sched.TargetEnd); err != nil {
			errs = append(errs, ValidationError{
				Category:   ValCatBadDate,
				SourceFile: "project.toml",
				Field:      "schedule.target_end",
				Err:        fmt.Errorf("%w: %q", ErrBadDate, sched.TargetEnd),
			})
		}
	}

	seen := make(map[string]string) // id → source file
	ids := make(map[string]bool)

	for _, t := range p.Tasks {
		if t.ID == "" {
			errs = append(errs, ValidationError{
				Category:   ValCatMissingField,
				SourceFile: t.SourceFile,
				Field:      "id",
				Err:        fmt.Errorf("%w: id", ErrMissingField),
			})
			continue
		}
		if t.Title == "" {
			errs = append(errs, ValidationError{
				Category:   ValCatMissingField,
				TaskID:     t.ID,
				SourceFile: t.SourceFile,
				Field:      "title",
				Err:        fmt.Errorf("%w: title", ErrMissingField),
			})
		}
		if t.DurationDays <= 0 {
			errs = append(errs, ValidationError{
				Category:   ValCatBadDuration,
				TaskID:     t.ID,
				SourceFile: t.SourceFile,
				Field:      "duration_days",
				Err:        fmt.Errorf("%w: got %d", ErrBadDuration, t.DurationDays),
			})
		}

		if prev, ok := seen[t.ID]; ok {
			errs = append(errs, ValidationError{
				Category:   ValCatDuplicateID,
				TaskID:     t.ID,
				SourceFile: t.SourceFile,
				Err:        fmt.Errorf("%w: %q already defined in %s", ErrDuplicateID, t.ID, prev),
			})
		}
		seen[t.ID] = t.SourceFile
		ids[t.ID] = true
	}

	// Dependency references: malformed refs are errors, unknown targets
	// are warnings.
	for _, t := range p.Tasks {
		for _, ref := range t.Needs {
			dep, err := ParseDepRef(ref)
			if err != nil {
				errs = append(errs, ValidationError{
					Category:   ValCatBadDepRef,
					TaskID:     t.ID,
					SourceFile: t.SourceFile,
					Field:      "needs",
					Err:        err,
				})
				continue
			}
			if !ids[dep.ID] {
				warnings = append(warnings, Warning{
					TaskID:     t.ID,
					SourceFile: t.SourceFile,
					Ref:        dep.ID,
				})
			}
		}
	}

	return warnings, errs
}
