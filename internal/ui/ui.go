// Package ui renders computed schedules, validation reports, and
// envelope history for the terminal. All output goes through a Renderer
// so color can be disabled in one place.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/schedule"
	"github.com/devcatalyst07/fitplan/internal/store"
)

// Renderer turns schedule results into terminal output.
type Renderer struct {
	// NoColor strips all styling; output becomes plain aligned text.
	NoColor bool

	// Width is the available terminal width in columns. Zero means 80.
	Width int
}

func New(noColor bool) *Renderer {
	return &Renderer{NoColor: noColor}
}

// sty applies a lipgloss style unless color is disabled.
func (r *Renderer) sty(st lipgloss.Style, s string) string {
	if r.NoColor {
		return s
	}
	return st.Render(s)
}

func (r *Renderer) width() int {
	if r.Width <= 0 {
		return 80
	}
	return r.Width
}

// ScheduleTable renders the computed dates for every task, in topological
// order, with critical-path rows marked.
func (r *Renderer) ScheduleTable(p *plan.Plan, res *schedule.Result) string {
	var sb strings.Builder

	sb.WriteString(r.sty(styleTitle, p.Manifest.Project.Name))
	fmt.Fprintf(&sb, "  %s\n", r.sty(styleDim, fmt.Sprintf("%s → %s",
		calendar.Format(res.ProjectStart), calendar.Format(res.ProjectEnd))))

	header := fmt.Sprintf("  %-16s %-28s %-12s %-10s %-10s %4s %5s",
		"TASK", "TITLE", "TRADE", "START", "END", "DUR", "FLOAT")
	sb.WriteString(r.sty(styleHeader, header))
	sb.WriteByte('\n')

	for _, id := range res.Order {
		dates := res.Tasks[id]
		title, trade, dur := "", "", 0
		if t := p.Task(id); t != nil {
			title, trade, dur = t.Title, t.Trade, t.DurationDays
		}

		marker := "  "
		rowStyle := styleRowNormal
		if res.Critical(id) {
			marker = r.sty(styleRowCritical, criticalMarker) + " "
			rowStyle = styleRowCritical
		}

		row := fmt.Sprintf("%-16s %-28s %-12s %-10s %-10s %4d %5d",
			id, truncate(title, 28), trade,
			calendar.Format(dates.Start), calendar.Format(dates.End),
			dur, res.Slack[id])
		sb.WriteString(marker)
		sb.WriteString(r.sty(rowStyle, row))
		sb.WriteByte('\n')
	}

	if len(res.Dropped) > 0 {
		for _, e := range res.Dropped {
			fmt.Fprintf(&sb, "%s\n", r.sty(styleDim,
				fmt.Sprintf("  dropped dependency: %s → %s (unknown task)", e.Pred, e.Succ)))
		}
	}

	return sb.String()
}

// RiskBanner renders a boxed warning when the schedule is at risk, or an
// on-track line otherwise.
func (r *Renderer) RiskBanner(res *schedule.Result) string {
	if !res.AtRisk {
		return r.sty(styleOK, "✓ on track") + "\n"
	}
	msg := "⚠ AT RISK: " + res.RiskReason
	if r.NoColor {
		return msg + "\n"
	}
	return styleRiskBanner.Render(msg) + "\n"
}

// ValidationReport renders validation errors and dangling-dependency
// warnings. Errors first, then warnings, then a one-line verdict.
func (r *Renderer) ValidationReport(warnings []plan.Warning, errs []plan.ValidationError) string {
	var sb strings.Builder

	for _, e := range errs {
		fmt.Fprintf(&sb, "%s %s\n", r.sty(styleErr, "✗"), e.Error())
	}
	for _, w := range warnings {
		fmt.Fprintf(&sb, "%s %s\n", r.sty(styleWarn, "⚠"), w.String())
	}

	switch {
	case len(errs) > 0:
		fmt.Fprintf(&sb, "%s\n", r.sty(styleErr, fmt.Sprintf("✗ %d error(s)", len(errs))))
	case len(warnings) > 0:
		fmt.Fprintf(&sb, "%s\n", r.sty(styleWarn, fmt.Sprintf("✓ valid with %d warning(s)", len(warnings))))
	default:
		fmt.Fprintf(&sb, "%s\n", r.sty(styleOK, "✓ valid"))
	}

	return sb.String()
}

// StoredSchedule renders a previously persisted schedule for the show
// command.
func (r *Renderer) StoredSchedule(s *store.StoredSchedule) string {
	var sb strings.Builder

	sb.WriteString(r.sty(styleTitle, s.Project))
	fmt.Fprintf(&sb, "  %s\n", r.sty(styleDim, fmt.Sprintf("%s → %s, computed %s",
		calendar.Format(s.ProjectStart), calendar.Format(s.ProjectEnd),
		s.ComputedAt.Format("2006-01-02 15:04"))))

	header := fmt.Sprintf("  %-16s %-28s %-12s %-10s %-10s %4s",
		"TASK", "TITLE", "TRADE", "START", "END", "DUR")
	sb.WriteString(r.sty(styleHeader, header))
	sb.WriteByte('\n')

	for _, t := range s.Tasks {
		marker := "  "
		rowStyle := styleRowNormal
		if t.Critical {
			marker = r.sty(styleRowCritical, criticalMarker) + " "
			rowStyle = styleRowCritical
		}
		row := fmt.Sprintf("%-16s %-28s %-12s %-10s %-10s %4d",
			t.TaskID, truncate(t.Title, 28), t.Trade,
			calendar.Format(t.Start), calendar.Format(t.End), t.DurationDays)
		sb.WriteString(marker)
		sb.WriteString(r.sty(rowStyle, row))
		sb.WriteByte('\n')
	}

	if s.AtRisk {
		fmt.Fprintf(&sb, "%s\n", r.sty(styleErr, "⚠ AT RISK: "+s.RiskReason))
	}

	return sb.String()
}

// History renders envelope history records, newest first.
func (r *Renderer) History(envs []store.Envelope) string {
	if len(envs) == 0 {
		return r.sty(styleDim, "(no history)") + "\n"
	}

	var sb strings.Builder
	header := fmt.Sprintf("%-17s %-10s %-10s %s", "COMPUTED", "START", "END", "STATUS")
	sb.WriteString(r.sty(styleHeader, header))
	sb.WriteByte('\n')

	for _, e := range envs {
		status := r.sty(styleOK, "on track")
		if e.AtRisk {
			status = r.sty(styleErr, "at risk: "+e.RiskReason)
		}
		fmt.Fprintf(&sb, "%-17s %-10s %-10s %s\n",
			e.ComputedAt.Format("2006-01-02 15:04"),
			calendar.Format(e.ProjectStart), calendar.Format(e.ProjectEnd), status)
	}

	return sb.String()
}

// sortedTaskIDs returns the result's task IDs in alphabetical order,
// used when no topological order is available.
func sortedTaskIDs(res *schedule.Result) []string {
	ids := make([]string, 0, len(res.Tasks))
	for id := range res.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
