package ui

import (
	"fmt"
	"strings"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/schedule"
)

// Bar glyphs for the working-day strip.
const (
	barCell   = "█"
	trackCell = "·"
)

// Gantt renders a working-day bar strip for every task. Each column is
// one working day of the project envelope; weekend days never appear.
// Critical-path bars are drawn in the risk color.
func (r *Renderer) Gantt(res *schedule.Result) string {
	if len(res.Tasks) == 0 {
		return ""
	}

	span := calendar.WorkingDaySpan(res.ProjectStart, res.ProjectEnd)
	if span <= 0 {
		return ""
	}

	const labelWidth = 18
	maxBar := r.width() - labelWidth - 2
	if maxBar < 1 {
		maxBar = 1
	}

	// scale maps working-day offsets onto available columns when the
	// project is wider than the terminal.
	scale := func(days int) int {
		if span <= maxBar {
			return days
		}
		cols := days * maxBar / span
		if cols < 1 && days > 0 {
			cols = 1
		}
		return cols
	}

	order := res.Order
	if len(order) == 0 {
		order = sortedTaskIDs(res)
	}

	var sb strings.Builder
	for _, id := range order {
		dates, ok := res.Tasks[id]
		if !ok {
			continue
		}

		lead := calendar.WorkingDaySpan(res.ProjectStart, dates.Start) - 1
		if lead < 0 {
			lead = 0
		}
		length := calendar.WorkingDaySpan(dates.Start, dates.End)
		if length < 1 {
			length = 1
		}

		leadCols := scale(lead)
		barCols := scale(length)
		if barCols < 1 {
			barCols = 1
		}
		tailCols := scale(span) - leadCols - barCols
		if tailCols < 0 {
			tailCols = 0
		}

		barStyle := styleBarNormal
		if res.Critical(id) {
			barStyle = styleBarCritical
		}

		fmt.Fprintf(&sb, "%-*s %s%s%s\n",
			labelWidth, truncate(id, labelWidth),
			r.sty(styleDim, strings.Repeat(trackCell, leadCols)),
			r.sty(barStyle, strings.Repeat(barCell, barCols)),
			r.sty(styleDim, strings.Repeat(trackCell, tailCols)))
	}

	return sb.String()
}
