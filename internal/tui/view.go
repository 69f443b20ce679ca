package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/devcatalyst07/fitplan/internal/calendar"
)

// View renders the full screen: status bar, task rows, optional Gantt
// strip or detail panel, and the key footer.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.statusBarView())

	if m.showDetail {
		sections = append(sections, m.detailView())
	} else {
		sections = append(sections, m.listView())
		if m.showGantt {
			sections = append(sections, m.gantt.Gantt(m.Result))
		}
	}

	if m.reloadErr != nil {
		sections = append(sections, styleStatusRisk.Render("reload failed: "+m.reloadErr.Error()))
	}

	sections = append(sections, m.footerView())
	return strings.Join(sections, "\n")
}

func (m Model) statusBarView() string {
	name := m.Plan.Manifest.Project.Name
	envelope := fmt.Sprintf("%s → %s",
		calendar.Format(m.Result.ProjectStart), calendar.Format(m.Result.ProjectEnd))

	status := styleStatusOK.Render("on track")
	if m.Result.AtRisk {
		status = styleStatusRisk.Render("AT RISK: " + m.Result.RiskReason)
	}

	line := fmt.Sprintf("%s  %s  %s",
		styleStatusLabel.Render(name), envelope, status)
	return styleStatusBar.Width(m.width).Render(line)
}

func (m Model) listView() string {
	if len(m.Result.Order) == 0 {
		return styleDetailDim.Render("  (no tasks)")
	}

	var sb strings.Builder
	for i, id := range m.Result.Order {
		dates := m.Result.Tasks[id]

		title := ""
		if t := m.Plan.Task(id); t != nil {
			title = t.Title
		}

		indicator := " "
		rowStyle := styleRowNormal
		if m.Result.Critical(id) {
			rowStyle = styleRowCritical
		}
		if i == m.cursor {
			indicator = styleSelectionIndicator.Render(selectionIndicator)
			rowStyle = styleRowSelected
		}

		row := fmt.Sprintf("%-16s %-28s %s → %s  float %d",
			id, title, calendar.Format(dates.Start), calendar.Format(dates.End),
			m.Result.Slack[id])
		fmt.Fprintf(&sb, "%s %s\n", indicator, rowStyle.Render(row))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) detailView() string {
	id := m.SelectedTaskID()
	title := id
	if t := m.Plan.Task(id); t != nil && t.Title != "" {
		title = fmt.Sprintf("%s — %s", id, t.Title)
	}

	header := styleDetailTitle.Render(title)
	return styleDetailBorder.Render(header + "\n" + m.detail.View())
}

func (m Model) footerView() string {
	bindings := []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Enter, m.Keys.Gantt, m.Keys.Quit}
	if m.showDetail {
		bindings = []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Back, m.Keys.Quit}
	}

	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		parts = append(parts,
			styleFooterKey.Render(help.Key)+
				styleFooterSep.Render(":")+
				styleFooterDesc.Render(help.Desc))
	}
	line := strings.Join(parts, styleFooterSep.Render("  "))
	return styleFooter.Width(m.width).Render(line)
}
