package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devcatalyst07/fitplan/internal/calendar"
	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/schedule"
	"github.com/devcatalyst07/fitplan/internal/ui"
)

// Model is the root BubbleTea model: a schedule browser with a task
// list, an optional Gantt strip, and a drill-in detail panel.
type Model struct {
	Plan   *plan.Plan
	Result *schedule.Result
	Keys   KeyMap

	cursor     int
	showDetail bool
	showGantt  bool
	detail     viewport.Model
	width      int
	height     int
	reloadErr  error

	gantt *ui.Renderer
}

// NewModel creates a browser model for a computed schedule.
func NewModel(p *plan.Plan, res *schedule.Result) Model {
	return Model{
		Plan:   p,
		Result: res,
		Keys:   DefaultKeyMap(),
		detail: viewport.New(80, 10),
		width:  80,
		height: 24,
		gantt:  &ui.Renderer{NoColor: true},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gantt.Width = msg.Width
		m.detail.Width = msg.Width - 4
		m.detail.Height = m.height / 2
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case MsgPlanReloaded:
		m.Plan = msg.Plan
		m.Result = msg.Result
		m.reloadErr = nil
		if m.cursor >= len(m.Result.Order) {
			m.cursor = max(0, len(m.Result.Order)-1)
		}
		if m.showDetail {
			m.setDetailContent()
		}
		return m, nil

	case MsgReloadFailed:
		m.reloadErr = msg.Err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Back):
		if m.showDetail {
			m.showDetail = false
		}
		return m, nil

	case key.Matches(msg, m.Keys.Enter):
		if len(m.Result.Order) > 0 {
			m.showDetail = true
			m.setDetailContent()
		}
		return m, nil

	case key.Matches(msg, m.Keys.Gantt):
		m.showGantt = !m.showGantt
		return m, nil

	case key.Matches(msg, m.Keys.Up):
		if m.showDetail {
			m.detail.ScrollUp(1)
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.Keys.Down):
		if m.showDetail {
			m.detail.ScrollDown(1)
			return m, nil
		}
		if m.cursor < len(m.Result.Order)-1 {
			m.cursor++
		}
		return m, nil
	}

	return m, nil
}

// SelectedTaskID returns the task ID under the cursor, or "".
func (m Model) SelectedTaskID() string {
	if m.cursor < 0 || m.cursor >= len(m.Result.Order) {
		return ""
	}
	return m.Result.Order[m.cursor]
}

// setDetailContent fills the viewport with the selected task's dates,
// dependencies, and body notes.
func (m *Model) setDetailContent() {
	id := m.SelectedTaskID()
	if id == "" {
		return
	}

	var sb strings.Builder
	dates := m.Result.Tasks[id]
	fmt.Fprintf(&sb, "start:  %s\n", calendar.Format(dates.Start))
	fmt.Fprintf(&sb, "end:    %s\n", calendar.Format(dates.End))
	fmt.Fprintf(&sb, "float:  %d working day(s)\n", m.Result.Slack[id])
	if m.Result.Critical(id) {
		sb.WriteString("on the critical path\n")
	}

	if t := m.Plan.Task(id); t != nil {
		if t.Trade != "" {
			fmt.Fprintf(&sb, "trade:  %s\n", t.Trade)
		}
		if len(t.Needs) > 0 {
			fmt.Fprintf(&sb, "needs:  %s\n", strings.Join(t.Needs, ", "))
		}
		if body := strings.TrimSpace(t.Body); body != "" {
			sb.WriteString("\n")
			sb.WriteString(body)
			sb.WriteString("\n")
		}
	}

	m.detail.SetContent(sb.String())
	m.detail.GotoTop()
}
