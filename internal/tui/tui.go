package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devcatalyst07/fitplan/internal/plan"
	"github.com/devcatalyst07/fitplan/internal/schedule"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program browsing the given schedule.
// The program uses the alternate screen buffer for a clean TUI experience.
func NewProgram(p *plan.Plan, res *schedule.Result, opts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(NewModel(p, res), allOpts...)
}
