package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan — primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold — attention
	colorSuccess    = lipgloss.Color("#00E676") // Green — on track
	colorDanger     = lipgloss.Color("#FF5252") // Red — at risk / critical
	colorMuted      = lipgloss.Color("#636363") // Gray — de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray — normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white — primary text
	colorBlue       = lipgloss.Color("#5B8DEF") // Blue — non-critical bars
)

// Marker prepended to critical-path rows.
const criticalMarker = "▎"

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleRowCritical = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleOK = lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true)

	styleWarn = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleErr = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleRiskBanner = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorDanger).
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 2)

	styleBarCritical = lipgloss.NewStyle().
				Foreground(colorDanger)

	styleBarNormal = lipgloss.NewStyle().
			Foreground(colorBlue)
)
