package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initStyles.
var (
	panelStyle     lipgloss.Style
	titleStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	valueStyle     lipgloss.Style
	barStyle       lipgloss.Style
	cpuStyle       lipgloss.Style
	memStyle       lipgloss.Style
	statusRunStyle lipgloss.Style
	statusOKStyle  lipgloss.Style
	statusBadStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// again because the theme is chosen after package initialization.
func initStyles() {
	plain := lipgloss.NewStyle()
	if ui.GetCurrentTheme().Name == "none" {
		panelStyle = plain.Border(lipgloss.NormalBorder()).Padding(0, 1)
		titleStyle = plain.Bold(true)
		dimStyle, valueStyle, barStyle = plain, plain, plain
		cpuStyle, memStyle = plain, plain
		statusRunStyle, statusOKStyle, statusBadStyle = plain, plain, plain
		return
	}

	accent := lipgloss.Color("#4488FF")
	dim := lipgloss.Color("#666666")
	panelStyle = plain.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1)
	titleStyle = plain.Bold(true).Foreground(accent)
	dimStyle = plain.Foreground(dim)
	valueStyle = plain.Bold(true).Foreground(accent)
	barStyle = plain.Foreground(accent)
	cpuStyle = plain.Foreground(accent)
	memStyle = plain.Foreground(lipgloss.Color("#e0af68"))
	statusRunStyle = plain.Bold(true).Foreground(lipgloss.Color("#9ece6a"))
	statusOKStyle = plain.Bold(true).Foreground(accent)
	statusBadStyle = plain.Bold(true).Foreground(lipgloss.Color("#FF4444"))
}
