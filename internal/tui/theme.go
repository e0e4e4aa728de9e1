package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)

	itemStyle     = lipgloss.NewStyle().Foreground(colorText).PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Padding(0, 1)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError).Padding(0, 1)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 2)
	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Background(colorSurface0).
				Bold(true).
				Padding(0, 2)
)
