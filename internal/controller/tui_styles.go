package controller

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("6") // Cyan

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 0, 0, 2)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 0, 1, 2)

	accentStyle = lipgloss.NewStyle().Foreground(accentColor)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Width(8)
	aliasStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(accentColor).
			Bold(true)
)
