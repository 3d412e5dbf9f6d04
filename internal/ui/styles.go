package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	codeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	redStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	blueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	wordStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)

	markedStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			Foreground(lipgloss.Color("46"))

	timerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	screenStyle = lipgloss.NewStyle().Padding(1, 2)
)

func teamStyle(t string) lipgloss.Style {
	if t == "red" {
		return redStyle
	}
	return blueStyle
}
