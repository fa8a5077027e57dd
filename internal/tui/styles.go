package tui

import "github.com/charmbracelet/lipgloss"

var (
	errorColor = lipgloss.Color("1")
	okColor    = lipgloss.Color("2")

	headerStyle = lipgloss.NewStyle().Bold(true)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Faint(true)

	inputErrStyle = inputStyle.BorderForeground(errorColor).Foreground(errorColor)
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	runningStyle  = lipgloss.NewStyle().Bold(true).Foreground(okColor)
)
