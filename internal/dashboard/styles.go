package dashboard

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")
	successColor = lipgloss.Color("42")
	failedColor  = lipgloss.Color("196")
	mutedColor   = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingLeft(1).
			PaddingRight(1).
			MarginBottom(1)

	statusRunningStyle  = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	statusSucceededStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusFailedStyle   = lipgloss.NewStyle().Foreground(failedColor).Bold(true)

	logLineStyle = lipgloss.NewStyle().PaddingLeft(2)
	footerStyle  = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
)
