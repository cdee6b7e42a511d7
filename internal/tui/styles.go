package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7D56F4")
	accentColor  = lipgloss.Color("#FF79C6")
	dimColor     = lipgloss.Color("#6272A4")
	textColor    = lipgloss.Color("#F8F8F2")
	successColor = lipgloss.Color("#50FA7B")
	errorColor   = lipgloss.Color("#FF5555")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	readyStyle = statusStyle.
			Foreground(successColor)

	failedStyle = statusStyle.
			Foreground(errorColor)

	messageStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	buttonStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 2)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(dimColor).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)

	containerStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
