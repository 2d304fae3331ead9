package tui

import (
	"github.com/charmbracelet/lipgloss"

	"todosync/internal/service"
)

var (
	colorText    = lipgloss.Color("#cad3f5")
	colorMuted   = lipgloss.Color("#6e738d")
	colorAccent  = lipgloss.Color("#8aadf4")
	colorGreen   = lipgloss.Color("#a6da95")
	colorYellow  = lipgloss.Color("#eed49f")
	colorRed     = lipgloss.Color("#ed8796")
	colorSurface = lipgloss.Color("#363a4f")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			MarginBottom(1)

	filterStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorText)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSurface).
				Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)
)

var priorityStyles = map[service.Priority]lipgloss.Style{
	service.PriorityLow:    lipgloss.NewStyle().Foreground(colorGreen),
	service.PriorityMedium: lipgloss.NewStyle().Foreground(colorYellow),
	service.PriorityHigh:   lipgloss.NewStyle().Foreground(colorRed).Bold(true),
}

func priorityStyle(p service.Priority) lipgloss.Style {
	if s, ok := priorityStyles[p]; ok {
		return s
	}
	return rowStyle
}
