package tui

import (
	"fmt"
	"strings"

	"todosync/internal/service"
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	switch m.route {
	case routeTasks:
		m.viewTasks(&b)
	default:
		m.viewForm(&b)
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m *Model) viewForm(b *strings.Builder) {
	title, other := "Log in", "sign up"
	if m.route == routeSignup {
		title, other = "Sign up", "log in"
	}
	b.WriteString(titleStyle.Render("todosync · " + title))
	b.WriteString("\n")
	for i := range m.fields {
		b.WriteString(m.fields[i].View())
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("tab next field • enter submit • ctrl+n %s • esc quit", other)))
}

func (m *Model) viewTasks(b *strings.Builder) {
	b.WriteString(titleStyle.Render(fmt.Sprintf("todosync · %d tasks", len(m.snap.Tasks))))
	b.WriteString("\n")
	b.WriteString(filterStyle.Render(fmt.Sprintf("status: %s   priority: %s", m.snap.Filter.Status, m.snap.Filter.Priority)))
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(m.snap.Visible) == 0 {
		b.WriteString(filterStyle.Render("no tasks found"))
		b.WriteString("\n")
	}
	for i, t := range m.snap.Visible {
		b.WriteString(renderTask(t, i == m.cursor))
		b.WriteString("\n")
	}

	help := "a add • space toggle • p priority • d delete • s status filter • f priority filter • r refresh • L logout • q quit"
	if m.adding {
		help = "enter save • esc cancel"
	}
	b.WriteString(helpStyle.Render(help))
}

func renderTask(t service.Task, selected bool) string {
	check := "[ ]"
	text := rowStyle.Render(t.Text)
	if t.Status == service.StatusCompleted {
		check = "[x]"
		text = completedStyle.Render(t.Text)
	}
	prio := priorityStyle(t.Priority).Render(fmt.Sprintf("%-6s", t.Priority))

	cursor := "  "
	if selected {
		cursor = "> "
	}
	line := fmt.Sprintf("%s%s %s %s", cursor, check, prio, text)
	if selected {
		return selectedRowStyle.Render(line)
	}
	return line
}

func (m *Model) viewStatus() string {
	var prefix string
	if m.pending > 0 {
		prefix = m.spinner.View() + " "
	}
	if m.err != nil {
		return prefix + errorStyle.Render("error: "+m.err.Error())
	}
	return prefix + statusStyle.Render(m.status)
}
