// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todosync/internal/service"
	"todosync/internal/store"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [{STATUS}] [{PRIORITY}]  {TEXT}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  [%s] [%s]  %s\n", num, task.Status, task.Priority, normalizeText(task.Text))
}

// FormatFilter prints the active filter, or nothing when both selectors are "all".
func FormatFilter(w io.Writer, f store.Filter) {
	if !f.IsActive() {
		return
	}
	fmt.Fprintf(w, "filter: status=%s priority=%s\n", f.Status, f.Priority)
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
