package store

import (
	"fmt"
	"strings"

	"todosync/internal/service"
)

// All disables a filter selector.
const All = "all"

// StatusFilter is "all" or a service.Status.
type StatusFilter string

// PriorityFilter is "all" or a service.Priority.
type PriorityFilter string

var (
	statusCycle   = []StatusFilter{All, StatusFilter(service.StatusPending), StatusFilter(service.StatusCompleted)}
	priorityCycle = []PriorityFilter{All, PriorityFilter(service.PriorityLow), PriorityFilter(service.PriorityMedium), PriorityFilter(service.PriorityHigh)}
)

// ParseStatusFilter parses "all", "pending" or "completed". Empty means all.
func ParseStatusFilter(s string) (StatusFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == All {
		return All, nil
	}
	st, err := service.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("invalid status filter: %s", s)
	}
	return StatusFilter(st), nil
}

// ParsePriorityFilter parses "all", "low", "medium" or "high". Empty means all.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == All {
		return All, nil
	}
	p, err := service.ParsePriority(s)
	if err != nil {
		return "", fmt.Errorf("invalid priority filter: %s", s)
	}
	return PriorityFilter(p), nil
}

// Next cycles all -> pending -> completed -> all.
func (f StatusFilter) Next() StatusFilter {
	return nextIn(statusCycle, f)
}

// Next cycles all -> low -> medium -> high -> all.
func (f PriorityFilter) Next() PriorityFilter {
	return nextIn(priorityCycle, f)
}

func nextIn[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// Filter is the view-only filtering state.
type Filter struct {
	Status   StatusFilter
	Priority PriorityFilter
}

// NewFilter returns a filter that shows everything.
func NewFilter() Filter {
	return Filter{Status: All, Priority: All}
}

// IsActive returns true if either selector narrows the view.
func (f Filter) IsActive() bool {
	return (f.Status != All && f.Status != "") || (f.Priority != All && f.Priority != "")
}

// Matches returns true if the task passes both selectors.
func (f Filter) Matches(t service.Task) bool {
	if f.Status != All && f.Status != "" && string(t.Status) != string(f.Status) {
		return false
	}
	if f.Priority != All && f.Priority != "" && string(t.Priority) != string(f.Priority) {
		return false
	}
	return true
}

// Apply returns the matching tasks in their original relative order.
// The input slice is never modified.
func (f Filter) Apply(tasks []service.Task) []service.Task {
	result := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}
