package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todosync/internal/service"
	"todosync/internal/store"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based position in the task list, 0 if ID is set
	ID  string // server id from --id
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference.
// With a non-empty id the reference is the id and args are left untouched.
// Otherwise the first arg must be a 1-based position; the rest is returned.
func ParseTaskRef(id string, args []string) (TaskRef, []string, error) {
	if id = strings.TrimSpace(id); id != "" {
		return TaskRef{ID: id}, args, nil
	}
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := args[0]
	if !isAllDigits(first) {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}
	num, err := strconv.Atoi(first)
	if err != nil {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}
	return TaskRef{Num: num}, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ErrTaskNotFound is returned when a reference matches no task in the collection.
var ErrTaskNotFound = errors.New("task not found")

// ResolveTask finds the referenced task in the store's full (unfiltered) collection.
func ResolveTask(st *store.Store, ref TaskRef) (service.Task, error) {
	tasks := st.Tasks()
	if ref.ID != "" {
		for _, t := range tasks {
			if t.ID == ref.ID {
				return t, nil
			}
		}
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, ref.ID)
	}
	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
	}
	return tasks[ref.Num-1], nil
}
