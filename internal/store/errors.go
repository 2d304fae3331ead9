package store

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotAuthenticated = errors.New("not logged in (run: todosync login)")
	ErrEmptyText        = errors.New("task text required")
	ErrEmptyToken       = errors.New("session token required")
	ErrBusy             = errors.New("another request for this task is in flight")
	ErrInvalidPriority  = errors.New("invalid priority")
)

// OpError is returned by every network-facing store operation.
type OpError struct {
	Op     string // "fetch", "add", "delete", "status", "priority", "login", "logout"
	TaskID string // Optional: task the operation targeted
	Err    error
}

func (e *OpError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.TaskID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, TaskID: id, Err: err}
}
