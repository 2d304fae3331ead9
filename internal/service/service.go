// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// Service defines the interface for task backend operations.
// All remote API calls go through this interface.
// Commands and the store never import the HTTP backend directly.
type Service interface {
	// ListTasks returns every task of the authenticated user in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it with its server-assigned ID.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// DeleteTask deletes a task. The response body is not inspected.
	DeleteTask(ctx context.Context, id string) error

	// SetStatus updates a task's status and returns the updated task.
	SetStatus(ctx context.Context, id string, status Status) (Task, error)

	// SetPriority updates a task's priority and returns the updated task.
	SetPriority(ctx context.Context, id string, priority Priority) (Task, error)
}

// Authenticator performs the login and signup round trips.
type Authenticator interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds Credentials) (string, error)

	// Signup registers a new user.
	Signup(ctx context.Context, creds Credentials) error
}

// Factory builds a Service bound to a bearer token.
type Factory func(token string) (Service, error)

// Backend errors shared by all implementations.
var (
	ErrUnauthorized      = errors.New("token expired or revoked (run: todosync login)")
	ErrNotFound          = errors.New("not found")
	ErrTimeout           = errors.New("request timed out")
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidCredentials is returned when a login is rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
