// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todosync/internal/service"
)

// Call records one backend invocation.
type Call struct {
	Method string
	ID     string
	Body   any
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	calls  []Call
	nextID int

	// Error injection for testing
	ListTasksErr   error
	CreateTaskErr  error
	DeleteTaskErr  error
	SetStatusErr   error
	SetPriorityErr error

	// ListResponse, when non-nil, is returned by ListTasks instead of the stored tasks.
	ListResponse []service.Task

	// Gate, when non-nil, blocks every call until it is closed or receives a value.
	Gate chan struct{}
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1}
}

// Factory returns a service.Factory that always hands out f.
func (f *FakeService) Factory() service.Factory {
	return func(token string) (service.Service, error) {
		return f, nil
	}
}

// AddTask seeds a task directly, bypassing the call log.
func (f *FakeService) AddTask(id, text string, status service.Status, priority service.Priority) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Text: text, Status: status, Priority: priority})
}

// Stored returns a copy of the tasks the fake server holds.
func (f *FakeService) Stored() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns a copy of the recorded calls.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	gate := f.Gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record(Call{Method: "ListTasks"})
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	src := f.tasks
	if f.ListResponse != nil {
		src = f.ListResponse
	}
	out := make([]service.Task, len(src))
	copy(out, src)
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	f.record(Call{Method: "CreateTask", Body: task})
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	created := service.Task{
		ID:       fmt.Sprintf("srv-%d", f.nextID),
		Text:     task.Text,
		Status:   task.Status,
		Priority: task.Priority,
	}
	f.nextID++
	f.tasks = append(f.tasks, created)
	return created, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.record(Call{Method: "DeleteTask", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// SetStatus implements service.Service.
func (f *FakeService) SetStatus(ctx context.Context, id string, status service.Status) (service.Task, error) {
	f.record(Call{Method: "SetStatus", ID: id, Body: status})
	if f.SetStatusErr != nil {
		return service.Task{}, f.SetStatusErr
	}
	return f.patch(id, func(t *service.Task) { t.Status = status })
}

// SetPriority implements service.Service.
func (f *FakeService) SetPriority(ctx context.Context, id string, priority service.Priority) (service.Task, error) {
	f.record(Call{Method: "SetPriority", ID: id, Body: priority})
	if f.SetPriorityErr != nil {
		return service.Task{}, f.SetPriorityErr
	}
	return f.patch(id, func(t *service.Task) { t.Priority = priority })
}

func (f *FakeService) patch(id string, fn func(*service.Task)) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			fn(&f.tasks[i])
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// FakeAuthenticator is an in-memory service.Authenticator.
type FakeAuthenticator struct {
	mu    sync.Mutex
	users map[string]string // email -> password

	// Token is returned by a successful Login.
	Token string

	LoginErr  error
	SignupErr error
}

// NewFakeAuthenticator creates a FakeAuthenticator handing out token.
func NewFakeAuthenticator(token string) *FakeAuthenticator {
	return &FakeAuthenticator{users: make(map[string]string), Token: token}
}

// Login implements service.Authenticator.
func (a *FakeAuthenticator) Login(ctx context.Context, creds service.Credentials) (string, error) {
	if a.LoginErr != nil {
		return "", a.LoginErr
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if pw, ok := a.users[creds.Email]; !ok || pw != creds.Password {
		return "", service.ErrInvalidCredentials
	}
	return a.Token, nil
}

// Signup implements service.Authenticator.
func (a *FakeAuthenticator) Signup(ctx context.Context, creds service.Credentials) error {
	if a.SignupErr != nil {
		return a.SignupErr
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.users[creds.Email]; exists {
		return fmt.Errorf("user already exists")
	}
	a.users[creds.Email] = creds.Password
	return nil
}
