// Package store keeps the local task collection in sync with the remote API.
//
// A Store owns the session credential, the task collection and the filter state.
// Every mutation round-trips through service.Service and patches the collection
// from the server's response; nothing is changed locally before the server answers.
// Completions apply to the collection as it is when they arrive, so for
// overlapping requests on different tasks the last response wins.
package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"todosync/internal/logging"
	"todosync/internal/service"
	"todosync/internal/session"
)

// Snapshot is an immutable copy of the store state handed to subscribers.
type Snapshot struct {
	Authenticated bool
	Tasks         []service.Task
	Visible       []service.Task
	Filter        Filter
}

// Store is the task synchronization client.
type Store struct {
	factory  service.Factory
	sessions session.Store
	logger   *log.Logger

	mu         sync.Mutex
	token      string
	svc        service.Service
	generation uint64 // bumped on every session change; stale responses are dropped
	tasks      []service.Task
	filter     Filter
	inflight   map[string]struct{}

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates an unauthenticated store. factory builds the backend for a token.
func New(factory service.Factory, sessions session.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		factory:  factory,
		sessions: sessions,
		logger:   logger,
		filter:   NewFilter(),
		inflight: make(map[string]struct{}),
		subs:     make(map[int]func(Snapshot)),
	}
}

// SetLogger replaces the store's logger. Call it before any operation starts.
func (s *Store) SetLogger(l *log.Logger) {
	if l == nil {
		l = logging.Discard()
	}
	s.logger = l
}

// Subscribe registers fn to be called after every state change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	snap := s.Snapshot()
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Authenticated: s.token != "",
		Tasks:         cloneTasks(s.tasks),
		Visible:       s.filter.Apply(s.tasks),
		Filter:        s.filter,
	}
}

// Authenticated reports whether a session credential is present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Tasks returns a copy of the full collection in server order.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Visible returns the collection narrowed by the filter.
func (s *Store) Visible() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Apply(s.tasks)
}

// Filter returns the current filter state.
func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilterStatus changes the status selector. No network effect.
func (s *Store) SetFilterStatus(f StatusFilter) {
	s.mu.Lock()
	s.filter.Status = f
	s.mu.Unlock()
	s.notify()
}

// SetFilterPriority changes the priority selector. No network effect.
func (s *Store) SetFilterPriority(f PriorityFilter) {
	s.mu.Lock()
	s.filter.Priority = f
	s.mu.Unlock()
	s.notify()
}

// Restore loads the credential from durable storage at startup.
// With a stored credential the store becomes authenticated and fetches once.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.sessions.Load()
	if err != nil {
		return opError("restore", "", err)
	}
	if token == "" {
		return nil
	}
	return s.authenticate(ctx, token, false)
}

// Login stores the credential in memory and durable storage. When the credential
// changes, the collection is fetched once. If that fetch fails the session stays
// established and the fetch's *OpError is returned.
func (s *Store) Login(ctx context.Context, token string) error {
	return s.authenticate(ctx, token, true)
}

func (s *Store) authenticate(ctx context.Context, token string, persist bool) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return opError("login", "", ErrEmptyToken)
	}

	svc, err := s.factory(token)
	if err != nil {
		return opError("login", "", err)
	}
	if persist {
		if err := s.sessions.Save(token); err != nil {
			return opError("login", "", err)
		}
	}

	s.mu.Lock()
	changed := s.token != token
	if changed {
		s.token = token
		s.svc = svc
		s.tasks = nil
		s.generation++
	}
	s.mu.Unlock()

	if !changed {
		return nil
	}
	s.notify()
	return s.FetchTasks(ctx)
}

// Logout clears the credential from memory and durable storage and empties the collection.
// Memory is cleared even when durable storage fails.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.svc = nil
	s.tasks = nil
	s.generation++
	s.mu.Unlock()

	err := s.sessions.Clear()
	s.notify()
	return opError("logout", "", err)
}

// session returns the backend and generation for a request, or ErrNotAuthenticated.
func (s *Store) session() (service.Service, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" || s.svc == nil {
		return nil, 0, ErrNotAuthenticated
	}
	return s.svc, s.generation, nil
}

// apply runs fn under the lock unless the session changed since gen, then notifies.
func (s *Store) apply(gen uint64, fn func()) bool {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return false
	}
	fn()
	s.mu.Unlock()
	s.notify()
	return true
}

// FetchTasks replaces the collection with the server's list.
// Without a session no request is issued. On failure the error is logged and
// the collection is left unchanged.
func (s *Store) FetchTasks(ctx context.Context) error {
	svc, gen, err := s.session()
	if err != nil {
		return opError("fetch", "", err)
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		s.logger.Error("failed to fetch tasks", "err", err)
		return opError("fetch", "", err)
	}

	if !s.apply(gen, func() { s.tasks = cloneTasks(tasks) }) {
		s.logger.Debug("dropping fetch result from previous session")
	}
	return nil
}

// AddTask creates a pending, medium-priority task from the trimmed text and
// appends the server's copy to the collection.
func (s *Store) AddTask(ctx context.Context, text string) (service.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return service.Task{}, opError("add", "", ErrEmptyText)
	}
	svc, gen, err := s.session()
	if err != nil {
		return service.Task{}, opError("add", "", err)
	}

	created, err := svc.CreateTask(ctx, service.NewTask{
		Text:     text,
		Status:   service.StatusPending,
		Priority: service.PriorityMedium,
	})
	if err != nil {
		s.logger.Warn("failed to add task", "err", err)
		return service.Task{}, opError("add", "", err)
	}

	s.apply(gen, func() { s.tasks = append(s.tasks, created) })
	return created, nil
}

// DeleteTask deletes a task on the server, then removes it locally.
// A 404 counts as success: the task no longer exists remotely.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	svc, gen, err := s.session()
	if err != nil {
		return opError("delete", id, err)
	}
	if err := s.begin(id); err != nil {
		return opError("delete", id, err)
	}
	defer s.end(id)

	if err := svc.DeleteTask(ctx, id); err != nil && !errors.Is(err, service.ErrNotFound) {
		s.logger.Warn("failed to delete task", "id", id, "err", err)
		return opError("delete", id, err)
	}

	s.apply(gen, func() { s.tasks = removeTask(s.tasks, id) })
	return nil
}

// ToggleStatus flips current (pending <-> completed) without consulting the server
// and replaces the entry with the server's updated copy.
func (s *Store) ToggleStatus(ctx context.Context, id string, current service.Status) (service.Task, error) {
	next := current.Toggle()
	return s.update("status", id, func(svc service.Service) (service.Task, error) {
		return svc.SetStatus(ctx, id, next)
	})
}

// SetPriority sets a task's priority and replaces the entry with the server's copy.
func (s *Store) SetPriority(ctx context.Context, id string, p service.Priority) (service.Task, error) {
	if !p.Valid() {
		return service.Task{}, opError("priority", id, ErrInvalidPriority)
	}
	return s.update("priority", id, func(svc service.Service) (service.Task, error) {
		return svc.SetPriority(ctx, id, p)
	})
}

func (s *Store) update(op, id string, call func(service.Service) (service.Task, error)) (service.Task, error) {
	svc, gen, err := s.session()
	if err != nil {
		return service.Task{}, opError(op, id, err)
	}
	if err := s.begin(id); err != nil {
		return service.Task{}, opError(op, id, err)
	}
	defer s.end(id)

	updated, err := call(svc)
	if err != nil {
		s.logger.Warn("failed to update task", "op", op, "id", id, "err", err)
		return service.Task{}, opError(op, id, err)
	}

	s.apply(gen, func() { replaceTask(s.tasks, id, updated) })
	return updated, nil
}

// begin marks id as having a mutation in flight.
func (s *Store) begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return ErrBusy
	}
	s.inflight[id] = struct{}{}
	return nil
}

func (s *Store) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

func cloneTasks(tasks []service.Task) []service.Task {
	if tasks == nil {
		return []service.Task{}
	}
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	return out
}

func removeTask(tasks []service.Task, id string) []service.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// replaceTask swaps every entry whose ID is id, in place.
func replaceTask(tasks []service.Task, id string, updated service.Task) {
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i] = updated
		}
	}
}
