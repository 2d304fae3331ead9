// Package tui provides the interactive terminal view over a store.Store.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todosync/internal/service"
	"todosync/internal/store"
)

type route int

const (
	routeLogin route = iota
	routeSignup
	routeTasks
)

func (r route) String() string {
	switch r {
	case routeSignup:
		return "signup"
	case routeTasks:
		return "tasks"
	default:
		return "login"
	}
}

// Form field indexes.
const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// Message types
type errMsg struct{ err error }
type statusMsg struct{ msg string }
type storeChangedMsg struct{}
type loggedInMsg struct{ fetchErr error }
type signedUpMsg struct{ email string }

// Model is the Bubble Tea model for the application.
type Model struct {
	ctx   context.Context
	store *store.Store
	auth  service.Authenticator

	route route
	snap  store.Snapshot

	// Login and signup form
	fields [fieldCount]textinput.Model
	focus  int

	// Create form
	input  textinput.Model
	adding bool

	cursor  int
	pending int
	spinner spinner.Model

	status string
	err    error
	width  int
}

// New creates a Model. The store is expected to be restored already; an
// authenticated store opens on the task view, otherwise on the login form.
func New(ctx context.Context, st *store.Store, auth service.Authenticator) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	email := newInput("email", 254, 40)

	password := newInput("password", 0, 40)
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	input := newInput("What needs doing?", 500, 60)

	m := &Model{
		ctx:     ctx,
		store:   st,
		auth:    auth,
		fields:  [fieldCount]textinput.Model{email, password},
		input:   input,
		spinner: s,
	}
	m.sync()
	if m.route == routeLogin {
		m.fields[fieldEmail].Focus()
	}
	return m
}

func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case storeChangedMsg:
		m.sync()
		return m, nil

	case errMsg:
		m.done()
		m.err = msg.err
		m.status = ""
		m.sync()
		return m, nil

	case statusMsg:
		m.done()
		m.err = nil
		m.status = msg.msg
		m.sync()
		return m, nil

	case loggedInMsg:
		m.done()
		m.clearForm()
		m.err = msg.fetchErr
		m.status = ""
		m.sync()
		return m, nil

	case signedUpMsg:
		m.done()
		m.clearForm()
		m.setRoute(routeLogin)
		m.fields[fieldEmail].SetValue(msg.email)
		m.setFocus(fieldPassword)
		m.err = nil
		m.status = "account created, log in to continue"
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.route {
		case routeTasks:
			return m.updateTasks(msg)
		default:
			return m.updateForm(msg)
		}
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "ctrl+n":
		if m.route == routeLogin {
			m.setRoute(routeSignup)
		} else {
			m.setRoute(routeLogin)
		}
		m.err = nil
		m.status = ""
		return m, nil
	case "enter":
		if m.focus < fieldCount-1 {
			m.setFocus(m.focus + 1)
			return m, nil
		}
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.adding {
		return m.updateAdding(msg)
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.Visible)-1 {
			m.cursor++
		}
	case "a":
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case " ":
		if t, ok := m.selected(); ok {
			return m, m.run(func(ctx context.Context) (string, error) {
				updated, err := m.store.ToggleStatus(ctx, t.ID, t.Status)
				return "marked " + string(updated.Status), err
			})
		}
	case "p":
		if t, ok := m.selected(); ok {
			next := t.Priority.Next()
			return m, m.run(func(ctx context.Context) (string, error) {
				_, err := m.store.SetPriority(ctx, t.ID, next)
				return "priority " + string(next), err
			})
		}
	case "d":
		if t, ok := m.selected(); ok {
			return m, m.run(func(ctx context.Context) (string, error) {
				return "deleted", m.store.DeleteTask(ctx, t.ID)
			})
		}
	case "s":
		m.store.SetFilterStatus(m.snap.Filter.Status.Next())
		m.sync()
	case "f":
		m.store.SetFilterPriority(m.snap.Filter.Priority.Next())
		m.sync()
	case "r":
		return m, m.run(func(ctx context.Context) (string, error) {
			return "refreshed", m.store.FetchTasks(ctx)
		})
	case "L":
		err := m.store.Logout()
		m.sync()
		m.err = err
		m.status = "logged out"
	}
	return m, nil
}

func (m *Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			m.err = store.ErrEmptyText
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, m.run(func(ctx context.Context) (string, error) {
			_, err := m.store.AddTask(ctx, text)
			return "added", err
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitForm() tea.Cmd {
	creds := service.Credentials{
		Email:    strings.TrimSpace(m.fields[fieldEmail].Value()),
		Password: m.fields[fieldPassword].Value(),
	}
	if creds.Email == "" || creds.Password == "" {
		m.err = errors.New("email and password required")
		return nil
	}

	m.pending++
	m.err = nil
	if m.route == routeSignup {
		return func() tea.Msg {
			if err := m.auth.Signup(m.ctx, creds); err != nil {
				return errMsg{err}
			}
			return signedUpMsg{email: creds.Email}
		}
	}
	return func() tea.Msg {
		token, err := m.auth.Login(m.ctx, creds)
		if err != nil {
			return errMsg{err}
		}
		err = m.store.Login(m.ctx, token)
		var opErr *store.OpError
		if err != nil && !(errors.As(err, &opErr) && opErr.Op == "fetch") {
			return errMsg{err}
		}
		return loggedInMsg{fetchErr: err}
	}
}

// run executes a store operation off the event loop.
func (m *Model) run(op func(ctx context.Context) (string, error)) tea.Cmd {
	m.pending++
	return func() tea.Msg {
		msg, err := op(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg{msg}
	}
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

// sync re-reads the store and follows the session: no session shows the
// login form, a session shows the task view.
func (m *Model) sync() {
	m.snap = m.store.Snapshot()
	switch {
	case m.snap.Authenticated && m.route != routeTasks:
		m.setRoute(routeTasks)
	case !m.snap.Authenticated && m.route == routeTasks:
		m.adding = false
		m.setRoute(routeLogin)
	}
	if m.cursor >= len(m.snap.Visible) {
		m.cursor = len(m.snap.Visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setRoute(r route) {
	m.route = r
	if r != routeTasks {
		m.setFocus(fieldEmail)
	}
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.fields {
		if j == i {
			m.fields[j].Focus()
		} else {
			m.fields[j].Blur()
		}
	}
}

func (m *Model) clearForm() {
	for i := range m.fields {
		m.fields[i].SetValue("")
	}
}

func (m *Model) selected() (service.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Visible) {
		return service.Task{}, false
	}
	return m.snap.Visible[m.cursor], true
}
