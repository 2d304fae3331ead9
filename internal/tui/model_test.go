package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todosync/internal/service"
	"todosync/internal/session"
	"todosync/internal/store"
	"todosync/internal/testutil"
)

func newModel(t *testing.T, loggedIn bool) (*Model, *testutil.FakeService, *testutil.FakeAuthenticator) {
	t.Helper()
	svc := testutil.NewFakeService()
	svc.AddTask("1", "buy milk", service.StatusPending, service.PriorityMedium)
	svc.AddTask("2", "file taxes", service.StatusCompleted, service.PriorityHigh)
	auth := testutil.NewFakeAuthenticator("tok")

	st := store.New(svc.Factory(), session.NewMemoryStore(), nil)
	if loggedIn {
		require.NoError(t, st.Login(context.Background(), "tok"))
	}
	return New(context.Background(), st, auth), svc, auth
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends k and runs the resulting command chain to completion.
func press(t *testing.T, m *Model, k string) {
	t.Helper()
	_, cmd := m.Update(key(k))
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func texts(tasks []service.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

func TestNew_RouteFollowsSession(t *testing.T) {
	m, _, _ := newModel(t, false)
	assert.Equal(t, routeLogin, m.route)
	assert.Contains(t, m.View(), "Log in")

	m, _, _ = newModel(t, true)
	assert.Equal(t, routeTasks, m.route)
	assert.Equal(t, []string{"buy milk", "file taxes"}, texts(m.snap.Visible))
}

func TestLoginForm(t *testing.T) {
	m, svc, auth := newModel(t, false)
	require.NoError(t, auth.Signup(context.Background(), service.Credentials{Email: "a@b.c", Password: "pw"}))

	m.fields[fieldEmail].SetValue("a@b.c")
	press(t, m, "enter") // moves to password
	assert.Equal(t, fieldPassword, m.focus)
	m.fields[fieldPassword].SetValue("pw")
	press(t, m, "enter")

	assert.NoError(t, m.err)
	assert.Equal(t, routeTasks, m.route)
	assert.Equal(t, 0, m.pending)
	assert.Len(t, m.snap.Tasks, 2)
	assert.Equal(t, "", m.fields[fieldPassword].Value())
	assert.Equal(t, "ListTasks", svc.Calls()[0].Method)
}

func TestLoginForm_Rejected(t *testing.T) {
	m, svc, _ := newModel(t, false)

	m.fields[fieldEmail].SetValue("a@b.c")
	m.setFocus(fieldPassword)
	m.fields[fieldPassword].SetValue("wrong")
	press(t, m, "enter")

	assert.ErrorIs(t, m.err, service.ErrInvalidCredentials)
	assert.Equal(t, routeLogin, m.route)
	assert.Empty(t, svc.Calls())
	assert.Contains(t, m.View(), "error: invalid email or password")
}

func TestLoginForm_RequiresBothFields(t *testing.T) {
	m, _, _ := newModel(t, false)

	m.setFocus(fieldPassword)
	press(t, m, "enter")

	assert.EqualError(t, m.err, "email and password required")
	assert.Equal(t, 0, m.pending)
}

func TestLoginForm_FetchFailureStillLogsIn(t *testing.T) {
	m, svc, auth := newModel(t, false)
	require.NoError(t, auth.Signup(context.Background(), service.Credentials{Email: "a@b.c", Password: "pw"}))
	svc.ListTasksErr = service.ErrTimeout

	m.fields[fieldEmail].SetValue("a@b.c")
	m.setFocus(fieldPassword)
	m.fields[fieldPassword].SetValue("pw")
	press(t, m, "enter")

	assert.Equal(t, routeTasks, m.route)
	assert.ErrorIs(t, m.err, service.ErrTimeout)
	assert.Empty(t, m.snap.Tasks)
}

func TestSignupForm(t *testing.T) {
	m, _, auth := newModel(t, false)

	press(t, m, "ctrl+n")
	require.Equal(t, routeSignup, m.route)
	assert.Contains(t, m.View(), "Sign up")

	m.fields[fieldEmail].SetValue("new@b.c")
	m.setFocus(fieldPassword)
	m.fields[fieldPassword].SetValue("pw")
	press(t, m, "enter")

	assert.NoError(t, m.err)
	assert.Equal(t, routeLogin, m.route)
	assert.Equal(t, "new@b.c", m.fields[fieldEmail].Value())
	assert.Equal(t, fieldPassword, m.focus)
	assert.Equal(t, "account created, log in to continue", m.status)

	_, err := auth.Login(context.Background(), service.Credentials{Email: "new@b.c", Password: "pw"})
	assert.NoError(t, err)
}

func TestToggleKey(t *testing.T) {
	m, svc, _ := newModel(t, true)

	press(t, m, " ")

	assert.NoError(t, m.err)
	assert.Equal(t, "marked completed", m.status)
	assert.Equal(t, service.StatusCompleted, m.snap.Tasks[0].Status)
	assert.Equal(t, service.StatusCompleted, svc.Stored()[0].Status)
}

func TestPriorityKey(t *testing.T) {
	m, _, _ := newModel(t, true)

	press(t, m, "p")
	assert.Equal(t, service.PriorityHigh, m.snap.Tasks[0].Priority)

	press(t, m, "p")
	assert.Equal(t, service.PriorityLow, m.snap.Tasks[0].Priority)
}

func TestDeleteKey_ClampsCursor(t *testing.T) {
	m, svc, _ := newModel(t, true)

	press(t, m, "j")
	require.Equal(t, 1, m.cursor)
	press(t, m, "d")

	assert.NoError(t, m.err)
	assert.Equal(t, []string{"buy milk"}, texts(m.snap.Tasks))
	assert.Len(t, svc.Stored(), 1)
	assert.Equal(t, 0, m.cursor)
}

func TestFilterKeys_NoNetwork(t *testing.T) {
	m, svc, _ := newModel(t, true)
	before := len(svc.Calls())

	press(t, m, "s")
	assert.Equal(t, store.StatusFilter(service.StatusPending), m.snap.Filter.Status)
	assert.Equal(t, []string{"buy milk"}, texts(m.snap.Visible))

	press(t, m, "s")
	assert.Equal(t, []string{"file taxes"}, texts(m.snap.Visible))

	press(t, m, "f") // low: nothing completed is low
	assert.Empty(t, m.snap.Visible)
	assert.Contains(t, m.View(), "no tasks found")

	assert.Len(t, svc.Calls(), before)
	assert.Len(t, m.snap.Tasks, 2)
}

func TestAddKey(t *testing.T) {
	m, svc, _ := newModel(t, true)

	press(t, m, "a")
	require.True(t, m.adding)
	m.input.SetValue("  walk dog  ")
	press(t, m, "enter")

	assert.False(t, m.adding)
	assert.NoError(t, m.err)
	require.Len(t, m.snap.Tasks, 3)
	added := m.snap.Tasks[2]
	assert.Equal(t, "walk dog", added.Text)
	assert.Equal(t, service.StatusPending, added.Status)
	assert.Equal(t, service.PriorityMedium, added.Priority)
	assert.NotEmpty(t, added.ID)
	assert.Len(t, svc.Stored(), 3)
}

func TestAddKey_EmptyTextIssuesNoRequest(t *testing.T) {
	m, svc, _ := newModel(t, true)
	before := len(svc.Calls())

	press(t, m, "a")
	m.input.SetValue("   ")
	press(t, m, "enter")

	assert.ErrorIs(t, m.err, store.ErrEmptyText)
	assert.True(t, m.adding)
	assert.Len(t, svc.Calls(), before)
}

func TestAddKey_TypingDoesNotTriggerShortcuts(t *testing.T) {
	m, _, _ := newModel(t, true)

	press(t, m, "a")
	_, cmd := m.Update(key("q"))
	if cmd != nil {
		_, isQuit := cmd().(tea.QuitMsg)
		assert.False(t, isQuit)
	}
	assert.Equal(t, "q", m.input.Value())

	press(t, m, "esc")
	assert.False(t, m.adding)
	assert.Len(t, m.snap.Tasks, 2)
}

func TestOperationError_Surfaces(t *testing.T) {
	svcErr := service.ErrUnauthorized
	m, svc, _ := newModel(t, true)
	svc.SetStatusErr = svcErr
	press(t, m, " ")

	assert.ErrorIs(t, m.err, svcErr)
	assert.Equal(t, service.StatusPending, m.snap.Tasks[0].Status)
	assert.Contains(t, m.View(), "error: status [1]:")
}

func TestRefreshKey(t *testing.T) {
	m, svc, _ := newModel(t, true)
	svc.AddTask("3", "new remote", service.StatusPending, service.PriorityLow)

	press(t, m, "r")

	assert.Equal(t, "refreshed", m.status)
	assert.Len(t, m.snap.Tasks, 3)
}

func TestLogoutKey(t *testing.T) {
	m, _, _ := newModel(t, true)

	press(t, m, "L")

	assert.Equal(t, routeLogin, m.route)
	assert.False(t, m.store.Authenticated())
	assert.Empty(t, m.snap.Tasks)
	assert.Equal(t, "logged out", m.status)
}

func TestStoreChanged_Resyncs(t *testing.T) {
	m, _, _ := newModel(t, true)

	require.NoError(t, m.store.Logout())
	m.Update(storeChangedMsg{})

	assert.Equal(t, routeLogin, m.route)
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newModel(t, true)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
