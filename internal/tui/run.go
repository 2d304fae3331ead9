package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"todosync/internal/service"
	"todosync/internal/store"
)

// Run starts the interactive view and blocks until the user quits.
// A non-nil startErr (typically a failed initial fetch) is shown in the status line.
func Run(ctx context.Context, st *store.Store, auth service.Authenticator, startErr error) error {
	model := New(ctx, st, auth)
	model.err = startErr
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send from a goroutine: notifications also fire from inside Update.
	unsubscribe := st.Subscribe(func(store.Snapshot) {
		go program.Send(storeChangedMsg{})
	})
	defer unsubscribe()

	_, err := program.Run()
	return err
}
