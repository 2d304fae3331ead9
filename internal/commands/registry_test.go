package commands

import (
	"strings"
	"testing"
)

func TestDefaultRegistry_Commands(t *testing.T) {
	var names []string
	for _, cmd := range DefaultRegistry.All() {
		names = append(names, cmd.Name())
	}

	want := "add help list login logout priority rm signup toggle tui version"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDefaultRegistry_FindAliases(t *testing.T) {
	tests := map[string]string{
		"ls":       "list",
		"LIST":     "list",
		"create":   "add",
		"delete":   "rm",
		"done":     "toggle",
		"prio":     "priority",
		"register": "signup",
		"ui":       "tui",
	}
	for alias, want := range tests {
		cmd, ok := DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not found", alias)
			continue
		}
		if cmd.Name() != want {
			t.Errorf("alias %q: expected %q, got %q", alias, want, cmd.Name())
		}
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Register(&ListCmd{})
	if err == nil || err.Error() != "command already registered: list" {
		t.Errorf("expected duplicate error, got %v", err)
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 command, got %d", len(r.All()))
	}
}
