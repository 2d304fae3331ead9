package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/store"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd flips a task between pending and completed.
type ToggleCmd struct {
	id string
}

// SetID sets the --id flag (for testing).
func (c *ToggleCmd) SetID(id string) {
	c.id = id
}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Toggle a task between pending and completed" }
func (c *ToggleCmd) Usage() string     { return "todosync toggle <n> | todosync toggle --id <id>" }
func (c *ToggleCmd) NeedsAuth() bool   { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(c.id, args)
	if err != nil {
		return reportRefError(errOut, err)
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	task, err := ResolveTask(st, ref)
	if err != nil {
		return reportRefError(errOut, err)
	}

	updated, err := st.ToggleStatus(ctx, task.ID, task.Status)
	if err != nil {
		return ReportError(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok: %s\n", updated.Status)
	}
	return exitcode.Success
}
