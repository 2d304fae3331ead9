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
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	id string
}

// SetID sets the --id flag (for testing).
func (c *RmCmd) SetID(id string) {
	c.id = id
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todosync rm <n> | todosync rm --id <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
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

	if err := st.DeleteTask(ctx, task.ID); err != nil {
		return ReportError(errOut, err)
	}
	return ok(cfg.Quiet, out)
}
