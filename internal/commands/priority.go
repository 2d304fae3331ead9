package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
	"todosync/internal/store"
)

func init() {
	Register(&PriorityCmd{})
}

// PriorityCmd sets a task's priority.
type PriorityCmd struct {
	id string
}

// SetID sets the --id flag (for testing).
func (c *PriorityCmd) SetID(id string) {
	c.id = id
}

func (c *PriorityCmd) Name() string      { return "priority" }
func (c *PriorityCmd) Aliases() []string { return []string{"prio"} }
func (c *PriorityCmd) Synopsis() string  { return "Set a task's priority" }
func (c *PriorityCmd) Usage() string {
	return "todosync priority <n> <low|medium|high> | todosync priority --id <id> <low|medium|high>"
}
func (c *PriorityCmd) NeedsAuth() bool { return true }

func (c *PriorityCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "")
}

func (c *PriorityCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(c.id, args)
	if err != nil {
		return reportRefError(errOut, err)
	}
	if len(rest) == 0 {
		fmt.Fprintln(errOut, "error: priority required (low, medium, high)")
		return exitcode.UserError
	}
	if len(rest) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[1])
		return exitcode.UserError
	}
	priority, err := service.ParsePriority(rest[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := ResolveTask(st, ref)
	if err != nil {
		return reportRefError(errOut, err)
	}

	if _, err := st.SetPriority(ctx, task.ID, priority); err != nil {
		return ReportError(errOut, err)
	}
	return ok(cfg.Quiet, out)
}
