package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/output"
	"todosync/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todosync` (no args) and `todosync list [--status S] [--priority P]`.
type ListCmd struct {
	status   string
	priority string
}

// SetFilters sets the filter flags (for testing).
func (c *ListCmd) SetFilters(status, priority string) {
	c.status = status
	c.priority = priority
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "todosync list [--status all|pending|completed] [--priority all|low|medium|high]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", store.All, "")
	fs.StringVar(&c.status, "s", store.All, "")
	fs.StringVar(&c.priority, "priority", store.All, "")
	fs.StringVar(&c.priority, "p", store.All, "")
}

// Run prints the filtered view. Numbers are positions in the unfiltered list,
// so they stay valid as references for rm, toggle and priority.
func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	statusFilter, err := store.ParseStatusFilter(c.status)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	priorityFilter, err := store.ParsePriorityFilter(c.priority)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	st.SetFilterStatus(statusFilter)
	st.SetFilterPriority(priorityFilter)

	filter := st.Filter()
	shown := 0
	for i, task := range st.Tasks() {
		if !filter.Matches(task) {
			continue
		}
		if shown == 0 && !cfg.Quiet {
			output.FormatFilter(out, filter)
		}
		output.FormatTask(out, i+1, task)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
