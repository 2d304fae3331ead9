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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todosync help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todosync                                           List all tasks
  todosync list [common flags] [--status <s>] [--priority <p>]
  todosync add [common flags] <text...>
  todosync toggle [common flags] <n> | --id <id>
  todosync priority [common flags] <n> | --id <id> <low|medium|high>
  todosync rm [common flags] <n> | --id <id>
  todosync login [common flags] --token <token>
  todosync login [common flags] --email <email> --password <password>
  todosync signup [common flags] --email <email> --password <password>
  todosync logout [common flags]
  todosync tui [common flags]
  todosync help
  todosync version

Filters:
  --status    all, pending, completed
  --priority  all, low, medium, high

Common flags:
  --config <dir>   Override config directory
  --api <url>      Override the API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
