package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"todosync/internal/backend/restapi"
	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/logging"
	"todosync/internal/store"
	"todosync/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd starts the interactive view. Without a session it opens on the login form.
type TUICmd struct{}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return []string{"ui"} }
func (c *TUICmd) Synopsis() string  { return "Interactive task view" }
func (c *TUICmd) Usage() string     { return "todosync tui [common flags]" }
func (c *TUICmd) NeedsAuth() bool   { return false }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.UserError
	}

	// Log lines would corrupt the alternate screen.
	logger := logging.Discard()
	if cfg.Debug {
		f, err := os.OpenFile(filepath.Join(cfg.Dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to open debug log: %v\n", err)
			return exitcode.UserError
		}
		defer f.Close()
		logger = logging.New(f, logging.Options{Debug: true, ReportTimestamp: true})
	}
	st.SetLogger(logger)

	// A failed initial fetch is shown in the view, not fatal.
	restoreErr := st.Restore(ctx)
	if restoreErr != nil && !st.Authenticated() {
		return ReportError(errOut, restoreErr)
	}

	if err := tui.Run(ctx, st, restapi.NewAuthenticator(cfg, nil), restoreErr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
