package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todosync/internal/backend/restapi"
	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
	"todosync/internal/store"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
// A token can be supplied directly, or exchanged for email and password.
type LoginCmd struct {
	token    string
	email    string
	password string
	auth     service.Authenticator
}

// SetAuthenticator overrides the authenticator (for testing).
func (c *LoginCmd) SetAuthenticator(a service.Authenticator) {
	c.auth = a
}

// SetCredentials sets the flags (for testing).
func (c *LoginCmd) SetCredentials(token, email, password string) {
	c.token = token
	c.email = email
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Start a session" }
func (c *LoginCmd) Usage() string {
	return "todosync login --token <token> | todosync login --email <email> --password <password>"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.token, "token", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	token := strings.TrimSpace(c.token)
	if token == "" && c.email == "" && c.password == "" {
		if cfg.HasToken() {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: credentials required\nusage: %s\n", c.Usage())
		return exitcode.UserError
	}

	if token == "" {
		auth := c.auth
		if auth == nil {
			auth = restapi.NewAuthenticator(cfg, nil)
		}
		var err error
		token, err = auth.Login(ctx, service.Credentials{Email: c.email, Password: c.password})
		if err != nil {
			return reportCredentialError(errOut, err)
		}
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	err := st.Login(ctx, token)
	var opErr *store.OpError
	switch {
	case err == nil:
	case errors.As(err, &opErr) && opErr.Op == "fetch":
		// Session is established; only the initial fetch failed.
		fmt.Fprintf(errOut, "warning: logged in, but could not fetch tasks: %v\n", opErr.Err)
	default:
		return ReportError(errOut, err)
	}
	return ok(cfg.Quiet, out)
}

// reportCredentialError maps authenticator input errors to user errors.
func reportCredentialError(errOut io.Writer, err error) int {
	if errors.Is(err, restapi.ErrEmailRequired) || errors.Is(err, restapi.ErrPasswordRequired) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return ReportError(errOut, err)
}
