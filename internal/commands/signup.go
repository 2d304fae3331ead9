package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todosync/internal/backend/restapi"
	"todosync/internal/config"
	"todosync/internal/exitcode"
	"todosync/internal/service"
	"todosync/internal/store"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd registers a new account. It does not start a session.
type SignupCmd struct {
	email    string
	password string
	auth     service.Authenticator
}

// SetAuthenticator overrides the authenticator (for testing).
func (c *SignupCmd) SetAuthenticator(a service.Authenticator) {
	c.auth = a
}

// SetCredentials sets the flags (for testing).
func (c *SignupCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string {
	return "todosync signup --email <email> --password <password>"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	auth := c.auth
	if auth == nil {
		auth = restapi.NewAuthenticator(cfg, nil)
	}
	if err := auth.Signup(ctx, service.Credentials{Email: c.email, Password: c.password}); err != nil {
		return reportCredentialError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok: account created (run: todosync login)")
	}
	return exitcode.Success
}
