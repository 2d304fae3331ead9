package commands

import (
	"errors"
	"fmt"
	"io"

	"todosync/internal/exitcode"
	"todosync/internal/service"
	"todosync/internal/store"
)

// ReportError prints err as a user, auth or backend error and returns the
// matching exit code.
func ReportError(errOut io.Writer, err error) int {
	cause := err
	var opErr *store.OpError
	if errors.As(err, &opErr) {
		cause = opErr.Err
	}

	switch {
	case errors.Is(err, store.ErrNotAuthenticated),
		errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		fmt.Fprintf(errOut, "error: auth error: %v\n", cause)
		return exitcode.AuthError
	case errors.Is(err, store.ErrEmptyText),
		errors.Is(err, store.ErrEmptyToken),
		errors.Is(err, store.ErrInvalidPriority),
		errors.Is(err, store.ErrBusy),
		errors.Is(err, ErrTaskNotFound):
		fmt.Fprintf(errOut, "error: %v\n", cause)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", cause)
	return exitcode.BackendError
}

// reportRefError prints a task reference parse or lookup error.
func reportRefError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}

func ok(cfgQuiet bool, out io.Writer) int {
	if !cfgQuiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
