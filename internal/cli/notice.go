package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/common"
)

// notify tells the user what went wrong with action and logs anything that
// is not a plain user mistake.
func (a *App) notify(ctx context.Context, action string, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, userMessage(err, common.ErrValidation))
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Not found.")
	case errors.Is(err, common.ErrUsernameTaken):
		fmt.Fprintln(a.out, "Username already exists.")
	case errors.Is(err, common.ErrLocked):
		fmt.Fprintf(a.out, "Too many failed attempts. Try again in %d seconds.\n", a.guard.Snapshot().Remaining)
	case errors.Is(err, common.ErrAuthentication):
		fmt.Fprintln(a.out, "Invalid username or password.")
	default:
		a.log.Error(ctx, action+" failed", "error", err)
		fmt.Fprintf(a.out, "Could not %s. See the log for details.\n", action)
	}
}

// userMessage strips the sentinel prefix from a wrapped validation error.
func userMessage(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		msg = msg[i+len(sentinel.Error())+2:]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
