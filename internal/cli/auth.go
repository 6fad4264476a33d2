package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/auth"
	"github.com/dmitrijs2005/gradesys/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections over the
// input helpers so tests can script answers.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

// errPasswordMismatch is reported when a password and its confirmation differ.
var errPasswordMismatch = fmt.Errorf("%w: passwords do not match", common.ErrValidation)

// Register creates an account: username, password and confirmation.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.askNewCredentials("Choose a username")
	if err != nil {
		a.notify(ctx, "register", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.creds.Register(ctx, userName, password); err != nil {
		a.notify(ctx, "register", err)
		return err
	}

	fmt.Fprintln(a.out, "Registration successful. You can now log in.")
	return nil
}

// Login asks for credentials and runs them through the session's guard.
// The attempt that reaches the failure limit starts the lockout countdown.
func (a *App) Login(ctx context.Context) error {
	if r := a.guard.Snapshot(); r.State == auth.StateLocked {
		a.notify(ctx, "log in", common.ErrLocked)
		return common.ErrLocked
	}

	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	r, err := a.guard.Attempt(ctx, userName, password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrAuthentication):
		if r.State == auth.StateLocked {
			fmt.Fprintf(a.out, "Invalid username or password. Login locked for %d seconds.\n", r.Remaining)
			a.startCountdown(ctx)
		} else {
			fmt.Fprintf(a.out, "Invalid username or password (attempt %d of %d).\n", r.FailedAttempts, a.guard.MaxAttempts())
		}
		return err
	default:
		a.notify(ctx, "log in", err)
		return err
	}

	a.userName = userName
	a.log = a.baseLog.With("user", userName)
	fmt.Fprintf(a.out, "Welcome, %s. %d student(s) on the roster.\n", userName, a.students.Len())
	return nil
}

// Reset changes a password: the username must exist before the new password
// is asked for.
func (a *App) Reset(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(userName) == "" {
		fmt.Fprintln(a.out, "Please enter a username.")
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}

	exists, err := a.creds.Exists(ctx, userName)
	if err != nil {
		a.notify(ctx, "reset password", err)
		return err
	}
	if !exists {
		fmt.Fprintln(a.out, "Username not found.")
		return common.ErrNotFound
	}
	fmt.Fprintln(a.out, "Username found. Please choose a new password.")

	password, err := a.askPasswordTwice("New password")
	if err != nil {
		a.notify(ctx, "reset password", err)
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.creds.Reset(ctx, userName, password); err != nil {
		a.notify(ctx, "reset password", err)
		return err
	}
	fmt.Fprintln(a.out, "Password reset successfully.")
	return nil
}

// Logout ends the roster session. The next login starts with a fresh guard.
func (a *App) Logout(ctx context.Context) error {
	a.log.Info(ctx, "logged out")
	a.stopCountdown()
	a.userName = ""
	a.log = a.baseLog
	a.guard = a.newGuard()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) askNewCredentials(prompt string) (string, []byte, error) {
	userName, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := a.askPasswordTwice("Password")
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) askPasswordTwice(prompt string) ([]byte, error) {
	password, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		common.WipeByteArray(password)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if len(password) == 0 {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
	}
	if string(password) != string(confirm) {
		common.WipeByteArray(password)
		return nil, errPasswordMismatch
	}
	return password, nil
}
