// Package cli is the interactive terminal front end of GradeSys.
//
// An App is one application session: it owns the configuration, the
// roster store, the credential store, the current LoginGuard and the name of
// the logged-in user. cmd/gradesys builds exactly one and calls Run.
//
// Before login the REPL accepts register, login, reset, help and exit. After
// login it accepts the roster commands (list, grades, add, update, delete,
// show, export, card, report) plus logout, help and exit. logout returns the
// session to the login state with a fresh guard.
//
// Interactive input goes through small function variables (getSimpleText,
// getPassword, readPassword, isTerminal) so tests can script a session
// without a terminal.
package cli
