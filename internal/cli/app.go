package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"sync"
	"time"

	"github.com/dmitrijs2005/gradesys/internal/auth"
	"github.com/dmitrijs2005/gradesys/internal/config"
	"github.com/dmitrijs2005/gradesys/internal/logging"
	"github.com/dmitrijs2005/gradesys/internal/models"
	"github.com/dmitrijs2005/gradesys/internal/roster"
)

// RosterStore is the part of *roster.Store the session uses.
type RosterStore interface {
	Len() int
	Add(ctx context.Context, st *models.Student) error
	Update(ctx context.Context, id string, upd roster.StudentUpdate) error
	Delete(ctx context.Context, id string) (int, error)
	Find(id string) (*models.Student, bool)
	Query(nameSubstring, gradeFilter string) []*models.Student
	All() iter.Seq[*models.Student]
	FilterChoices() []string
}

// CredentialStore is the part of *auth.CredentialStore the session uses.
type CredentialStore interface {
	auth.Verifier
	Register(ctx context.Context, username string, password []byte) error
	Reset(ctx context.Context, username string, newPassword []byte) error
	Exists(ctx context.Context, username string) (bool, error)
}

// App is one interactive session.
type App struct {
	config   *config.Config
	log      logging.Logger
	baseLog  logging.Logger
	students RosterStore
	creds    CredentialStore

	guard    *auth.LoginGuard
	tick     time.Duration
	stopTick context.CancelFunc
	userName string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires a session. in and out are the terminal streams.
func NewApp(cfg *config.Config, log logging.Logger, students RosterStore, creds CredentialStore, in io.Reader, out io.Writer) *App {
	a := &App{
		config:   cfg,
		log:      log,
		baseLog:  log,
		students: students,
		creds:    creds,
		tick:     time.Second,
		reader:   bufio.NewReader(in),
		out:      &lockedWriter{w: out},
	}
	a.guard = a.newGuard()
	return a
}

func (a *App) newGuard() *auth.LoginGuard {
	return auth.NewLoginGuard(a.creds, a.config.MaxAttempts, a.config.LockoutSeconds(), a.log)
}

// Run drives the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	defer a.stopCountdown()

	fmt.Fprintln(a.out, "Welcome to GradeSys (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.isLoggedIn() {
		return fmt.Sprintf("(%s)", a.userName)
	}
	if r := a.guard.Snapshot(); r.State == auth.StateLocked {
		return fmt.Sprintf("(locked %ds)", r.Remaining)
	}
	return ""
}

// startCountdown ticks the guard on a background goroutine until it
// reopens. The goroutine is cancelled by logout and by Run returning.
func (a *App) startCountdown(ctx context.Context) {
	a.stopCountdown()

	ctx, cancel := context.WithCancel(ctx)
	a.stopTick = cancel
	guard := a.guard

	go guard.RunCountdown(ctx, a.tick, func(r auth.Result) {
		if r.State == auth.StateOpen {
			fmt.Fprintln(a.out, "\nLogin unlocked. You can try again.")
		}
	})
}

func (a *App) stopCountdown() {
	if a.stopTick != nil {
		a.stopTick()
		a.stopTick = nil
	}
}

// lockedWriter serializes writes from the REPL and the countdown goroutine.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
