package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/logging"
)

// State of a LoginGuard.
type State int

const (
	StateOpen State = iota
	StateLocked
)

func (s State) String() string {
	if s == StateLocked {
		return "locked"
	}
	return "open"
}

const (
	DefaultMaxAttempts    = 3
	DefaultLockoutSeconds = 30
)

// Verifier checks a username/password pair. *CredentialStore satisfies it.
type Verifier interface {
	Verify(ctx context.Context, username string, password []byte) (bool, error)
}

// Result describes the guard after an attempt or tick.
type Result struct {
	State          State
	FailedAttempts int
	Remaining      int // seconds until the lock lifts; 0 when open
	Authenticated  bool
}

// LoginGuard counts failed logins and locks further attempts for a fixed
// number of one-second ticks once the limit is reached. It lives for one
// login session and keeps nothing on disk.
//
// The countdown runs on its own goroutine (RunCountdown), so all methods
// are safe for concurrent use.
type LoginGuard struct {
	mu sync.Mutex

	verifier       Verifier
	log            logging.Logger
	maxAttempts    int
	lockoutSeconds int

	state     State
	failed    int
	remaining int
}

func NewLoginGuard(v Verifier, maxAttempts, lockoutSeconds int, log logging.Logger) *LoginGuard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if lockoutSeconds <= 0 {
		lockoutSeconds = DefaultLockoutSeconds
	}
	return &LoginGuard{
		verifier:       v,
		log:            log,
		maxAttempts:    maxAttempts,
		lockoutSeconds: lockoutSeconds,
	}
}

// Attempt verifies the credentials unless the guard is locked.
//
//   - locked: common.ErrLocked; nothing changes
//   - match: counter reset, Result.Authenticated
//   - mismatch: counter+1 and common.ErrAuthentication; the attempt that
//     reaches the limit locks the guard
//   - verifier error: returned as is; the counter is not touched
func (g *LoginGuard) Attempt(ctx context.Context, username string, password []byte) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == StateLocked {
		return g.result(), fmt.Errorf("%w: try again in %d seconds", common.ErrLocked, g.remaining)
	}

	ok, err := g.verifier.Verify(ctx, username, password)
	if err != nil {
		return g.result(), err
	}

	if ok {
		g.failed = 0
		r := g.result()
		r.Authenticated = true
		g.log.Info(ctx, "login succeeded", "username", username)
		return r, nil
	}

	g.failed++
	g.log.Warn(ctx, "login failed", "username", username, "failed_attempts", g.failed)
	if g.failed >= g.maxAttempts {
		g.state = StateLocked
		g.remaining = g.lockoutSeconds
		g.log.Warn(ctx, "login locked", "seconds", g.remaining)
	}
	return g.result(), fmt.Errorf("%w (attempt %d of %d)", common.ErrAuthentication, g.failed, g.maxAttempts)
}

// Tick advances the lockout countdown by one second. When the countdown
// reaches zero the guard reopens with a cleared failure counter. Ticks while
// open are ignored.
func (g *LoginGuard) Tick() Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateLocked {
		return g.result()
	}
	if g.remaining > 0 {
		g.remaining--
	}
	if g.remaining == 0 {
		g.state = StateOpen
		g.failed = 0
	}
	return g.result()
}

// MaxAttempts is the number of failures that locks the guard.
func (g *LoginGuard) MaxAttempts() int { return g.maxAttempts }

// Snapshot returns the current state without changing it.
func (g *LoginGuard) Snapshot() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result()
}

// RunCountdown calls Tick every interval while the guard is locked, passing
// each result to onTick (which may be nil). It returns when the guard
// reopens or ctx is done.
func (g *LoginGuard) RunCountdown(ctx context.Context, interval time.Duration, onTick func(Result)) {
	if g.Snapshot().State != StateLocked {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r := g.Tick()
			if onTick != nil {
				onTick(r)
			}
			if r.State == StateOpen {
				g.log.Info(ctx, "login unlocked")
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (g *LoginGuard) result() Result {
	return Result{State: g.state, FailedAttempts: g.failed, Remaining: g.remaining}
}
