// Package auth gates access to the roster: a credential store for
// register/verify/reset and a LoginGuard enforcing the failed-attempt lockout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gradesys/internal/common"
	"github.com/dmitrijs2005/gradesys/internal/cryptox"
	"github.com/dmitrijs2005/gradesys/internal/logging"
	"github.com/dmitrijs2005/gradesys/internal/repositories/credentials"
)

// CredentialStore registers users and checks their passwords.
// New hashes use the configured Hasher; existing hashes are checked with the
// scheme they were written in.
type CredentialStore struct {
	repo   credentials.Repository
	hasher cryptox.Hasher
	log    logging.Logger
}

func NewCredentialStore(repo credentials.Repository, hasher cryptox.Hasher, log logging.Logger) *CredentialStore {
	return &CredentialStore{repo: repo, hasher: hasher, log: log}
}

// Register stores a new user. It returns common.ErrUsernameTaken (leaving
// the stored hash untouched) if username already exists.
func (c *CredentialStore) Register(ctx context.Context, username string, password []byte) error {
	if err := checkInput(username, password); err != nil {
		return err
	}

	exists, err := c.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("register %q: %w", username, common.ErrUsernameTaken)
	}

	if err := c.store(ctx, username, password); err != nil {
		return err
	}
	c.log.Info(ctx, "user registered", "username", username)
	return nil
}

// Verify reports whether username exists and password matches its hash.
// Only storage failures produce an error.
func (c *CredentialStore) Verify(ctx context.Context, username string, password []byte) (bool, error) {
	hash, err := c.repo.Get(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cryptox.Matches(hash, password), nil
}

// Reset overwrites (or inserts) the hash for username. Proving the user
// exists is the caller's job (see Exists).
func (c *CredentialStore) Reset(ctx context.Context, username string, newPassword []byte) error {
	if err := checkInput(username, newPassword); err != nil {
		return err
	}
	if err := c.store(ctx, username, newPassword); err != nil {
		return err
	}
	c.log.Info(ctx, "password reset", "username", username)
	return nil
}

// Exists reports whether username is registered.
func (c *CredentialStore) Exists(ctx context.Context, username string) (bool, error) {
	_, err := c.repo.Get(ctx, username)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (c *CredentialStore) store(ctx context.Context, username string, password []byte) error {
	hash, err := c.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := c.repo.Set(ctx, username, hash); err != nil {
		c.log.Error(ctx, "credential write failed", "username", username, "error", err)
		return err
	}
	return nil
}

func checkInput(username string, password []byte) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return nil
}
