// Package credentials persists the username -> password-hash mapping.
package credentials

import "context"

// Repository stores one hash per username. Usernames are case-sensitive.
// Get returns common.ErrNotFound for an unknown username; an absent backing
// store counts as zero users.
type Repository interface {
	Get(ctx context.Context, username string) (string, error)
	Set(ctx context.Context, username, hash string) error
	List(ctx context.Context) (map[string]string, error)
}
