// Package common defines shared constants and sentinel errors used across
// GradeSys layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Input errors: a score or required text field is outside its domain.
	ErrValidation = errors.New("validation error")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage error")

	// Credential errors.
	ErrUsernameTaken  = errors.New("username already exists")
	ErrAuthentication = errors.New("invalid username or password")
	ErrLocked         = errors.New("login temporarily locked")
)
