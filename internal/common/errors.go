// Package common defines sentinel errors shared across the melodica account
// subsystem. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Validation errors (malformed or rejected input).
	ErrValidation = errors.New("validation error")

	// Auth errors. Deliberately non-specific: an unknown email and a wrong
	// password are reported identically so account existence is not leaked.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Storage errors (underlying persistence failure).
	ErrStorage = errors.New("storage error")
)
