package types

import "errors"

// Standard errors returned by the store and domain types.
var (
	// ErrNotFound indicates that no task with the requested ID exists.
	ErrNotFound = errors.New("task not found")

	// ErrInvalidDate indicates a due date that is not a valid YYYY-MM-DD
	// calendar date.
	ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")
)

// Config validation errors.
var (
	ErrListenAddrEmpty = errors.New("listen address must not be empty")
	ErrDriverEmpty     = errors.New("database driver must not be empty")
	ErrDriverUnknown   = errors.New("unknown database driver")
	ErrDSNEmpty        = errors.New("database dsn must not be empty")
)
