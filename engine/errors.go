package engine

import "errors"

// Every public operation returns one of these sentinels (possibly wrapped
// with detail) instead of panicking, so callers can map failures to
// categorized notifications without unwinding control flow.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("not found")
	ErrCorruptBackup     = errors.New("corrupt backup")
)
