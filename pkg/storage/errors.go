package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when an operation requiring a non-transactional
	// context is attempted while already inside a transaction.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when a transaction-specific operation is attempted
	// while not currently inside a transaction.
	ErrNotInTx = errors.New("not in tx")
	// ErrDuplicate is returned when a row violates a uniqueness constraint,
	// e.g. a second domain with the same name.
	ErrDuplicate = errors.New("duplicate")
	// ErrNotFound is returned by updates that matched no row.
	ErrNotFound = errors.New("not found")
)
