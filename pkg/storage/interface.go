// Package storage defines the persistence interfaces the registrar relies on.
// It abstracts entity storage and transaction management so that different
// backends (PostgreSQL, in-memory) can provide concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage is a composite interface that includes all entity storage
// capabilities required by the application.
type AllStorage interface {
	UserStorage
	ContactStorage
	DomainStorage
	DomainRequestStorage
	InvitationStorage
	PortfolioStorage
	TransitionDomainStorage
	JobStorage
}

// TxStorage describes a storage handle that operates within a database
// transaction. It exposes the same capabilities as AllStorage, and
// additionally allows committing or rolling back the ongoing transaction.
// Implementations become unusable after Commit or Rollback is called.
type TxStorage interface {
	AllStorage

	Commit() error
	Rollback() error
}

// Storage describes a non-transactional storage handle with the ability to
// start transactions.
type Storage interface {
	AllStorage

	// Close releases any resources held by the storage implementation.
	Close() error

	// Begin starts a new transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes cb with it, and commits on success
	// or rolls back if cb returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
