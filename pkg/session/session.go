// Package session keeps the domain request a user is currently editing in
// the request wizard. Entries expire after a TTL; an expired or missing entry
// means the user starts a new request.
package session

import (
	"context"
	"errors"

	"registrar/pkg/domain"
)

// ErrNoSession is returned when the user has no active wizard session.
var ErrNoSession = errors.New("no wizard session")

// Store is implemented by the redis and in-memory session backends.
//
//go:generate mockgen -package mocksession -source=session.go -destination=mock/mocksession.go *
type Store interface {
	// CurrentRequest returns the request the user is editing, or ErrNoSession.
	CurrentRequest(ctx context.Context, userID domain.UserID) (domain.DomainRequestID, error)
	// SetCurrentRequest starts or refreshes the session of the user.
	SetCurrentRequest(ctx context.Context, userID domain.UserID, id domain.DomainRequestID) error
	// Clear ends the session. Clearing a missing session is not an error.
	Clear(ctx context.Context, userID domain.UserID) error
}
