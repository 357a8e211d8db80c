package users

import (
	"context"

	"registrar/pkg/domain"
)

//go:generate mockgen -package mockusers -source=interface.go -destination=mock/mockusers.go *
type Users interface {
	// SignIn creates or refreshes the user behind a login and turns pending
	// domain invitations for its email into manager roles.
	SignIn(ctx context.Context, profile domain.User) (*domain.User, error)
	// Get returns the user or a NOT_FOUND error.
	Get(ctx context.Context, id domain.UserID) (*domain.User, error)
}
