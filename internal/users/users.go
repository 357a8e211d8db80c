// Package users handles sign in of registrar users.
package users

import (
	"context"
	"fmt"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"
	"registrar/pkg/validate"

	"go.uber.org/zap"
)

type users struct {
	storage storage.Storage
	now     func() time.Time
}

// New creates the users service. now defaults to time.Now.
func New(storage storage.Storage, now func() time.Time) Users {
	if now == nil {
		now = time.Now
	}

	return &users{storage: storage, now: now}
}

func (u *users) SignIn(ctx context.Context, profile domain.User) (*domain.User, error) {
	profile.Email = domain.NormalizeEmail(profile.Email)
	if !validate.Email(profile.Email) {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid email %q", profile.Email)
	}

	var user *domain.User
	retrieved := 0
	err := u.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		var err error
		user, err = tx.UpsertUser(ctx, profile)
		if err != nil {
			return fmt.Errorf("could not store user: %w", err)
		}
		now := u.now().UTC()
		if err := tx.TouchLastLogin(ctx, user.ID, now); err != nil {
			return fmt.Errorf("could not record login: %w", err)
		}
		user.LastLogin = now

		pending, err := tx.PendingInvitationsByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("could not get pending invitations: %w", err)
		}
		for _, inv := range pending {
			if err := tx.AddDomainRole(ctx, domain.UserDomainRole{
				UserID: user.ID, DomainID: inv.DomainID, Role: domain.DomainRoleManager,
			}); err != nil {
				return fmt.Errorf("could not grant invited role: %w", err)
			}
			if err := tx.SetInvitationStatus(ctx, inv.ID, domain.InvitationStatusRetrieved); err != nil {
				return fmt.Errorf("could not retrieve invitation: %w", err)
			}
			retrieved++
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not sign in: %w", err)
	}

	if retrieved > 0 {
		logger.Info(ctx, "retrieved domain invitations",
			zap.String("userID", user.ID.String()), zap.Int("count", retrieved))
	}

	return user, nil
}

func (u *users) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := u.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}

	return user, nil
}
