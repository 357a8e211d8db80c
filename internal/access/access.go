// Package access answers who may see and change what.
package access

import (
	"context"
	"fmt"

	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"
)

// PortfolioGrant returns the viewer's grant in the portfolio. Staff without a
// grant of their own get a synthetic admin grant. Viewers without a grant get
// ErrForbidden.
func PortfolioGrant(ctx context.Context, s storage.PortfolioStorage, viewer domain.User,
	id domain.PortfolioID) (*domain.UserPortfolioPermission, error) {
	grant, err := s.PortfolioPermission(ctx, viewer.ID, id)
	if err != nil {
		return nil, fmt.Errorf("could not get portfolio permission: %w", err)
	}
	if grant != nil {
		return grant, nil
	}
	if viewer.IsStaff {
		return &domain.UserPortfolioPermission{
			UserID:      viewer.ID,
			PortfolioID: id,
			Roles:       []domain.PortfolioRole{domain.PortfolioRoleAdmin},
		}, nil
	}

	return nil, serrors.With(serrors.ErrForbidden, "you are not a member of this portfolio")
}

// RequireStaff fails with ErrForbidden unless the viewer is staff.
func RequireStaff(viewer domain.User) error {
	if !viewer.IsStaff {
		return serrors.With(serrors.ErrForbidden, "only staff may do this")
	}

	return nil
}

// CanManageDomain reports whether the viewer may change the domain.
func CanManageDomain(ctx context.Context, s storage.DomainStorage, viewer domain.User,
	id domain.DomainID) (bool, error) {
	if viewer.IsStaff {
		return true, nil
	}
	has, err := s.HasDomainRole(ctx, viewer.ID, id)
	if err != nil {
		return false, fmt.Errorf("could not check domain role: %w", err)
	}

	return has, nil
}
