// Package members lists the people of a portfolio.
package members

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"registrar/internal/access"
	"registrar/pkg/domain"
	"registrar/pkg/pagination"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"
)

type members struct {
	storage  storage.Storage
	pageSize int
}

// New creates the members service.
func New(storage storage.Storage, pageSize int) Members {
	return &members{storage: storage, pageSize: pageSize}
}

func (s *members) Table(ctx context.Context, viewer domain.User, portfolioID domain.PortfolioID,
	query storage.ListQuery) (storage.Page[Member], error) {
	if portfolioID.IsZero() {
		return storage.Page[Member]{}, serrors.With(serrors.ErrBadRequest, "portfolio is required")
	}
	grant, err := access.PortfolioGrant(ctx, s.storage, viewer, portfolioID)
	if err != nil {
		return storage.Page[Member]{}, err
	}
	if !grant.Has(domain.PermissionViewMembers) {
		return storage.Page[Member]{}, serrors.With(serrors.ErrForbidden, "you may not view the members of this portfolio")
	}

	grants, err := s.storage.PortfolioMembers(ctx, portfolioID)
	if err != nil {
		return storage.Page[Member]{}, fmt.Errorf("could not get portfolio members: %w", err)
	}
	invitations, err := s.storage.PortfolioInvitations(ctx, portfolioID)
	if err != nil {
		return storage.Page[Member]{}, fmt.Errorf("could not get portfolio invitations: %w", err)
	}

	editable := grant.Has(domain.PermissionEditMembers)
	all := make([]Member, 0, len(grants)+len(invitations))
	for _, g := range grants {
		all = append(all, Member{
			ID:          g.User.ID.String(),
			Name:        g.User.FullName(),
			Email:       g.User.Email,
			Roles:       g.Permission.Roles,
			Permissions: g.Permission.Permissions(),
			LastActive:  g.User.LastLogin,
			IsAdmin:     g.Permission.IsAdmin(),
			Editable:    editable,
		})
	}
	for _, inv := range invitations {
		all = append(all, Member{
			ID:          inv.ID.String(),
			Email:       inv.Email,
			Roles:       inv.Roles,
			Permissions: domain.PermissionsFor(inv.Roles, inv.AdditionalPermissions),
			IsAdmin:     slices.Contains(inv.Roles, domain.PortfolioRoleAdmin),
			Invited:     true,
			Editable:    editable,
		})
	}

	items := all
	if term := strings.ToLower(strings.TrimSpace(query.Search)); term != "" {
		items = make([]Member, 0, len(all))
		for _, m := range all {
			if strings.Contains(strings.ToLower(m.Name), term) || strings.Contains(m.Email, term) {
				items = append(items, m)
			}
		}
	}

	compare := compareMember
	if query.SortBy == SortLastActive {
		compare = func(a, b Member) int {
			return cmp.Or(a.LastActive.Compare(b.LastActive), compareMember(a, b))
		}
	}
	slices.SortStableFunc(items, func(a, b Member) int {
		if query.Desc {
			return compare(b, a)
		}

		return compare(a, b)
	})

	size := query.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	page := pagination.New(query.Page, size, len(items))

	return storage.Page[Member]{
		Items:           append([]Member{}, pagination.Slice(items, page)...),
		Page:            page,
		UnfilteredTotal: len(all),
	}, nil
}

func compareMember(a, b Member) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(a.Display()), strings.ToLower(b.Display())),
		strings.Compare(a.Email, b.Email),
	)
}
