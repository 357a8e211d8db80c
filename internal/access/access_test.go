package access_test

import (
	"context"
	"testing"

	"registrar/internal/access"
	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

func TestPortfolioGrant(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	member, err := m.UpsertUser(ctx, domain.User{Email: "member@example.gov"})
	require.NoError(t, err)
	stranger, err := m.UpsertUser(ctx, domain.User{Email: "stranger@example.gov"})
	require.NoError(t, err)
	p, err := m.StorePortfolio(ctx, domain.Portfolio{OrganizationName: "Agency"})
	require.NoError(t, err)
	require.NoError(t, m.UpsertPortfolioPermission(ctx, domain.UserPortfolioPermission{
		UserID: member.ID, PortfolioID: p.ID, Roles: []domain.PortfolioRole{domain.PortfolioRoleMember},
	}))

	grant, err := access.PortfolioGrant(ctx, m, *member, p.ID)
	require.NoError(t, err)
	require.False(t, grant.IsAdmin())
	require.True(t, grant.Has(domain.PermissionViewPortfolio))

	_, err = access.PortfolioGrant(ctx, m, *stranger, p.ID)
	require.ErrorIs(t, err, serrors.ErrForbidden)

	staff := *stranger
	staff.IsStaff = true
	grant, err = access.PortfolioGrant(ctx, m, staff, p.ID)
	require.NoError(t, err)
	require.True(t, grant.Has(domain.PermissionViewAllDomains))
}

func TestCanManageDomain(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	manager, err := m.UpsertUser(ctx, domain.User{Email: "manager@example.gov"})
	require.NoError(t, err)
	d, err := m.StoreDomain(ctx, domain.Domain{Name: "city.gov", State: domain.DomainStateReady})
	require.NoError(t, err)
	require.NoError(t, m.AddDomainRole(ctx, domain.UserDomainRole{UserID: manager.ID, DomainID: d.ID}))

	ok, err := access.CanManageDomain(ctx, m, *manager, d.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = access.CanManageDomain(ctx, m, domain.User{ID: domain.UserID{9}}, d.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = access.CanManageDomain(ctx, m, domain.User{IsStaff: true}, d.ID)
	require.NoError(t, err)
	require.True(t, ok)

	require.ErrorIs(t, access.RequireStaff(*manager), serrors.ErrForbidden)
}
