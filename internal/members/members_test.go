package members_test

import (
	"context"
	"testing"
	"time"

	"registrar/internal/members"
	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"
	"registrar/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

func TestMembers_Table(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := members.New(st, 10)

	p, err := st.StorePortfolio(ctx, domain.Portfolio{OrganizationName: "Agency"})
	require.NoError(t, err)
	admin, err := st.UpsertUser(ctx, domain.User{Email: "admin@agency.gov", FirstName: "Zoe", LastName: "Admin"})
	require.NoError(t, err)
	require.NoError(t, st.TouchLastLogin(ctx, admin.ID, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	member, err := st.UpsertUser(ctx, domain.User{Email: "bob@agency.gov"})
	require.NoError(t, err)
	require.NoError(t, st.TouchLastLogin(ctx, member.ID, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)))
	outsider, err := st.UpsertUser(ctx, domain.User{Email: "outsider@example.gov"})
	require.NoError(t, err)

	require.NoError(t, st.UpsertPortfolioPermission(ctx, domain.UserPortfolioPermission{
		UserID: admin.ID, PortfolioID: p.ID, Roles: []domain.PortfolioRole{domain.PortfolioRoleAdmin},
	}))
	require.NoError(t, st.UpsertPortfolioPermission(ctx, domain.UserPortfolioPermission{
		UserID: member.ID, PortfolioID: p.ID, Roles: []domain.PortfolioRole{domain.PortfolioRoleMember},
	}))
	_, err = st.StorePortfolioInvitation(ctx, domain.PortfolioInvitation{
		Email: "amy@agency.gov", PortfolioID: p.ID, Roles: []domain.PortfolioRole{domain.PortfolioRoleMember},
	})
	require.NoError(t, err)

	t.Run("sorted by member display", func(t *testing.T) {
		page, err := svc.Table(ctx, *admin, p.ID, storage.ListQuery{})
		require.NoError(t, err)
		require.Equal(t, 3, page.UnfilteredTotal)
		require.Len(t, page.Items, 3)
		require.Equal(t, "amy@agency.gov", page.Items[0].Display())
		require.True(t, page.Items[0].Invited)
		require.Equal(t, "bob@agency.gov", page.Items[1].Display())
		require.Equal(t, "Zoe Admin", page.Items[2].Display())
		require.True(t, page.Items[2].IsAdmin)
		require.Contains(t, page.Items[2].Permissions, domain.PermissionEditMembers)
	})

	t.Run("last active descending", func(t *testing.T) {
		page, err := svc.Table(ctx, *admin, p.ID, storage.ListQuery{SortBy: members.SortLastActive, Desc: true})
		require.NoError(t, err)
		require.Equal(t, "bob@agency.gov", page.Items[0].Email)
		require.Equal(t, "admin@agency.gov", page.Items[1].Email)
		require.True(t, page.Items[2].Invited)
	})

	t.Run("search by name and email", func(t *testing.T) {
		page, err := svc.Table(ctx, *admin, p.ID, storage.ListQuery{Search: "ZOE"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		require.Equal(t, 3, page.UnfilteredTotal)

		page, err = svc.Table(ctx, *admin, p.ID, storage.ListQuery{Search: "agency.gov", PageSize: 2, Page: 5})
		require.NoError(t, err)
		require.Equal(t, 2, page.Page.Number)
		require.Len(t, page.Items, 1)
	})

	t.Run("permissions", func(t *testing.T) {
		_, err := svc.Table(ctx, *member, p.ID, storage.ListQuery{})
		require.ErrorIs(t, err, serrors.ErrForbidden)
		_, err = svc.Table(ctx, *outsider, p.ID, storage.ListQuery{})
		require.ErrorIs(t, err, serrors.ErrForbidden)
		_, err = svc.Table(ctx, *admin, domain.PortfolioID{}, storage.ListQuery{})
		require.ErrorIs(t, err, serrors.ErrBadRequest)
	})
}
