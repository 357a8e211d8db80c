package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_StoreDomain(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	d, err := pg.StoreDomain(ctx, domain.Domain{
		Name:        "city.gov",
		State:       domain.DomainStateReady,
		Nameservers: []domain.Nameserver{{Host: "ns1.city.gov", IPs: []string{"1.2.3.4"}}},
	})
	require.NoError(t, err)
	require.False(t, d.ID.IsZero())
	require.Equal(t, []domain.Nameserver{{Host: "ns1.city.gov", IPs: []string{"1.2.3.4"}}}, d.Nameservers)
	require.Empty(t, d.DSData)

	_, err = pg.StoreDomain(ctx, domain.Domain{Name: "city.gov", State: domain.DomainStateUnknown})
	require.ErrorIs(t, err, storage.ErrDuplicate)

	byName, err := pg.DomainByName(ctx, "  CITY.gov ")
	require.NoError(t, err)
	require.Equal(t, d.ID, byName.ID)

	d.State = domain.DomainStateOnHold
	d.DSData = []domain.DSData{{KeyTag: 1, Algorithm: 13, DigestType: 2, Digest: "ab"}}
	updated, err := pg.UpdateDomain(ctx, *d)
	require.NoError(t, err)
	require.Equal(t, domain.DomainStateOnHold, updated.State)
	require.Len(t, updated.DSData, 1)
	require.False(t, updated.UpdatedAt.IsZero())

	deleted, err := pg.DeleteDomain(ctx, d.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	missing, err := pg.DomainByID(ctx, d.ID)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_Domains(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	manager := createUser(t, pg, "manager@example.gov")
	other := createUser(t, pg, "other@example.gov")

	states := []domain.DomainState{
		domain.DomainStateReady, domain.DomainStateDNSNeeded, domain.DomainStateOnHold,
	}
	for i := range 12 {
		exp := today.AddDate(1, 0, 0)
		if i == 0 {
			exp = today.AddDate(0, 0, -1)
		}
		d, err := pg.StoreDomain(ctx, domain.Domain{
			Name:           fmt.Sprintf("agency%02d.gov", i),
			State:          states[i%len(states)],
			ExpirationDate: exp,
		})
		require.NoError(t, err)
		require.NoError(t, pg.AddDomainRole(ctx, domain.UserDomainRole{UserID: manager.ID, DomainID: d.ID}))
	}
	foreign, err := pg.StoreDomain(ctx, domain.Domain{Name: "foreign.gov", State: domain.DomainStateReady})
	require.NoError(t, err)
	require.NoError(t, pg.AddDomainRole(ctx, domain.UserDomainRole{UserID: other.ID, DomainID: foreign.ID}))

	base := storage.DomainQuery{ManagerID: manager.ID, Today: today}
	base.PageSize = 10

	t.Run("pages over managed domains", func(t *testing.T) {
		q := base
		q.Page = 2
		q.SortBy = string(storage.DomainSortName)
		page, err := pg.Domains(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 12, page.Page.Total)
		require.Equal(t, 12, page.UnfilteredTotal)
		require.Equal(t, 2, page.Page.NumPages)
		require.Len(t, page.Items, 2)
		require.Equal(t, "agency10.gov", page.Items[0].Name)
	})

	t.Run("out of range page clamps", func(t *testing.T) {
		q := base
		q.Page = 40
		page, err := pg.Domains(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 2, page.Page.Number)
	})

	t.Run("search and status filters", func(t *testing.T) {
		q := base
		q.Search = "AGENCY0"
		q.Statuses = []string{"expired"}
		page, err := pg.Domains(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 12, page.UnfilteredTotal)
		require.Len(t, page.Items, 1)
		require.Equal(t, "agency00.gov", page.Items[0].Name)

		q.Statuses = []string{"ready"}
		page, err = pg.Domains(ctx, q)
		require.NoError(t, err)
		for _, item := range page.Items {
			require.Equal(t, "ready", item.StatusKey(today))
		}
	})

	t.Run("dns needed filter matches unknown key", func(t *testing.T) {
		q := base
		q.Statuses = []string{"dns needed"}
		page, err := pg.Domains(ctx, q)
		require.NoError(t, err)
		require.Equal(t, 4, page.Page.Total)
	})
}

func TestPgSQL_ReportDomains(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	agency, err := pg.StoreDomain(ctx, domain.Domain{Name: "agency.gov", State: domain.DomainStateReady})
	require.NoError(t, err)
	_, err = pg.StoreDomainInformation(ctx, domain.DomainInformation{DomainID: agency.ID, Organization: domain.Organization{
		Type: domain.OrganizationTypeFederal, FederalType: domain.FederalTypeExecutive,
		FederalAgency: "Department of Examples", OrganizationName: "Examples", City: "Washington", StateTerritory: "DC",
	}})
	require.NoError(t, err)
	_, err = pg.StoreDomain(ctx, domain.Domain{Name: "bare.gov", State: domain.DomainStateUnknown})
	require.NoError(t, err)

	rows, err := pg.ReportDomains(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "agency.gov", rows[0].Name)
	require.Equal(t, domain.OrganizationTypeFederal, rows[0].Organization.Type)
	require.Equal(t, domain.FederalTypeExecutive, rows[0].Organization.FederalType)
	require.Equal(t, "Department of Examples", rows[0].Organization.FederalAgency)
	require.Equal(t, "DC", rows[0].Organization.StateTerritory)
	require.Equal(t, "bare.gov", rows[1].Name)
	require.Equal(t, domain.Organization{}, rows[1].Organization)
}

func TestPgSQL_DomainRolesAndInvitations(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	u := createUser(t, pg, "role@example.gov")
	d, err := pg.StoreDomain(ctx, domain.Domain{Name: "roles.gov", State: domain.DomainStateUnknown})
	require.NoError(t, err)

	require.NoError(t, pg.AddDomainRole(ctx, domain.UserDomainRole{UserID: u.ID, DomainID: d.ID}))
	require.NoError(t, pg.AddDomainRole(ctx, domain.UserDomainRole{UserID: u.ID, DomainID: d.ID}))
	managers, err := pg.DomainManagers(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, managers, 1)

	has, err := pg.HasDomainRole(ctx, u.ID, d.ID)
	require.NoError(t, err)
	require.True(t, has)

	invs, err := pg.StoreDomainInvitations(ctx,
		domain.DomainInvitation{Email: "Invitee@Example.gov", DomainID: d.ID},
		domain.DomainInvitation{Email: "invitee@example.gov", DomainID: d.ID},
	)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	require.Equal(t, "invitee@example.gov", invs[0].Email)

	pending, err := pg.PendingInvitationsByEmail(ctx, "INVITEE@example.gov")
	require.NoError(t, err)
	require.Len(t, pending, 1)


	require.NoError(t, pg.SetInvitationStatus(ctx, invs[0].ID, domain.InvitationStatusCanceled))
	reopened, err := pg.StoreDomainInvitations(ctx, domain.DomainInvitation{Email: "invitee@example.gov", DomainID: d.ID})
	require.NoError(t, err)
	require.Len(t, reopened, 1)
	require.Equal(t, invs[0].ID, reopened[0].ID)
	require.Equal(t, domain.InvitationStatusInvited, reopened[0].Status)
	reopened, err = pg.StoreDomainInvitations(ctx, domain.DomainInvitation{Email: "invitee@example.gov", DomainID: d.ID})
	require.NoError(t, err)
	require.Empty(t, reopened)
	require.NoError(t, pg.SetInvitationStatus(ctx, invs[0].ID, domain.InvitationStatusRetrieved))
	pending, err = pg.PendingInvitationsByEmail(ctx, "invitee@example.gov")
	require.NoError(t, err)
	require.Empty(t, pending)

	removed, err := pg.RemoveDomainRole(ctx, u.ID, d.ID)
	require.NoError(t, err)
	require.True(t, removed)
}
