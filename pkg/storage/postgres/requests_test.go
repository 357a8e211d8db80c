package postgres_test

import (
	"context"
	"testing"

	"registrar/pkg/domain"
	"registrar/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_DomainRequests(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	creator := createUser(t, pg, "creator@example.gov")
	yes := true

	started, err := pg.StoreDomainRequest(ctx, domain.DomainRequest{
		CreatorID: creator.ID,
		Status:    domain.DomainRequestStatusStarted,
		Organization: domain.Organization{
			Type:            domain.OrganizationTypeCity,
			IsElectionBoard: &yes,
		},
		RequestedDomain: "springfield.gov",
		SeniorOfficial:  &domain.Contact{FirstName: "Marge", LastName: "Simpson"},
		OtherContacts:   []domain.Contact{{FirstName: "Ned", Email: "ned@springfield.gov"}},
	})
	require.NoError(t, err)
	require.Equal(t, domain.OrganizationTypeCity, started.Type)
	require.True(t, *started.IsElectionBoard)
	require.Equal(t, "Marge", started.SeniorOfficial.FirstName)
	require.Len(t, started.OtherContacts, 1)
	require.Nil(t, started.HasOtherContacts)

	started.Purpose = "city services"
	started.AlternativeDomains = []string{"springfieldcity.gov"}
	updated, err := pg.UpdateDomainRequest(ctx, *started)
	require.NoError(t, err)
	require.Equal(t, "city services", updated.Purpose)
	require.Equal(t, []string{"springfieldcity.gov"}, updated.AlternativeDomains)

	_, err = pg.StoreDomainRequest(ctx, domain.DomainRequest{
		CreatorID:       creator.ID,
		Status:          domain.DomainRequestStatusApproved,
		RequestedDomain: "approved.gov",
	})
	require.NoError(t, err)
	_, err = pg.StoreDomainRequest(ctx, domain.DomainRequest{
		CreatorID:       creator.ID,
		Status:          domain.DomainRequestStatusSubmitted,
		RequestedDomain: "shelbyville.gov",
	})
	require.NoError(t, err)

	q := storage.DomainRequestQuery{CreatorID: creator.ID, ExcludeApproved: true}
	q.PageSize = 10
	q.SortBy = string(storage.DomainRequestSortRequestedDomain)
	page, err := pg.DomainRequests(ctx, q)
	require.NoError(t, err)
	require.Equal(t, 2, page.UnfilteredTotal)
	require.Len(t, page.Items, 2)
	require.Equal(t, "shelbyville.gov", page.Items[0].RequestedDomain)
	require.Equal(t, "creator@example.gov", page.Items[0].CreatorEmail)

	q.Statuses = []domain.DomainRequestStatus{domain.DomainRequestStatusStarted}
	q.Search = "SPRING"
	page, err = pg.DomainRequests(ctx, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, started.ID, page.Items[0].ID)

	deleted, err := pg.DeleteDomainRequest(ctx, started.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	missing, err := pg.DomainRequestByID(ctx, started.ID)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestPgSQL_TransitionDomains(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	td, created, err := pg.UpsertTransitionDomain(ctx, domain.TransitionDomain{
		Username:   "Owner@Example.gov",
		DomainName: "legacy.gov",
		Status:     domain.TransitionDomainStatusReady,
	})
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := pg.UpsertTransitionDomain(ctx, domain.TransitionDomain{
		Username:   "owner@example.gov",
		DomainName: "legacy.gov",
		Status:     domain.TransitionDomainStatusOnHold,
	})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, td.ID, again.ID)
	require.Equal(t, domain.TransitionDomainStatusOnHold, again.Status)

	require.NoError(t, pg.MarkTransitionDomainsProcessed(ctx, td.ID))
	rows, err := pg.TransitionDomains(ctx, storage.TransitionDomainFilter{OnlyUnprocessed: true})
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = pg.TransitionDomains(ctx, storage.TransitionDomainFilter{OnlyEmailUnsent: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	n, err := pg.DeleteTransitionDomains(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestPgSQL_Tables(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	createUser(t, pg, "export@example.gov")

	columns, rows, err := pg.ReadTable(ctx, "users")
	require.NoError(t, err)
	require.Contains(t, columns, "email")
	require.Len(t, rows, 1)

	n, err := pg.ClearTable(ctx, "users")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = pg.WriteTable(ctx, "users", columns, rows)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = pg.WriteTable(ctx, "users", columns, rows)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)

	_, _, err = pg.ReadTable(ctx, "pg_user")
	require.Error(t, err)
}
