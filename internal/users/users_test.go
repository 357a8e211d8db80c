package users_test

import (
	"context"
	"testing"
	"time"

	"registrar/internal/users"
	"registrar/pkg/domain"
	"registrar/pkg/serrors"
	"registrar/pkg/storage/memory"

	"github.com/stretchr/testify/require"
)

func TestUsers_SignIn(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	st := memory.New()
	svc := users.New(st, func() time.Time { return now })

	d, err := st.StoreDomain(ctx, domain.Domain{Name: "city.gov", State: domain.DomainStateReady})
	require.NoError(t, err)
	_, err = st.StoreDomainInvitations(ctx, domain.DomainInvitation{Email: "new@city.gov", DomainID: d.ID})
	require.NoError(t, err)

	user, err := svc.SignIn(ctx, domain.User{Email: " New@City.gov ", FirstName: "New"})
	require.NoError(t, err)
	require.Equal(t, "new@city.gov", user.Email)
	require.Equal(t, now, user.LastLogin)

	has, err := st.HasDomainRole(ctx, user.ID, d.ID)
	require.NoError(t, err)
	require.True(t, has)
	pending, err := st.PendingInvitationsByEmail(ctx, "new@city.gov")
	require.NoError(t, err)
	require.Empty(t, pending)

	again, err := svc.SignIn(ctx, domain.User{Email: "new@city.gov", FirstName: "Renamed"})
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
	require.Equal(t, "Renamed", again.FirstName)

	_, err = svc.SignIn(ctx, domain.User{Email: "not-an-email"})
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestUsers_Get(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := users.New(st, nil)

	_, err := svc.Get(ctx, domain.UserID{1})
	require.ErrorIs(t, err, serrors.ErrNotFound)

	u, err := st.UpsertUser(ctx, domain.User{Email: "a@city.gov"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
}
