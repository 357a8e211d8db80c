package session_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func testStore(t *testing.T, store session.Store) {
	t.Helper()
	ctx := context.Background()
	user := domain.UserID(uuid.New())
	request := domain.DomainRequestID(uuid.New())

	_, err := store.CurrentRequest(ctx, user)
	require.ErrorIs(t, err, session.ErrNoSession)

	require.NoError(t, store.SetCurrentRequest(ctx, user, request))
	got, err := store.CurrentRequest(ctx, user)
	require.NoError(t, err)
	require.Equal(t, request, got)

	other := domain.DomainRequestID(uuid.New())
	require.NoError(t, store.SetCurrentRequest(ctx, user, other))
	got, err = store.CurrentRequest(ctx, user)
	require.NoError(t, err)
	require.Equal(t, other, got)

	require.NoError(t, store.Clear(ctx, user))
	require.NoError(t, store.Clear(ctx, user))
	_, err = store.CurrentRequest(ctx, user)
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestMemory(t *testing.T) {
	testStore(t, session.NewMemory(time.Hour))
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemory(time.Millisecond)
	user := domain.UserID(uuid.New())

	require.NoError(t, store.SetCurrentRequest(ctx, user, domain.DomainRequestID(uuid.New())))
	time.Sleep(5 * time.Millisecond)
	_, err := store.CurrentRequest(ctx, user)
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestRedis(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379"},
			WaitingFor:   wait.ForListeningPort("6379"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	store, err := session.NewRedis(ctx, session.RedisOptions{
		URL: fmt.Sprintf("redis://%s:%d/0", host, port.Int()),
		TTL: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	testStore(t, store)
}
