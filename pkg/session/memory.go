package session

import (
	"context"
	"sync"
	"time"

	"registrar/pkg/domain"
)

type entry struct {
	id      domain.DomainRequestID
	expires time.Time
}

// Memory keeps sessions in process memory. Expired entries are dropped lazily.
type Memory struct {
	mu      sync.Mutex
	entries map[domain.UserID]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty store. A zero ttl keeps sessions forever.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: map[domain.UserID]entry{}, ttl: ttl, now: time.Now}
}

func (m *Memory) CurrentRequest(_ context.Context, userID domain.UserID) (domain.DomainRequestID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[userID]
	if !ok {
		return domain.DomainRequestID{}, ErrNoSession
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		delete(m.entries, userID)

		return domain.DomainRequestID{}, ErrNoSession
	}

	return e.id, nil
}

func (m *Memory) SetCurrentRequest(_ context.Context, userID domain.UserID, id domain.DomainRequestID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{id: id}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.entries[userID] = e

	return nil
}

func (m *Memory) Clear(_ context.Context, userID domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)

	return nil
}
