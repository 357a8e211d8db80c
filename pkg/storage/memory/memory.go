// Package memory implements storage.Storage in process memory. It backs the
// "memory" database driver for local runs and the service tests.
//
// A transaction works on a copy of the state and swaps it in on commit, so
// concurrent transactions follow last-commit-wins semantics. Stored values are
// never mutated in place, which keeps copies shallow.
package memory

import (
	"context"
	"sync"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/storage"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// JobHandler receives every job that becomes visible, either right after
// AddJob or when the transaction that added it commits.
type JobHandler func(ctx context.Context, job Job)

type roleKey struct {
	user   domain.UserID
	domain domain.DomainID
}

type permissionKey struct {
	user      domain.UserID
	portfolio domain.PortfolioID
}

type state struct {
	users                map[domain.UserID]domain.User
	contacts             map[domain.ContactID]domain.Contact
	domains              map[domain.DomainID]domain.Domain
	information          map[domain.DomainID]domain.DomainInformation
	roles                map[roleKey]domain.UserDomainRole
	invitations          map[domain.InvitationID]domain.DomainInvitation
	requests             map[domain.DomainRequestID]domain.DomainRequest
	portfolios           map[domain.PortfolioID]domain.Portfolio
	suborganizations     map[domain.SuborganizationID]domain.Suborganization
	permissions          map[permissionKey]domain.UserPortfolioPermission
	portfolioInvitations map[domain.InvitationID]domain.PortfolioInvitation
	transitions          map[domain.TransitionDomainID]domain.TransitionDomain
	jobs                 []Job
}

func newState() *state {
	return &state{
		users:                map[domain.UserID]domain.User{},
		contacts:             map[domain.ContactID]domain.Contact{},
		domains:              map[domain.DomainID]domain.Domain{},
		information:          map[domain.DomainID]domain.DomainInformation{},
		roles:                map[roleKey]domain.UserDomainRole{},
		invitations:          map[domain.InvitationID]domain.DomainInvitation{},
		requests:             map[domain.DomainRequestID]domain.DomainRequest{},
		portfolios:           map[domain.PortfolioID]domain.Portfolio{},
		suborganizations:     map[domain.SuborganizationID]domain.Suborganization{},
		permissions:          map[permissionKey]domain.UserPortfolioPermission{},
		portfolioInvitations: map[domain.InvitationID]domain.PortfolioInvitation{},
		transitions:          map[domain.TransitionDomainID]domain.TransitionDomain{},
	}
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}

func (s *state) clone() *state {
	return &state{
		users:                copyMap(s.users),
		contacts:             copyMap(s.contacts),
		domains:              copyMap(s.domains),
		information:          copyMap(s.information),
		roles:                copyMap(s.roles),
		invitations:          copyMap(s.invitations),
		requests:             copyMap(s.requests),
		portfolios:           copyMap(s.portfolios),
		suborganizations:     copyMap(s.suborganizations),
		permissions:          copyMap(s.permissions),
		portfolioInvitations: copyMap(s.portfolioInvitations),
		transitions:          copyMap(s.transitions),
		jobs:                 append([]Job(nil), s.jobs...),
	}
}

// Memory implements storage.Storage and storage.TxStorage.
type Memory struct {
	mu    sync.Mutex
	st    *state
	now   func() time.Time
	onJob JobHandler

	// parent is set on transactional handles.
	parent  *Memory
	pending []Job
	done    bool
}

// Option configures a Memory storage.
type Option func(*Memory)

// WithClock replaces time.Now for created and updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// WithJobHandler registers the handler receiving added jobs.
func WithJobHandler(h JobHandler) Option {
	return func(m *Memory) { m.onJob = h }
}

// New returns an empty storage.
func New(opts ...Option) *Memory {
	m := &Memory{st: newState(), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

var (
	_ storage.Storage   = (*Memory)(nil)
	_ storage.TxStorage = (*Memory)(nil)
)

func (m *Memory) read(fn func(st *state)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.st)
}

func (m *Memory) write(fn func(st *state) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(m.st)
}

func (m *Memory) timestamp() time.Time {
	return m.now().UTC()
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Begin returns a handle working on a private copy of the current state.
func (m *Memory) Begin(_ context.Context) (storage.TxStorage, error) {
	if m.parent != nil {
		return nil, storage.ErrAlreadyInTx
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return &Memory{st: m.st.clone(), now: m.now, onJob: m.onJob, parent: m}, nil
}

// Commit publishes the transaction state and hands jobs added within it to
// the job handler.
func (m *Memory) Commit() error {
	if m.parent == nil || m.done {
		return storage.ErrNotInTx
	}
	m.mu.Lock()
	st, pending := m.st, m.pending
	m.done = true
	m.mu.Unlock()

	m.parent.mu.Lock()
	m.parent.st = st
	m.parent.mu.Unlock()

	m.parent.dispatch(context.Background(), pending)

	return nil
}

// Rollback discards the transaction state.
func (m *Memory) Rollback() error {
	if m.parent == nil || m.done {
		return storage.ErrNotInTx
	}
	m.mu.Lock()
	m.done = true
	m.pending = nil
	m.mu.Unlock()

	return nil
}

// WithTx runs cb in a transaction and commits when it returns nil.
func (m *Memory) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	return tx.Commit()
}

func newID[T ~[16]byte](id T) T {
	if id == T(uuid.Nil) {
		return T(uuid.New())
	}

	return id
}

// Job is an enqueued job as recorded by the memory storage.
type Job struct {
	Kind       string
	Args       river.JobArgs
	Opts       river.InsertOpts
	UniqueKey  string
	InsertedAt time.Time
}
