package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"registrar/pkg/domain"
	"registrar/pkg/storage"
)

func (m *Memory) UpsertTransitionDomain(_ context.Context,
	td domain.TransitionDomain) (*domain.TransitionDomain, bool, error) {
	td.Username = domain.NormalizeEmail(td.Username)
	created := false
	_ = m.write(func(st *state) error {
		now := m.timestamp()
		for id, existing := range st.transitions {
			if existing.Username != td.Username || existing.DomainName != td.DomainName {
				continue
			}
			td.ID = id
			td.EmailSent = existing.EmailSent
			td.Processed = existing.Processed
			td.CreatedAt = existing.CreatedAt
			td.UpdatedAt = now
			st.transitions[id] = td

			return nil
		}
		td.ID = newID(td.ID)
		td.CreatedAt = now
		td.UpdatedAt = now
		st.transitions[td.ID] = td
		created = true

		return nil
	})

	return &td, created, nil
}

func (m *Memory) TransitionDomains(_ context.Context,
	filter storage.TransitionDomainFilter) ([]domain.TransitionDomain, error) {
	out := make([]domain.TransitionDomain, 0)
	m.read(func(st *state) {
		for _, td := range st.transitions {
			if filter.OnlyUnprocessed && td.Processed {
				continue
			}
			if filter.OnlyEmailUnsent && td.EmailSent {
				continue
			}
			out = append(out, td)
		}
	})
	slices.SortFunc(out, func(a, b domain.TransitionDomain) int {
		return cmp.Or(strings.Compare(a.Username, b.Username), strings.Compare(a.DomainName, b.DomainName))
	})

	return out, nil
}

func (m *Memory) markTransitionDomains(ids []domain.TransitionDomainID, mark func(td *domain.TransitionDomain)) {
	_ = m.write(func(st *state) error {
		now := m.timestamp()
		for _, id := range ids {
			td, ok := st.transitions[id]
			if !ok {
				continue
			}
			mark(&td)
			td.UpdatedAt = now
			st.transitions[id] = td
		}

		return nil
	})
}

func (m *Memory) MarkTransitionDomainsProcessed(_ context.Context, ids ...domain.TransitionDomainID) error {
	m.markTransitionDomains(ids, func(td *domain.TransitionDomain) { td.Processed = true })

	return nil
}

func (m *Memory) MarkTransitionDomainsEmailSent(_ context.Context, ids ...domain.TransitionDomainID) error {
	m.markTransitionDomains(ids, func(td *domain.TransitionDomain) { td.EmailSent = true })

	return nil
}

func (m *Memory) DeleteTransitionDomains(_ context.Context) (int64, error) {
	var n int64
	_ = m.write(func(st *state) error {
		n = int64(len(st.transitions))
		st.transitions = map[domain.TransitionDomainID]domain.TransitionDomain{}

		return nil
	})

	return n, nil
}
