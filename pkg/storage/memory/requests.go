package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"registrar/pkg/domain"
	"registrar/pkg/storage"
)

func withEmptyLists(r domain.DomainRequest) domain.DomainRequest {
	if r.AlternativeDomains == nil {
		r.AlternativeDomains = []string{}
	}
	if r.CurrentWebsites == nil {
		r.CurrentWebsites = []string{}
	}
	if r.OtherContacts == nil {
		r.OtherContacts = []domain.Contact{}
	}

	return r
}

func (m *Memory) StoreDomainRequest(_ context.Context, r domain.DomainRequest) (*domain.DomainRequest, error) {
	r = withEmptyLists(r)
	_ = m.write(func(st *state) error {
		now := m.timestamp()
		r.ID = newID(r.ID)
		if r.Status == "" {
			r.Status = domain.DomainRequestStatusStarted
		}
		r.CreatedAt = now
		r.UpdatedAt = now
		st.requests[r.ID] = r

		return nil
	})

	return &r, nil
}

func (m *Memory) UpdateDomainRequest(_ context.Context, r domain.DomainRequest) (*domain.DomainRequest, error) {
	r = withEmptyLists(r)
	err := m.write(func(st *state) error {
		existing, ok := st.requests[r.ID]
		if !ok {
			return storage.ErrNotFound
		}
		r.CreatorID = existing.CreatorID
		r.CreatedAt = existing.CreatedAt
		r.UpdatedAt = m.timestamp()
		st.requests[r.ID] = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (m *Memory) DeleteDomainRequest(_ context.Context, id domain.DomainRequestID) (bool, error) {
	deleted := false
	_ = m.write(func(st *state) error {
		if _, ok := st.requests[id]; ok {
			delete(st.requests, id)
			deleted = true
		}

		return nil
	})

	return deleted, nil
}

func (m *Memory) DomainRequestByID(_ context.Context, id domain.DomainRequestID) (*domain.DomainRequest, error) {
	var out *domain.DomainRequest
	m.read(func(st *state) {
		if r, ok := st.requests[id]; ok {
			out = &r
		}
	})

	return out, nil
}

func requestCompare(sortBy string) func(a, b storage.DomainRequestRow) int {
	var first func(a, b storage.DomainRequestRow) int
	switch storage.DomainRequestSort(sortBy) {
	case storage.DomainRequestSortRequestedDomain:
		first = func(a, b storage.DomainRequestRow) int { return strings.Compare(a.RequestedDomain, b.RequestedDomain) }
	case storage.DomainRequestSortLastSubmittedDate:
		first = func(a, b storage.DomainRequestRow) int { return compareTime(a.LastSubmittedDate, b.LastSubmittedDate) }
	case storage.DomainRequestSortStatus:
		first = func(a, b storage.DomainRequestRow) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		first = func(storage.DomainRequestRow, storage.DomainRequestRow) int { return 0 }
	}

	return func(a, b storage.DomainRequestRow) int {
		return cmp.Or(first(a, b), compareTime(a.CreatedAt, b.CreatedAt), compareID(a.ID, b.ID))
	}
}

func (m *Memory) DomainRequests(_ context.Context,
	query storage.DomainRequestQuery) (storage.Page[storage.DomainRequestRow], error) {
	var items []storage.DomainRequestRow
	unfiltered := 0
	m.read(func(st *state) {
		for _, r := range st.requests {
			if !query.CreatorID.IsZero() && r.CreatorID != query.CreatorID {
				continue
			}
			if !query.PortfolioID.IsZero() && r.PortfolioID != query.PortfolioID {
				continue
			}
			if query.ExcludeApproved && r.Status == domain.DomainRequestStatusApproved {
				continue
			}
			unfiltered++
			if query.Search != "" && !containsFold(r.RequestedDomain, query.Search) {
				continue
			}
			if len(query.Statuses) > 0 && !slices.Contains(query.Statuses, r.Status) {
				continue
			}
			row := storage.DomainRequestRow{DomainRequest: r}
			if u, ok := st.users[r.CreatorID]; ok {
				row.CreatorEmail = u.Email
			}
			items = append(items, row)
		}
	})

	return pageOf(items, query.ListQuery, unfiltered, requestCompare(query.SortBy)), nil
}
