package memory

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/pagination"
	"registrar/pkg/storage"
)

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func matchesAny(term string, values ...string) bool {
	for _, v := range values {
		if containsFold(v, term) {
			return true
		}
	}

	return false
}

func compareID[T ~[16]byte](a, b T) int {
	return bytes.Compare(a[:], b[:])
}

func compareTime(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return -1
	case b.IsZero():
		return 1
	default:
		return a.Compare(b)
	}
}

// pageOf sorts, filters and windows items the way the SQL listings do.
func pageOf[T any](items []T, query storage.ListQuery, unfiltered int, compare func(a, b T) int) storage.Page[T] {
	slices.SortStableFunc(items, func(a, b T) int {
		if query.Desc {
			return compare(b, a)
		}

		return compare(a, b)
	})
	page := pagination.New(query.Page, query.PageSize, len(items))

	return storage.Page[T]{
		Items:           append([]T{}, pagination.Slice(items, page)...),
		Page:            page,
		UnfilteredTotal: unfiltered,
	}
}

func (m *Memory) UpsertUser(_ context.Context, user domain.User) (*domain.User, error) {
	var out domain.User
	_ = m.write(func(st *state) error {
		email := domain.NormalizeEmail(user.Email)
		now := m.timestamp()
		for id, existing := range st.users {
			if existing.Email != email {
				continue
			}
			existing.FirstName = user.FirstName
			existing.LastName = user.LastName
			existing.Title = user.Title
			existing.Phone = user.Phone
			existing.UpdatedAt = now
			st.users[id] = existing
			out = existing

			return nil
		}
		user.ID = newID(user.ID)
		user.Email = email
		user.CreatedAt = now
		user.UpdatedAt = now
		st.users[user.ID] = user
		out = user

		return nil
	})

	return &out, nil
}

func (m *Memory) UserByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	var out *domain.User
	m.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})

	return out, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	var out *domain.User
	m.read(func(st *state) {
		for _, u := range st.users {
			if u.Email == email {
				out = &u

				return
			}
		}
	})

	return out, nil
}

func (m *Memory) Users(_ context.Context, query storage.ListQuery) (storage.Page[domain.User], error) {
	var items []domain.User
	unfiltered := 0
	m.read(func(st *state) {
		unfiltered = len(st.users)
		for _, u := range st.users {
			if query.Search == "" || matchesAny(query.Search, u.Email, u.FirstName, u.LastName) {
				items = append(items, u)
			}
		}
	})
	query.Desc = false

	return pageOf(items, query, unfiltered, func(a, b domain.User) int {
		return strings.Compare(a.Email, b.Email)
	}), nil
}

func (m *Memory) SetUserStatus(_ context.Context, id domain.UserID, status domain.UserStatus) error {
	return m.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return storage.ErrNotFound
		}
		u.Status = status
		u.UpdatedAt = m.timestamp()
		st.users[id] = u

		return nil
	})
}

func (m *Memory) TouchLastLogin(_ context.Context, id domain.UserID, at time.Time) error {
	return m.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return storage.ErrNotFound
		}
		u.LastLogin = at
		st.users[id] = u

		return nil
	})
}

func (m *Memory) StoreContacts(_ context.Context, contacts ...domain.Contact) ([]domain.Contact, error) {
	out := make([]domain.Contact, 0, len(contacts))
	_ = m.write(func(st *state) error {
		now := m.timestamp()
		for _, c := range contacts {
			c.ID = newID(c.ID)
			c.CreatedAt = now
			c.UpdatedAt = now
			st.contacts[c.ID] = c
			out = append(out, c)
		}

		return nil
	})

	return out, nil
}

func (m *Memory) UpdateContact(_ context.Context, contact domain.Contact) (*domain.Contact, error) {
	var out domain.Contact
	err := m.write(func(st *state) error {
		existing, ok := st.contacts[contact.ID]
		if !ok {
			return storage.ErrNotFound
		}
		contact.CreatedAt = existing.CreatedAt
		contact.UpdatedAt = m.timestamp()
		st.contacts[contact.ID] = contact
		out = contact

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (m *Memory) DeleteContact(_ context.Context, id domain.ContactID) (bool, error) {
	deleted := false
	_ = m.write(func(st *state) error {
		if _, ok := st.contacts[id]; ok {
			delete(st.contacts, id)
			deleted = true
		}

		return nil
	})

	return deleted, nil
}

func (m *Memory) ContactByID(_ context.Context, id domain.ContactID) (*domain.Contact, error) {
	var out *domain.Contact
	m.read(func(st *state) {
		if c, ok := st.contacts[id]; ok {
			out = &c
		}
	})

	return out, nil
}

func (m *Memory) Contacts(_ context.Context, query storage.ListQuery) (storage.Page[domain.Contact], error) {
	var items []domain.Contact
	unfiltered := 0
	m.read(func(st *state) {
		unfiltered = len(st.contacts)
		for _, c := range st.contacts {
			if query.Search == "" || matchesAny(query.Search, c.Email, c.FirstName, c.LastName) {
				items = append(items, c)
			}
		}
	})
	query.Desc = false

	return pageOf(items, query, unfiltered, func(a, b domain.Contact) int {
		return cmp.Or(
			strings.Compare(a.LastName, b.LastName),
			strings.Compare(a.FirstName, b.FirstName),
			compareID(a.ID, b.ID),
		)
	}), nil
}
