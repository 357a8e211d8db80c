package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"registrar/pkg/domain"
	"registrar/pkg/storage"
)

func (m *Memory) StorePortfolio(_ context.Context, p domain.Portfolio) (*domain.Portfolio, error) {
	_ = m.write(func(st *state) error {
		now := m.timestamp()
		p.ID = newID(p.ID)
		p.CreatedAt = now
		p.UpdatedAt = now
		st.portfolios[p.ID] = p

		return nil
	})

	return &p, nil
}

func (m *Memory) UpdatePortfolio(_ context.Context, p domain.Portfolio) (*domain.Portfolio, error) {
	err := m.write(func(st *state) error {
		existing, ok := st.portfolios[p.ID]
		if !ok {
			return storage.ErrNotFound
		}
		p.CreatorID = existing.CreatorID
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = m.timestamp()
		st.portfolios[p.ID] = p

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (m *Memory) PortfolioByID(_ context.Context, id domain.PortfolioID) (*domain.Portfolio, error) {
	var out *domain.Portfolio
	m.read(func(st *state) {
		if p, ok := st.portfolios[id]; ok {
			out = &p
		}
	})

	return out, nil
}

func (m *Memory) Portfolios(_ context.Context, query storage.ListQuery) (storage.Page[domain.Portfolio], error) {
	var items []domain.Portfolio
	unfiltered := 0
	m.read(func(st *state) {
		unfiltered = len(st.portfolios)
		for _, p := range st.portfolios {
			if query.Search == "" || containsFold(p.OrganizationName, query.Search) {
				items = append(items, p)
			}
		}
	})
	query.Desc = false

	return pageOf(items, query, unfiltered, func(a, b domain.Portfolio) int {
		return cmp.Or(strings.Compare(a.OrganizationName, b.OrganizationName), compareID(a.ID, b.ID))
	}), nil
}

func (m *Memory) StoreSuborganization(_ context.Context, s domain.Suborganization) (*domain.Suborganization, error) {
	err := m.write(func(st *state) error {
		for _, existing := range st.suborganizations {
			if existing.PortfolioID == s.PortfolioID && existing.Name == s.Name {
				return fmt.Errorf("suborganization %q: %w", s.Name, storage.ErrDuplicate)
			}
		}
		s.ID = newID(s.ID)
		s.CreatedAt = m.timestamp()
		st.suborganizations[s.ID] = s

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (m *Memory) Suborganizations(_ context.Context, id domain.PortfolioID) ([]domain.Suborganization, error) {
	out := make([]domain.Suborganization, 0)
	m.read(func(st *state) {
		for _, s := range st.suborganizations {
			if s.PortfolioID == id {
				out = append(out, s)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.Suborganization) int { return strings.Compare(a.Name, b.Name) })

	return out, nil
}

func (m *Memory) SuborganizationByID(_ context.Context, id domain.SuborganizationID) (*domain.Suborganization, error) {
	var out *domain.Suborganization
	m.read(func(st *state) {
		if s, ok := st.suborganizations[id]; ok {
			out = &s
		}
	})

	return out, nil
}

func (m *Memory) UpsertPortfolioPermission(_ context.Context, p domain.UserPortfolioPermission) error {
	return m.write(func(st *state) error {
		key := permissionKey{user: p.UserID, portfolio: p.PortfolioID}
		if existing, ok := st.permissions[key]; ok {
			p.CreatedAt = existing.CreatedAt
		} else {
			p.CreatedAt = m.timestamp()
		}
		if p.Roles == nil {
			p.Roles = []domain.PortfolioRole{}
		}
		if p.AdditionalPermissions == nil {
			p.AdditionalPermissions = []domain.PortfolioPermission{}
		}
		st.permissions[key] = p

		return nil
	})
}

func (m *Memory) PortfolioPermission(_ context.Context,
	userID domain.UserID, id domain.PortfolioID) (*domain.UserPortfolioPermission, error) {
	var out *domain.UserPortfolioPermission
	m.read(func(st *state) {
		if p, ok := st.permissions[permissionKey{user: userID, portfolio: id}]; ok {
			out = &p
		}
	})

	return out, nil
}

func (m *Memory) PortfolioMembers(_ context.Context, id domain.PortfolioID) ([]domain.PortfolioMember, error) {
	out := make([]domain.PortfolioMember, 0)
	m.read(func(st *state) {
		for k, p := range st.permissions {
			if k.portfolio != id {
				continue
			}
			if u, ok := st.users[k.user]; ok {
				out = append(out, domain.PortfolioMember{User: u, Permission: p})
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.PortfolioMember) int { return strings.Compare(a.User.Email, b.User.Email) })

	return out, nil
}

func (m *Memory) StorePortfolioInvitation(_ context.Context,
	inv domain.PortfolioInvitation) (*domain.PortfolioInvitation, error) {
	inv.Email = domain.NormalizeEmail(inv.Email)
	err := m.write(func(st *state) error {
		for _, existing := range st.portfolioInvitations {
			if existing.Email == inv.Email && existing.PortfolioID == inv.PortfolioID {
				return fmt.Errorf("portfolio invitation for %s: %w", inv.Email, storage.ErrDuplicate)
			}
		}
		inv.ID = newID(inv.ID)
		if inv.Status == "" {
			inv.Status = domain.InvitationStatusInvited
		}
		if inv.Roles == nil {
			inv.Roles = []domain.PortfolioRole{}
		}
		if inv.AdditionalPermissions == nil {
			inv.AdditionalPermissions = []domain.PortfolioPermission{}
		}
		inv.CreatedAt = m.timestamp()
		st.portfolioInvitations[inv.ID] = inv

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

func (m *Memory) PortfolioInvitations(_ context.Context, id domain.PortfolioID) ([]domain.PortfolioInvitation, error) {
	out := make([]domain.PortfolioInvitation, 0)
	m.read(func(st *state) {
		for _, inv := range st.portfolioInvitations {
			if inv.PortfolioID == id && inv.Status == domain.InvitationStatusInvited {
				out = append(out, inv)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.PortfolioInvitation) int { return strings.Compare(a.Email, b.Email) })

	return out, nil
}
