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

func (m *Memory) StoreDomain(_ context.Context, d domain.Domain) (*domain.Domain, error) {
	err := m.write(func(st *state) error {
		for _, existing := range st.domains {
			if existing.Name == d.Name {
				return fmt.Errorf("domain %q: %w", d.Name, storage.ErrDuplicate)
			}
		}
		now := m.timestamp()
		d.ID = newID(d.ID)
		d.CreatedAt = now
		d.UpdatedAt = now
		if d.Nameservers == nil {
			d.Nameservers = []domain.Nameserver{}
		}
		if d.DSData == nil {
			d.DSData = []domain.DSData{}
		}
		st.domains[d.ID] = d

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func (m *Memory) UpdateDomain(_ context.Context, d domain.Domain) (*domain.Domain, error) {
	err := m.write(func(st *state) error {
		existing, ok := st.domains[d.ID]
		if !ok {
			return storage.ErrNotFound
		}
		d.Name = existing.Name
		d.CreatedAt = existing.CreatedAt
		d.UpdatedAt = m.timestamp()
		if d.Nameservers == nil {
			d.Nameservers = []domain.Nameserver{}
		}
		if d.DSData == nil {
			d.DSData = []domain.DSData{}
		}
		st.domains[d.ID] = d

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// DeleteDomain removes the domain together with its information, roles and invitations.
func (m *Memory) DeleteDomain(_ context.Context, id domain.DomainID) (bool, error) {
	deleted := false
	_ = m.write(func(st *state) error {
		if _, ok := st.domains[id]; !ok {
			return nil
		}
		delete(st.domains, id)
		delete(st.information, id)
		for k := range st.roles {
			if k.domain == id {
				delete(st.roles, k)
			}
		}
		for k, inv := range st.invitations {
			if inv.DomainID == id {
				delete(st.invitations, k)
			}
		}
		deleted = true

		return nil
	})

	return deleted, nil
}

func (m *Memory) DomainByID(_ context.Context, id domain.DomainID) (*domain.Domain, error) {
	var out *domain.Domain
	m.read(func(st *state) {
		if d, ok := st.domains[id]; ok {
			out = &d
		}
	})

	return out, nil
}

func (m *Memory) DomainByName(_ context.Context, name string) (*domain.Domain, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var out *domain.Domain
	m.read(func(st *state) {
		for _, d := range st.domains {
			if d.Name == name {
				out = &d

				return
			}
		}
	})

	return out, nil
}

func domainCompare(query storage.DomainQuery) func(a, b storage.DomainRow) int {
	switch storage.DomainSort(query.SortBy) {
	case storage.DomainSortName:
		return func(a, b storage.DomainRow) int { return strings.Compare(a.Name, b.Name) }
	case storage.DomainSortExpirationDate:
		return func(a, b storage.DomainRow) int {
			return cmp.Or(compareTime(a.ExpirationDate, b.ExpirationDate), strings.Compare(a.Name, b.Name))
		}
	case storage.DomainSortStateDisplay:
		return func(a, b storage.DomainRow) int {
			return cmp.Or(
				strings.Compare(a.StatusKey(query.Today), b.StatusKey(query.Today)),
				strings.Compare(a.Name, b.Name),
			)
		}
	default:
		return func(a, b storage.DomainRow) int {
			return cmp.Or(compareTime(a.CreatedAt, b.CreatedAt), compareID(a.ID, b.ID))
		}
	}
}

func (m *Memory) Domains(_ context.Context, query storage.DomainQuery) (storage.Page[storage.DomainRow], error) {
	keys := make([]string, 0, len(query.Statuses))
	for _, s := range query.Statuses {
		keys = append(keys, domain.NormalizeStatusKey(s))
	}

	var items []storage.DomainRow
	unfiltered := 0
	m.read(func(st *state) {
		for _, d := range st.domains {
			if !query.ManagerID.IsZero() {
				if _, ok := st.roles[roleKey{user: query.ManagerID, domain: d.ID}]; !ok {
					continue
				}
			}
			info, hasInfo := st.information[d.ID]
			if !query.PortfolioID.IsZero() && (!hasInfo || info.PortfolioID != query.PortfolioID) {
				continue
			}
			unfiltered++
			if query.Search != "" && !containsFold(d.Name, query.Search) {
				continue
			}
			if len(keys) > 0 && !slices.Contains(keys, d.StatusKey(query.Today)) {
				continue
			}
			row := storage.DomainRow{Domain: d}
			if hasInfo {
				if so, ok := st.suborganizations[info.SubOrganizationID]; ok {
					row.SubOrganizationName = so.Name
				}
			}
			items = append(items, row)
		}
	})

	return pageOf(items, query.ListQuery, unfiltered, domainCompare(query)), nil
}

func (m *Memory) ReportDomains(_ context.Context) ([]storage.ReportDomain, error) {
	var out []storage.ReportDomain
	m.read(func(st *state) {
		out = make([]storage.ReportDomain, 0, len(st.domains))
		for id, d := range st.domains {
			row := storage.ReportDomain{Domain: d}
			if info, ok := st.information[id]; ok {
				row.Organization = info.Organization
			}
			out = append(out, row)
		}
	})
	slices.SortFunc(out, func(a, b storage.ReportDomain) int { return strings.Compare(a.Name, b.Name) })

	return out, nil
}

func (m *Memory) StoreDomainInformation(_ context.Context,
	info domain.DomainInformation) (*domain.DomainInformation, error) {
	err := m.write(func(st *state) error {
		if _, ok := st.information[info.DomainID]; ok {
			return fmt.Errorf("domain information of %s: %w", info.DomainID, storage.ErrDuplicate)
		}
		now := m.timestamp()
		info.ID = newID(info.ID)
		info.CreatedAt = now
		info.UpdatedAt = now
		st.information[info.DomainID] = info

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (m *Memory) UpdateDomainInformation(_ context.Context,
	info domain.DomainInformation) (*domain.DomainInformation, error) {
	err := m.write(func(st *state) error {
		existing, ok := st.information[info.DomainID]
		if !ok {
			return storage.ErrNotFound
		}
		info.ID = existing.ID
		info.CreatedAt = existing.CreatedAt
		info.UpdatedAt = m.timestamp()
		st.information[info.DomainID] = info

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (m *Memory) DomainInformationByDomain(_ context.Context,
	id domain.DomainID) (*domain.DomainInformation, error) {
	var out *domain.DomainInformation
	m.read(func(st *state) {
		if info, ok := st.information[id]; ok {
			out = &info
		}
	})

	return out, nil
}

func (m *Memory) AddDomainRole(_ context.Context, role domain.UserDomainRole) error {
	return m.write(func(st *state) error {
		key := roleKey{user: role.UserID, domain: role.DomainID}
		if _, ok := st.roles[key]; ok {
			return nil
		}
		if role.Role == "" {
			role.Role = domain.DomainRoleManager
		}
		role.CreatedAt = m.timestamp()
		st.roles[key] = role

		return nil
	})
}

func (m *Memory) RemoveDomainRole(_ context.Context, userID domain.UserID, domainID domain.DomainID) (bool, error) {
	removed := false
	_ = m.write(func(st *state) error {
		key := roleKey{user: userID, domain: domainID}
		if _, ok := st.roles[key]; ok {
			delete(st.roles, key)
			removed = true
		}

		return nil
	})

	return removed, nil
}

func (m *Memory) DomainManagers(_ context.Context, id domain.DomainID) ([]domain.User, error) {
	out := make([]domain.User, 0)
	m.read(func(st *state) {
		for k := range st.roles {
			if k.domain != id {
				continue
			}
			if u, ok := st.users[k.user]; ok {
				out = append(out, u)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.User) int { return strings.Compare(a.Email, b.Email) })

	return out, nil
}

func (m *Memory) HasDomainRole(_ context.Context, userID domain.UserID, domainID domain.DomainID) (bool, error) {
	has := false
	m.read(func(st *state) {
		_, has = st.roles[roleKey{user: userID, domain: domainID}]
	})

	return has, nil
}

// StoreDomainInvitations skips invitations whose email already has one for the
// domain, unless that one was canceled; canceled invitations are reopened.
func (m *Memory) StoreDomainInvitations(_ context.Context,
	invitations ...domain.DomainInvitation) ([]domain.DomainInvitation, error) {
	out := make([]domain.DomainInvitation, 0, len(invitations))
	_ = m.write(func(st *state) error {
		now := m.timestamp()
	next:
		for _, inv := range invitations {
			inv.Email = domain.NormalizeEmail(inv.Email)
			for id, existing := range st.invitations {
				if existing.Email != inv.Email || existing.DomainID != inv.DomainID {
					continue
				}
				if existing.Status == domain.InvitationStatusCanceled {
					existing.Status = domain.InvitationStatusInvited
					existing.UpdatedAt = now
					st.invitations[id] = existing
					out = append(out, existing)
				}

				continue next
			}
			inv.ID = newID(inv.ID)
			if inv.Status == "" {
				inv.Status = domain.InvitationStatusInvited
			}
			inv.CreatedAt = now
			inv.UpdatedAt = now
			st.invitations[inv.ID] = inv
			out = append(out, inv)
		}

		return nil
	})

	return out, nil
}

func (m *Memory) DomainInvitationByID(_ context.Context, id domain.InvitationID) (*domain.DomainInvitation, error) {
	var out *domain.DomainInvitation
	m.read(func(st *state) {
		if inv, ok := st.invitations[id]; ok {
			out = &inv
		}
	})

	return out, nil
}

func (m *Memory) invitationsWhere(match func(inv domain.DomainInvitation) bool,
	compare func(a, b domain.DomainInvitation) int) []domain.DomainInvitation {
	out := make([]domain.DomainInvitation, 0)
	m.read(func(st *state) {
		for _, inv := range st.invitations {
			if match(inv) {
				out = append(out, inv)
			}
		}
	})
	slices.SortFunc(out, compare)

	return out
}

func (m *Memory) DomainInvitations(_ context.Context, id domain.DomainID) ([]domain.DomainInvitation, error) {
	return m.invitationsWhere(
		func(inv domain.DomainInvitation) bool { return inv.DomainID == id },
		func(a, b domain.DomainInvitation) int { return strings.Compare(a.Email, b.Email) },
	), nil
}

func (m *Memory) PendingInvitationsByEmail(_ context.Context, email string) ([]domain.DomainInvitation, error) {
	email = domain.NormalizeEmail(email)

	return m.invitationsWhere(
		func(inv domain.DomainInvitation) bool {
			return inv.Email == email && inv.Status == domain.InvitationStatusInvited
		},
		func(a, b domain.DomainInvitation) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	), nil
}

func (m *Memory) SetInvitationStatus(_ context.Context, id domain.InvitationID, status domain.InvitationStatus) error {
	return m.write(func(st *state) error {
		inv, ok := st.invitations[id]
		if !ok {
			return storage.ErrNotFound
		}
		inv.Status = status
		inv.UpdatedAt = m.timestamp()
		st.invitations[id] = inv

		return nil
	})
}
