package postgres

import (
	"context"
	"fmt"

	"registrar/pkg/domain"
	"registrar/pkg/pagination"
	"registrar/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	portfoliosTable           = "portfolios"
	suborganizationsTable     = "suborganizations"
	portfolioPermissionsTable = "user_portfolio_permissions"
	portfolioInvitationsTable = "portfolio_invitations"
)

func (p *PgSQL) StorePortfolio(ctx context.Context, in domain.Portfolio) (*domain.Portfolio, error) {
	var row PgPortfolio
	if err := row.FromDomain(in); err != nil {
		return nil, err
	}

	var result PgPortfolio
	if _, err := p.Builder.Insert(portfoliosTable).
		Rows(row).
		Returning(&PgPortfolio{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store portfolio into pg: %w", err)
	}

	return result.ToDomain()
}

func (p *PgSQL) UpdatePortfolio(ctx context.Context, in domain.Portfolio) (*domain.Portfolio, error) {
	var row PgPortfolio
	if err := row.FromDomain(in); err != nil {
		return nil, err
	}

	var result PgPortfolio
	found, err := p.Builder.Update(portfoliosTable).
		Set(goqu.Record{
			"organization_name": row.OrganizationName,
			"organization_type": row.OrganizationType,
			"federal_agency":    row.FederalAgency,
			"address_line1":     row.AddressLine1,
			"address_line2":     row.AddressLine2,
			"city":              row.City,
			"state_territory":   row.StateTerritory,
			"zipcode":           row.Zipcode,
			"senior_official":   row.SeniorOfficial,
			"updated_at":        goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(in.ID))).
		Returning(&PgPortfolio{}).
		Executor().ScanStructContext(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("could not update portfolio in pg: %w", err)
	}
	if !found {
		return nil, storage.ErrNotFound
	}

	return result.ToDomain()
}

func (p *PgSQL) PortfolioByID(ctx context.Context, id domain.PortfolioID) (*domain.Portfolio, error) {
	var row PgPortfolio
	found, err := p.Builder.From(portfoliosTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch portfolio from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

func (p *PgSQL) Portfolios(ctx context.Context, query storage.ListQuery) (storage.Page[domain.Portfolio], error) {
	ds := p.Builder.From(portfoliosTable)
	unfiltered, err := count(ctx, ds)
	if err != nil {
		return storage.Page[domain.Portfolio]{}, err
	}
	if query.Search != "" {
		ds = ds.Where(goqu.I("organization_name").ILike(contains(query.Search)))
	}
	total, err := count(ctx, ds)
	if err != nil {
		return storage.Page[domain.Portfolio]{}, err
	}

	page := pagination.New(query.Page, query.PageSize, total)
	var rows []PgPortfolio
	if err := ds.Order(goqu.I("organization_name").Asc(), goqu.I("id").Asc()).
		Offset(uint(page.Offset())).Limit(uint(page.Size)).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Page[domain.Portfolio]{}, fmt.Errorf("could not list portfolios from pg: %w", err)
	}
	items := make([]domain.Portfolio, 0, len(rows))
	for i := range rows {
		pf, err := rows[i].ToDomain()
		if err != nil {
			return storage.Page[domain.Portfolio]{}, err
		}
		items = append(items, *pf)
	}

	return storage.Page[domain.Portfolio]{Items: items, Page: page, UnfilteredTotal: unfiltered}, nil
}

func (p *PgSQL) StoreSuborganization(ctx context.Context, s domain.Suborganization) (*domain.Suborganization, error) {
	row := PgSuborganization{
		ID:          newID(uuid.UUID(s.ID)),
		PortfolioID: uuid.UUID(s.PortfolioID),
		Name:        s.Name,
	}

	var result PgSuborganization
	if _, err := p.Builder.Insert(suborganizationsTable).
		Rows(row).
		Returning(&PgSuborganization{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("suborganization %q: %w", s.Name, storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not store suborganization into pg: %w", err)
	}
	out := result.ToDomain()

	return &out, nil
}

func (p *PgSQL) Suborganizations(ctx context.Context, id domain.PortfolioID) ([]domain.Suborganization, error) {
	var rows []PgSuborganization
	if err := p.Builder.From(suborganizationsTable).
		Where(goqu.I("portfolio_id").Eq(uuid.UUID(id))).
		Order(goqu.I("name").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list suborganizations from pg: %w", err)
	}
	out := make([]domain.Suborganization, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) SuborganizationByID(ctx context.Context, id domain.SuborganizationID) (*domain.Suborganization, error) {
	var row PgSuborganization
	found, err := p.Builder.From(suborganizationsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch suborganization from pg: %w", err)
	}
	if !found {
		return nil, nil
	}
	out := row.ToDomain()

	return &out, nil
}

func (p *PgSQL) UpsertPortfolioPermission(ctx context.Context, perm domain.UserPortfolioPermission) error {
	roles, perms, err := rolesJSON(perm.Roles, perm.AdditionalPermissions)
	if err != nil {
		return err
	}
	_, err = p.Builder.Insert(portfolioPermissionsTable).
		Rows(PgPortfolioPermission{
			UserID:                uuid.UUID(perm.UserID),
			PortfolioID:           uuid.UUID(perm.PortfolioID),
			Roles:                 roles,
			AdditionalPermissions: perms,
		}).
		OnConflict(goqu.DoUpdate("user_id, portfolio_id", goqu.Record{
			"roles":                  goqu.L("EXCLUDED.roles"),
			"additional_permissions": goqu.L("EXCLUDED.additional_permissions"),
		})).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not upsert portfolio permission into pg: %w", err)
	}

	return nil
}

func (p *PgSQL) PortfolioPermission(ctx context.Context,
	userID domain.UserID, id domain.PortfolioID) (*domain.UserPortfolioPermission, error) {
	var row PgPortfolioPermission
	found, err := p.Builder.From(portfolioPermissionsTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("portfolio_id").Eq(uuid.UUID(id)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch portfolio permission from pg: %w", err)
	}
	if !found {
		return nil, nil
	}
	perm, err := row.ToDomain()
	if err != nil {
		return nil, err
	}

	return &perm, nil
}

// PortfolioMembers loads the grants first and their users with a second query.
func (p *PgSQL) PortfolioMembers(ctx context.Context, id domain.PortfolioID) ([]domain.PortfolioMember, error) {
	var perms []PgPortfolioPermission
	if err := p.Builder.From(portfolioPermissionsTable).
		Where(goqu.I("portfolio_id").Eq(uuid.UUID(id))).
		Executor().ScanStructsContext(ctx, &perms); err != nil {
		return nil, fmt.Errorf("could not list portfolio permissions from pg: %w", err)
	}
	if len(perms) == 0 {
		return []domain.PortfolioMember{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(perms))
	for _, perm := range perms {
		userIDs = append(userIDs, perm.UserID)
	}
	var users []PgUser
	if err := p.Builder.From(usersTable).
		Where(goqu.I("id").In(userIDs)).
		Executor().ScanStructsContext(ctx, &users); err != nil {
		return nil, fmt.Errorf("could not list portfolio users from pg: %w", err)
	}
	byID := make(map[uuid.UUID]PgUser, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]domain.PortfolioMember, 0, len(perms))
	for i := range perms {
		u, ok := byID[perms[i].UserID]
		if !ok {
			continue
		}
		perm, err := perms[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PortfolioMember{User: *u.ToDomain(), Permission: perm})
	}

	return out, nil
}

func (p *PgSQL) StorePortfolioInvitation(ctx context.Context,
	inv domain.PortfolioInvitation) (*domain.PortfolioInvitation, error) {
	roles, perms, err := rolesJSON(inv.Roles, inv.AdditionalPermissions)
	if err != nil {
		return nil, err
	}
	status := inv.Status
	if status == "" {
		status = domain.InvitationStatusInvited
	}

	var result PgPortfolioInvitation
	if _, err := p.Builder.Insert(portfolioInvitationsTable).
		Rows(PgPortfolioInvitation{
			ID:                    newID(uuid.UUID(inv.ID)),
			Email:                 domain.NormalizeEmail(inv.Email),
			PortfolioID:           uuid.UUID(inv.PortfolioID),
			Roles:                 roles,
			AdditionalPermissions: perms,
			Status:                string(status),
		}).
		Returning(&PgPortfolioInvitation{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("portfolio invitation for %s: %w", inv.Email, storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not store portfolio invitation into pg: %w", err)
	}
	out, err := result.ToDomain()
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (p *PgSQL) PortfolioInvitations(ctx context.Context, id domain.PortfolioID) ([]domain.PortfolioInvitation, error) {
	var rows []PgPortfolioInvitation
	if err := p.Builder.From(portfolioInvitationsTable).
		Where(
			goqu.I("portfolio_id").Eq(uuid.UUID(id)),
			goqu.I("status").Eq(string(domain.InvitationStatusInvited)),
		).
		Order(goqu.I("email").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list portfolio invitations from pg: %w", err)
	}
	out := make([]domain.PortfolioInvitation, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}

	return out, nil
}
