package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/pagination"
	"registrar/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const (
	domainsTable           = "domains"
	domainInformationTable = "domain_information"
	domainRolesTable       = "user_domain_roles"
	domainInvitationsTable = "domain_invitations"
)

func (p *PgSQL) StoreDomain(ctx context.Context, d domain.Domain) (*domain.Domain, error) {
	var row PgDomain
	if err := row.FromDomain(d); err != nil {
		return nil, err
	}

	var result PgDomain
	if _, err := p.Builder.Insert(domainsTable).
		Rows(row).
		Returning(&PgDomain{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("domain %q: %w", d.Name, storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not store domain into pg: %w", err)
	}

	return result.ToDomain()
}

func (p *PgSQL) UpdateDomain(ctx context.Context, d domain.Domain) (*domain.Domain, error) {
	var row PgDomain
	if err := row.FromDomain(d); err != nil {
		return nil, err
	}

	var result PgDomain
	found, err := p.Builder.Update(domainsTable).
		Set(goqu.Record{
			"state":                  row.State,
			"expiration_date":        row.ExpirationDate,
			"first_ready":            row.FirstReady,
			"deleted_at":             row.DeletedAt,
			"security_contact_email": row.SecurityContactEmail,
			"nameservers":            row.Nameservers,
			"ds_data":                row.DSData,
			"updated_at":             goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(d.ID))).
		Returning(&PgDomain{}).
		Executor().ScanStructContext(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("could not update domain in pg: %w", err)
	}
	if !found {
		return nil, storage.ErrNotFound
	}

	return result.ToDomain()
}

// DeleteDomain removes the domain. Information, roles and invitations go with it
// through ON DELETE CASCADE.
func (p *PgSQL) DeleteDomain(ctx context.Context, id domain.DomainID) (bool, error) {
	res, err := p.Builder.Delete(domainsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete domain in pg: %w", err)
	}

	return affected(res) > 0, nil
}

func (p *PgSQL) domainWhere(ctx context.Context, where exp.Expression) (*domain.Domain, error) {
	var row PgDomain
	found, err := p.Builder.From(domainsTable).Where(where).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch domain from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

func (p *PgSQL) DomainByID(ctx context.Context, id domain.DomainID) (*domain.Domain, error) {
	return p.domainWhere(ctx, goqu.I("id").Eq(uuid.UUID(id)))
}

func (p *PgSQL) DomainByName(ctx context.Context, name string) (*domain.Domain, error) {
	return p.domainWhere(ctx, goqu.I("name").Eq(strings.ToLower(strings.TrimSpace(name))))
}

// statusKey mirrors domain.Domain.StatusKey in SQL.
func statusKey(today time.Time) exp.LiteralExpression {
	return goqu.L("(?)", goqu.Case().
		When(goqu.And(
			goqu.I("d.expiration_date").Lt(domain.Today(today)),
			goqu.I("d.state").Neq(string(domain.DomainStateUnknown)),
		), domain.DomainStatusExpired).
		When(goqu.I("d.state").Eq(string(domain.DomainStateDNSNeeded)), string(domain.DomainStateUnknown)).
		Else(goqu.I("d.state")))
}

func domainOrder(query storage.DomainQuery) []exp.OrderedExpression {
	dir := func(e exp.Orderable) exp.OrderedExpression {
		if query.Desc {
			return e.Desc().NullsLast()
		}

		return e.Asc().NullsFirst()
	}
	switch storage.DomainSort(query.SortBy) {
	case storage.DomainSortName:
		return []exp.OrderedExpression{dir(goqu.I("d.name"))}
	case storage.DomainSortExpirationDate:
		return []exp.OrderedExpression{dir(goqu.I("d.expiration_date")), dir(goqu.I("d.name"))}
	case storage.DomainSortStateDisplay:
		return []exp.OrderedExpression{dir(statusKey(query.Today)), dir(goqu.I("d.name"))}
	default:
		return []exp.OrderedExpression{dir(goqu.I("d.created_at")), dir(goqu.I("d.id"))}
	}
}

func (p *PgSQL) Domains(ctx context.Context, query storage.DomainQuery) (storage.Page[storage.DomainRow], error) {
	ds := p.Builder.From(goqu.T(domainsTable).As("d")).
		LeftJoin(goqu.T(domainInformationTable).As("di"), goqu.On(goqu.I("di.domain_id").Eq(goqu.I("d.id")))).
		LeftJoin(goqu.T(suborganizationsTable).As("so"), goqu.On(goqu.I("so.id").Eq(goqu.I("di.sub_organization_id"))))
	if !query.ManagerID.IsZero() {
		ds = ds.Where(goqu.I("d.id").In(
			p.Builder.From(domainRolesTable).
				Select("domain_id").
				Where(goqu.I("user_id").Eq(uuid.UUID(query.ManagerID))),
		))
	}
	if !query.PortfolioID.IsZero() {
		ds = ds.Where(goqu.I("di.portfolio_id").Eq(uuid.UUID(query.PortfolioID)))
	}
	unfiltered, err := count(ctx, ds)
	if err != nil {
		return storage.Page[storage.DomainRow]{}, err
	}

	if query.Search != "" {
		ds = ds.Where(goqu.I("d.name").ILike(contains(query.Search)))
	}
	if len(query.Statuses) > 0 {
		keys := make([]string, 0, len(query.Statuses))
		for _, s := range query.Statuses {
			keys = append(keys, domain.NormalizeStatusKey(s))
		}
		ds = ds.Where(statusKey(query.Today).In(keys))
	}
	total, err := count(ctx, ds)
	if err != nil {
		return storage.Page[storage.DomainRow]{}, err
	}

	page := pagination.New(query.Page, query.PageSize, total)
	var rows []PgDomainRow
	if err := ds.Select(goqu.L("d.*"), goqu.I("so.name").As("sub_organization_name")).
		Order(domainOrder(query)...).
		Offset(uint(page.Offset())).Limit(uint(page.Size)).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Page[storage.DomainRow]{}, fmt.Errorf("could not list domains from pg: %w", err)
	}

	items := make([]storage.DomainRow, 0, len(rows))
	for i := range rows {
		d, err := rows[i].ToDomain()
		if err != nil {
			return storage.Page[storage.DomainRow]{}, err
		}
		items = append(items, storage.DomainRow{Domain: *d, SubOrganizationName: rows[i].SubOrganizationName.String})
	}

	return storage.Page[storage.DomainRow]{Items: items, Page: page, UnfilteredTotal: unfiltered}, nil
}

// ReportDomains reads the domains and their organization in one query.
func (p *PgSQL) ReportDomains(ctx context.Context) ([]storage.ReportDomain, error) {
	org := func(col string) exp.AliasedExpression {
		return goqu.COALESCE(goqu.I("di."+col), "").As(col)
	}
	var rows []PgReportDomain
	if err := p.Builder.From(goqu.T(domainsTable).As("d")).
		LeftJoin(goqu.T(domainInformationTable).As("di"), goqu.On(goqu.I("di.domain_id").Eq(goqu.I("d.id")))).
		Select(goqu.L("d.*"), org("organization_type"), org("federal_type"), org("federal_agency"),
			org("organization_name"), org("city"), org("state_territory")).
		Order(goqu.I("d.name").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list report domains from pg: %w", err)
	}
	out := make([]storage.ReportDomain, 0, len(rows))
	for i := range rows {
		d, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, storage.ReportDomain{Domain: *d, Organization: rows[i].organization()})
	}

	return out, nil
}

func (p *PgSQL) StoreDomainInformation(ctx context.Context,
	info domain.DomainInformation) (*domain.DomainInformation, error) {
	var row PgDomainInformation
	row.FromDomain(info)

	var result PgDomainInformation
	if _, err := p.Builder.Insert(domainInformationTable).
		Rows(row).
		Returning(&PgDomainInformation{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("domain information of %s: %w", info.DomainID, storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not store domain information into pg: %w", err)
	}

	return result.ToDomain(), nil
}

func (p *PgSQL) UpdateDomainInformation(ctx context.Context,
	info domain.DomainInformation) (*domain.DomainInformation, error) {
	var row PgDomainInformation
	row.FromDomain(info)
	org := row.PgOrganization

	var result PgDomainInformation
	found, err := p.Builder.Update(domainInformationTable).
		Set(goqu.Record{
			"creator_id":                 row.CreatorID,
			"domain_request_id":          row.DomainRequestID,
			"portfolio_id":               row.PortfolioID,
			"sub_organization_id":        row.SubOrganizationID,
			"senior_official_id":         row.SeniorOfficialID,
			"organization_type":          org.OrganizationType,
			"federal_type":               org.FederalType,
			"federal_agency":             org.FederalAgency,
			"tribe_name":                 org.TribeName,
			"federally_recognized_tribe": org.FederallyRecognizedTribe,
			"state_recognized_tribe":     org.StateRecognizedTribe,
			"is_election_board":          org.IsElectionBoard,
			"organization_name":          org.OrganizationName,
			"address_line1":              org.AddressLine1,
			"address_line2":              org.AddressLine2,
			"city":                       org.City,
			"state_territory":            org.StateTerritory,
			"zipcode":                    org.Zipcode,
			"urbanization":               org.Urbanization,
			"about_your_organization":    org.AboutYourOrganization,
			"purpose":                    row.Purpose,
			"anything_else":              row.AnythingElse,
			"updated_at":                 goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("domain_id").Eq(uuid.UUID(info.DomainID))).
		Returning(&PgDomainInformation{}).
		Executor().ScanStructContext(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("could not update domain information in pg: %w", err)
	}
	if !found {
		return nil, storage.ErrNotFound
	}

	return result.ToDomain(), nil
}

func (p *PgSQL) DomainInformationByDomain(ctx context.Context,
	id domain.DomainID) (*domain.DomainInformation, error) {
	var row PgDomainInformation
	found, err := p.Builder.From(domainInformationTable).
		Where(goqu.I("domain_id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch domain information from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) AddDomainRole(ctx context.Context, role domain.UserDomainRole) error {
	if role.Role == "" {
		role.Role = domain.DomainRoleManager
	}
	_, err := p.Builder.Insert(domainRolesTable).
		Rows(PgUserDomainRole{
			UserID:   uuid.UUID(role.UserID),
			DomainID: uuid.UUID(role.DomainID),
			Role:     string(role.Role),
		}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not store domain role into pg: %w", err)
	}

	return nil
}

func (p *PgSQL) RemoveDomainRole(ctx context.Context, userID domain.UserID, domainID domain.DomainID) (bool, error) {
	res, err := p.Builder.Delete(domainRolesTable).
		Where(
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("domain_id").Eq(uuid.UUID(domainID)),
		).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete domain role in pg: %w", err)
	}

	return affected(res) > 0, nil
}

func (p *PgSQL) DomainManagers(ctx context.Context, id domain.DomainID) ([]domain.User, error) {
	var rows []PgUser
	if err := p.Builder.From(goqu.T(usersTable).As("u")).
		Join(goqu.T(domainRolesTable).As("r"), goqu.On(goqu.I("r.user_id").Eq(goqu.I("u.id")))).
		Select(goqu.L("u.*")).
		Where(goqu.I("r.domain_id").Eq(uuid.UUID(id))).
		Order(goqu.I("u.email").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list domain managers from pg: %w", err)
	}
	out := make([]domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) HasDomainRole(ctx context.Context, userID domain.UserID, domainID domain.DomainID) (bool, error) {
	n, err := count(ctx, p.Builder.From(domainRolesTable).Where(
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("domain_id").Eq(uuid.UUID(domainID)),
	))

	return n > 0, err
}

func (p *PgSQL) StoreDomainInvitations(ctx context.Context,
	invitations ...domain.DomainInvitation) ([]domain.DomainInvitation, error) {
	if len(invitations) == 0 {
		return nil, nil
	}
	type key struct {
		email    string
		domainID uuid.UUID
	}
	seen := make(map[key]struct{}, len(invitations))
	rows := make([]PgDomainInvitation, 0, len(invitations))
	for i := range invitations {
		var row PgDomainInvitation
		row.FromDomain(invitations[i])
		k := key{email: row.Email, domainID: row.DomainID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		rows = append(rows, row)
	}

	// a canceled invitation is reopened, any other existing one is kept
	var result []PgDomainInvitation
	if err := p.Builder.Insert(domainInvitationsTable).
		Rows(rows).
		OnConflict(goqu.DoUpdate("email, domain_id", goqu.Record{
			"status":     string(domain.InvitationStatusInvited),
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(goqu.T(domainInvitationsTable).Col("status").Eq(string(domain.InvitationStatusCanceled)))).
		Returning(&PgDomainInvitation{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store domain invitations into pg: %w", err)
	}

	return invitationsToDomain(result), nil
}

func invitationsToDomain(rows []PgDomainInvitation) []domain.DomainInvitation {
	out := make([]domain.DomainInvitation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}

	return out
}

func (p *PgSQL) DomainInvitationByID(ctx context.Context, id domain.InvitationID) (*domain.DomainInvitation, error) {
	var row PgDomainInvitation
	found, err := p.Builder.From(domainInvitationsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch domain invitation from pg: %w", err)
	}
	if !found {
		return nil, nil
	}
	inv := row.ToDomain()

	return &inv, nil
}

func (p *PgSQL) DomainInvitations(ctx context.Context, id domain.DomainID) ([]domain.DomainInvitation, error) {
	var rows []PgDomainInvitation
	if err := p.Builder.From(domainInvitationsTable).
		Where(goqu.I("domain_id").Eq(uuid.UUID(id))).
		Order(goqu.I("email").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list domain invitations from pg: %w", err)
	}

	return invitationsToDomain(rows), nil
}

func (p *PgSQL) PendingInvitationsByEmail(ctx context.Context, email string) ([]domain.DomainInvitation, error) {
	var rows []PgDomainInvitation
	if err := p.Builder.From(domainInvitationsTable).
		Where(
			goqu.I("email").Eq(domain.NormalizeEmail(email)),
			goqu.I("status").Eq(string(domain.InvitationStatusInvited)),
		).
		Order(goqu.I("created_at").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list pending invitations from pg: %w", err)
	}

	return invitationsToDomain(rows), nil
}

func (p *PgSQL) SetInvitationStatus(ctx context.Context, id domain.InvitationID, status domain.InvitationStatus) error {
	res, err := p.Builder.Update(domainInvitationsTable).
		Set(goqu.Record{"status": string(status), "updated_at": goqu.L("CURRENT_TIMESTAMP")}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update invitation status in pg: %w", err)
	}

	return requireAffected(res)
}
