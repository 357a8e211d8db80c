package postgres

import (
	"context"
	"fmt"

	"registrar/pkg/domain"
	"registrar/pkg/pagination"
	"registrar/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const domainRequestsTable = "domain_requests"

func (p *PgSQL) StoreDomainRequest(ctx context.Context, r domain.DomainRequest) (*domain.DomainRequest, error) {
	var row PgDomainRequest
	if err := row.FromDomain(r); err != nil {
		return nil, err
	}

	var result PgDomainRequest
	if _, err := p.Builder.Insert(domainRequestsTable).
		Rows(row).
		Returning(&PgDomainRequest{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store domain request into pg: %w", err)
	}

	return result.ToDomain()
}

// UpdateDomainRequest rewrites every column except id, creator and created_at.
func (p *PgSQL) UpdateDomainRequest(ctx context.Context, r domain.DomainRequest) (*domain.DomainRequest, error) {
	var row PgDomainRequest
	if err := row.FromDomain(r); err != nil {
		return nil, err
	}
	org := row.PgOrganization

	var result PgDomainRequest
	found, err := p.Builder.Update(domainRequestsTable).
		Set(goqu.Record{
			"status":                      row.Status,
			"organization_type":           org.OrganizationType,
			"federal_type":                org.FederalType,
			"federal_agency":              org.FederalAgency,
			"tribe_name":                  org.TribeName,
			"federally_recognized_tribe":  org.FederallyRecognizedTribe,
			"state_recognized_tribe":      org.StateRecognizedTribe,
			"is_election_board":           org.IsElectionBoard,
			"organization_name":           org.OrganizationName,
			"address_line1":               org.AddressLine1,
			"address_line2":               org.AddressLine2,
			"city":                        org.City,
			"state_territory":             org.StateTerritory,
			"zipcode":                     org.Zipcode,
			"urbanization":                org.Urbanization,
			"about_your_organization":     org.AboutYourOrganization,
			"requested_domain":            row.RequestedDomain,
			"alternative_domains":         row.AlternativeDomains,
			"current_websites":            row.CurrentWebsites,
			"senior_official":             row.SeniorOfficial,
			"has_other_contacts":          row.HasOtherContacts,
			"other_contacts":              row.OtherContacts,
			"no_other_contacts_rationale": row.NoOtherContactsRationale,
			"purpose":                     row.Purpose,
			"has_cisa_representative":     row.HasCISARepresentative,
			"cisa_representative_email":   row.CISARepresentativeEmail,
			"has_anything_else":           row.HasAnythingElse,
			"anything_else":               row.AnythingElse,
			"is_policy_acknowledged":      row.IsPolicyAcknowledged,
			"portfolio_id":                row.PortfolioID,
			"sub_organization_id":         row.SubOrganizationID,
			"first_submitted_date":        row.FirstSubmittedDate,
			"last_submitted_date":         row.LastSubmittedDate,
			"last_status_update":          row.LastStatusUpdate,
			"rejection_reason":            row.RejectionReason,
			"action_needed_reason":        row.ActionNeededReason,
			"approved_domain_id":          row.ApprovedDomainID,
			"updated_at":                  goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(r.ID))).
		Returning(&PgDomainRequest{}).
		Executor().ScanStructContext(ctx, &result)
	if err != nil {
		return nil, fmt.Errorf("could not update domain request in pg: %w", err)
	}
	if !found {
		return nil, storage.ErrNotFound
	}

	return result.ToDomain()
}

func (p *PgSQL) DeleteDomainRequest(ctx context.Context, id domain.DomainRequestID) (bool, error) {
	res, err := p.Builder.Delete(domainRequestsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete domain request in pg: %w", err)
	}

	return affected(res) > 0, nil
}

func (p *PgSQL) DomainRequestByID(ctx context.Context, id domain.DomainRequestID) (*domain.DomainRequest, error) {
	var row PgDomainRequest
	found, err := p.Builder.From(domainRequestsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch domain request from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

func requestOrder(query storage.DomainRequestQuery) []exp.OrderedExpression {
	dir := func(e exp.Orderable) exp.OrderedExpression {
		if query.Desc {
			return e.Desc().NullsLast()
		}

		return e.Asc().NullsFirst()
	}
	var first exp.Orderable
	switch storage.DomainRequestSort(query.SortBy) {
	case storage.DomainRequestSortRequestedDomain:
		first = goqu.I("r.requested_domain")
	case storage.DomainRequestSortLastSubmittedDate:
		first = goqu.I("r.last_submitted_date")
	case storage.DomainRequestSortStatus:
		first = goqu.I("r.status")
	case storage.DomainRequestSortCreatedAt:
		first = goqu.I("r.created_at")
	default:
		return []exp.OrderedExpression{dir(goqu.I("r.created_at")), dir(goqu.I("r.id"))}
	}

	return []exp.OrderedExpression{dir(first), dir(goqu.I("r.created_at")), dir(goqu.I("r.id"))}
}

func (p *PgSQL) DomainRequests(ctx context.Context,
	query storage.DomainRequestQuery) (storage.Page[storage.DomainRequestRow], error) {
	ds := p.Builder.From(goqu.T(domainRequestsTable).As("r")).
		LeftJoin(goqu.T(usersTable).As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.creator_id"))))
	if !query.CreatorID.IsZero() {
		ds = ds.Where(goqu.I("r.creator_id").Eq(uuid.UUID(query.CreatorID)))
	}
	if !query.PortfolioID.IsZero() {
		ds = ds.Where(goqu.I("r.portfolio_id").Eq(uuid.UUID(query.PortfolioID)))
	}
	if query.ExcludeApproved {
		ds = ds.Where(goqu.I("r.status").Neq(string(domain.DomainRequestStatusApproved)))
	}
	unfiltered, err := count(ctx, ds)
	if err != nil {
		return storage.Page[storage.DomainRequestRow]{}, err
	}

	if query.Search != "" {
		ds = ds.Where(goqu.I("r.requested_domain").ILike(contains(query.Search)))
	}
	if len(query.Statuses) > 0 {
		statuses := make([]string, 0, len(query.Statuses))
		for _, s := range query.Statuses {
			statuses = append(statuses, string(s))
		}
		ds = ds.Where(goqu.I("r.status").In(statuses))
	}
	total, err := count(ctx, ds)
	if err != nil {
		return storage.Page[storage.DomainRequestRow]{}, err
	}

	page := pagination.New(query.Page, query.PageSize, total)
	var rows []PgDomainRequestRow
	if err := ds.Select(goqu.L("r.*"), goqu.I("u.email").As("creator_email")).
		Order(requestOrder(query)...).
		Offset(uint(page.Offset())).Limit(uint(page.Size)).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Page[storage.DomainRequestRow]{}, fmt.Errorf("could not list domain requests from pg: %w", err)
	}

	items := make([]storage.DomainRequestRow, 0, len(rows))
	for i := range rows {
		r, err := rows[i].ToDomain()
		if err != nil {
			return storage.Page[storage.DomainRequestRow]{}, err
		}
		items = append(items, storage.DomainRequestRow{DomainRequest: *r, CreatorEmail: rows[i].CreatorEmail.String})
	}

	return storage.Page[storage.DomainRequestRow]{Items: items, Page: page, UnfilteredTotal: unfiltered}, nil
}
