package postgres

import (
	"context"
	"fmt"

	"registrar/pkg/domain"
	"registrar/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const transitionDomainsTable = "transition_domains"

// UpsertTransitionDomain relies on xmax to tell inserted rows from updated ones:
// a freshly inserted row version has xmax = 0.
func (p *PgSQL) UpsertTransitionDomain(ctx context.Context,
	td domain.TransitionDomain) (*domain.TransitionDomain, bool, error) {
	var row PgTransitionDomain
	row.FromDomain(td)

	update := goqu.Record{"updated_at": goqu.L("CURRENT_TIMESTAMP")}
	for _, col := range []string{
		"status", "organization_type", "organization_name", "federal_type", "federal_agency",
		"epp_creation_date", "epp_expiration_date", "first_name", "middle_name", "last_name",
		"title", "email", "phone", "address_line", "city", "state_territory", "zipcode",
	} {
		update[col] = goqu.L("EXCLUDED." + col)
	}

	var result struct {
		PgTransitionDomain
		Inserted bool `db:"inserted"`
	}
	if _, err := p.Builder.Insert(transitionDomainsTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("username, domain_name", update)).
		Returning(goqu.Star(), goqu.L("(xmax = 0)").As("inserted")).
		Executor().ScanStructContext(ctx, &result); err != nil {
		return nil, false, fmt.Errorf("could not upsert transition domain into pg: %w", err)
	}
	out := result.ToDomain()

	return &out, result.Inserted, nil
}

func (p *PgSQL) TransitionDomains(ctx context.Context,
	filter storage.TransitionDomainFilter) ([]domain.TransitionDomain, error) {
	ds := p.Builder.From(transitionDomainsTable)
	if filter.OnlyUnprocessed {
		ds = ds.Where(goqu.I("processed").IsFalse())
	}
	if filter.OnlyEmailUnsent {
		ds = ds.Where(goqu.I("email_sent").IsFalse())
	}

	var rows []PgTransitionDomain
	if err := ds.Order(goqu.I("username").Asc(), goqu.I("domain_name").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not list transition domains from pg: %w", err)
	}
	out := make([]domain.TransitionDomain, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) markTransitionDomains(ctx context.Context, column string, ids []domain.TransitionDomainID) error {
	if len(ids) == 0 {
		return nil
	}
	uuids := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		uuids = append(uuids, uuid.UUID(id))
	}
	if _, err := p.Builder.Update(transitionDomainsTable).
		Set(goqu.Record{column: true, "updated_at": goqu.L("CURRENT_TIMESTAMP")}).
		Where(goqu.I("id").In(uuids)).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not set %s on transition domains in pg: %w", column, err)
	}

	return nil
}

func (p *PgSQL) MarkTransitionDomainsProcessed(ctx context.Context, ids ...domain.TransitionDomainID) error {
	return p.markTransitionDomains(ctx, "processed", ids)
}

func (p *PgSQL) MarkTransitionDomainsEmailSent(ctx context.Context, ids ...domain.TransitionDomainID) error {
	return p.markTransitionDomains(ctx, "email_sent", ids)
}

func (p *PgSQL) DeleteTransitionDomains(ctx context.Context) (int64, error) {
	res, err := p.Builder.Delete(transitionDomainsTable).Executor().ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not delete transition domains in pg: %w", err)
	}

	return affected(res), nil
}
