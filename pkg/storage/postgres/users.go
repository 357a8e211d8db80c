package postgres

import (
	"context"
	"fmt"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/pagination"
	"registrar/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const (
	usersTable    = "users"
	contactsTable = "contacts"
)

// UpsertUser inserts the user or refreshes the profile of the user with the same email.
func (p *PgSQL) UpsertUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var row PgUser
	row.FromDomain(user)

	var result PgUser
	if _, err := p.Builder.Insert(usersTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("email", goqu.Record{
			"first_name": goqu.L("EXCLUDED.first_name"),
			"last_name":  goqu.L("EXCLUDED.last_name"),
			"title":      goqu.L("EXCLUDED.title"),
			"phone":      goqu.L("EXCLUDED.phone"),
			"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		})).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not upsert user into pg: %w", err)
	}

	return result.ToDomain(), nil
}

func (p *PgSQL) userWhere(ctx context.Context, where ...exp.Expression) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).Where(where...).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return p.userWhere(ctx, goqu.I("id").Eq(uuid.UUID(id)))
}

func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return p.userWhere(ctx, goqu.I("email").Eq(domain.NormalizeEmail(email)))
}

func (p *PgSQL) Users(ctx context.Context, query storage.ListQuery) (storage.Page[domain.User], error) {
	ds := p.Builder.From(usersTable)
	unfiltered, err := count(ctx, ds)
	if err != nil {
		return storage.Page[domain.User]{}, err
	}
	if query.Search != "" {
		term := contains(query.Search)
		ds = ds.Where(goqu.Or(
			goqu.I("email").ILike(term),
			goqu.I("first_name").ILike(term),
			goqu.I("last_name").ILike(term),
		))
	}
	total, err := count(ctx, ds)
	if err != nil {
		return storage.Page[domain.User]{}, err
	}

	page := pagination.New(query.Page, query.PageSize, total)
	var rows []PgUser
	if err := ds.Order(goqu.I("email").Asc()).
		Offset(uint(page.Offset())).Limit(uint(page.Size)).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Page[domain.User]{}, fmt.Errorf("could not list users from pg: %w", err)
	}
	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].ToDomain())
	}

	return storage.Page[domain.User]{Items: users, Page: page, UnfilteredTotal: unfiltered}, nil
}

func (p *PgSQL) SetUserStatus(ctx context.Context, id domain.UserID, status domain.UserStatus) error {
	res, err := p.Builder.Update(usersTable).
		Set(goqu.Record{"status": string(status), "updated_at": goqu.L("CURRENT_TIMESTAMP")}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update user status in pg: %w", err)
	}

	return requireAffected(res)
}

func (p *PgSQL) TouchLastLogin(ctx context.Context, id domain.UserID, at time.Time) error {
	res, err := p.Builder.Update(usersTable).
		Set(goqu.Record{"last_login": at}).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not update last login in pg: %w", err)
	}

	return requireAffected(res)
}

func (p *PgSQL) StoreContacts(ctx context.Context, contacts ...domain.Contact) ([]domain.Contact, error) {
	if len(contacts) == 0 {
		return nil, nil
	}
	rows := make([]PgContact, len(contacts))
	for i := range contacts {
		rows[i].FromDomain(contacts[i])
	}

	var result []PgContact
	if err := p.Builder.Insert(contactsTable).
		Rows(rows).
		Returning(&PgContact{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store contacts into pg: %w", err)
	}
	out := make([]domain.Contact, 0, len(result))
	for i := range result {
		out = append(out, *result[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) UpdateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error) {
	var row PgContact
	found, err := p.Builder.Update(contactsTable).
		Set(goqu.Record{
			"first_name":  contact.FirstName,
			"middle_name": contact.MiddleName,
			"last_name":   contact.LastName,
			"title":       contact.Title,
			"email":       contact.Email,
			"phone":       contact.Phone,
			"updated_at":  goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(goqu.I("id").Eq(uuid.UUID(contact.ID))).
		Returning(&PgContact{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update contact in pg: %w", err)
	}
	if !found {
		return nil, storage.ErrNotFound
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) DeleteContact(ctx context.Context, id domain.ContactID) (bool, error) {
	res, err := p.Builder.Delete(contactsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not delete contact in pg: %w", err)
	}

	return affected(res) > 0, nil
}

func (p *PgSQL) ContactByID(ctx context.Context, id domain.ContactID) (*domain.Contact, error) {
	var row PgContact
	found, err := p.Builder.From(contactsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch contact from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) Contacts(ctx context.Context, query storage.ListQuery) (storage.Page[domain.Contact], error) {
	ds := p.Builder.From(contactsTable)
	unfiltered, err := count(ctx, ds)
	if err != nil {
		return storage.Page[domain.Contact]{}, err
	}
	if query.Search != "" {
		term := contains(query.Search)
		ds = ds.Where(goqu.Or(
			goqu.I("email").ILike(term),
			goqu.I("first_name").ILike(term),
			goqu.I("last_name").ILike(term),
		))
	}
	total, err := count(ctx, ds)
	if err != nil {
		return storage.Page[domain.Contact]{}, err
	}

	page := pagination.New(query.Page, query.PageSize, total)
	var rows []PgContact
	if err := ds.Order(goqu.I("last_name").Asc(), goqu.I("first_name").Asc(), goqu.I("id").Asc()).
		Offset(uint(page.Offset())).Limit(uint(page.Size)).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.Page[domain.Contact]{}, fmt.Errorf("could not list contacts from pg: %w", err)
	}
	contacts := make([]domain.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, *rows[i].ToDomain())
	}

	return storage.Page[domain.Contact]{Items: contacts, Page: page, UnfilteredTotal: unfiltered}, nil
}
