// Package admin implements the staff back office.
package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"registrar/internal/access"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"
	"registrar/pkg/validate"

	"go.uber.org/zap"
)

type admin struct {
	storage  storage.Storage
	pageSize int
	now      func() time.Time
}

// New creates the admin service. now defaults to time.Now.
func New(storage storage.Storage, pageSize int, now func() time.Time) Admin {
	if now == nil {
		now = time.Now
	}

	return &admin{storage: storage, pageSize: pageSize, now: now}
}

func (a *admin) list(query storage.ListQuery) storage.ListQuery {
	if query.PageSize <= 0 {
		query.PageSize = a.pageSize
	}

	return query
}

func (a *admin) Users(ctx context.Context, viewer domain.User, query storage.ListQuery) (storage.Page[domain.User], error) {
	if err := access.RequireStaff(viewer); err != nil {
		return storage.Page[domain.User]{}, err
	}
	page, err := a.storage.Users(ctx, a.list(query))
	if err != nil {
		return storage.Page[domain.User]{}, fmt.Errorf("could not list users: %w", err)
	}

	return page, nil
}

func (a *admin) SetUserStatus(ctx context.Context, viewer domain.User, id domain.UserID,
	status domain.UserStatus) (*domain.User, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	if status != domain.UserStatusActive && status != domain.UserStatusRestricted {
		return nil, serrors.With(serrors.ErrBadRequest, "unknown user status %q", status)
	}
	err := a.storage.SetUserStatus(ctx, id, status)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("could not set user status: %w", err)
	}
	logger.Info(ctx, "changed user status",
		zap.String("userID", id.String()), zap.String("status", string(status)), zap.String("staff", viewer.Email))

	user, err := a.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	return user, nil
}

func validateContact(c domain.Contact) serrors.FieldErrors {
	errs := serrors.FieldErrors{}
	if strings.TrimSpace(c.FirstName) == "" {
		errs.Add("first_name", "Enter the first name / given name.")
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs.Add("last_name", "Enter the last name / family name.")
	}
	if c.Email != "" && !validate.Email(c.Email) {
		errs.Add("email", "Enter an email address in the required format, like name@example.com.")
	}
	if c.Phone != "" && !validate.Phone(c.Phone) {
		errs.Add("phone", "Enter a valid 10-digit phone number.")
	}

	return errs
}

func (a *admin) Contacts(ctx context.Context, viewer domain.User,
	query storage.ListQuery) (storage.Page[domain.Contact], error) {
	if err := access.RequireStaff(viewer); err != nil {
		return storage.Page[domain.Contact]{}, err
	}
	page, err := a.storage.Contacts(ctx, a.list(query))
	if err != nil {
		return storage.Page[domain.Contact]{}, fmt.Errorf("could not list contacts: %w", err)
	}

	return page, nil
}

func (a *admin) CreateContact(ctx context.Context, viewer domain.User, contact domain.Contact) (*domain.Contact, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	contact.ID = domain.ContactID{}
	if errs := validateContact(contact); !errs.Empty() {
		return nil, serrors.Invalid(errs, "invalid contact")
	}
	stored, err := a.storage.StoreContacts(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("could not store contact: %w", err)
	}

	return &stored[0], nil
}

func (a *admin) UpdateContact(ctx context.Context, viewer domain.User, contact domain.Contact) (*domain.Contact, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	if errs := validateContact(contact); !errs.Empty() {
		return nil, serrors.Invalid(errs, "invalid contact")
	}
	out, err := a.storage.UpdateContact(ctx, contact)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, serrors.With(serrors.ErrNotFound, "contact not found")
	}
	if err != nil {
		return nil, fmt.Errorf("could not update contact: %w", err)
	}

	return out, nil
}

func (a *admin) DeleteContact(ctx context.Context, viewer domain.User, id domain.ContactID) error {
	if err := access.RequireStaff(viewer); err != nil {
		return err
	}
	deleted, err := a.storage.DeleteContact(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete contact: %w", err)
	}
	if !deleted {
		return serrors.With(serrors.ErrNotFound, "contact not found")
	}

	return nil
}

func validatePortfolio(p domain.Portfolio) serrors.FieldErrors {
	errs := serrors.FieldErrors{}
	if strings.TrimSpace(p.OrganizationName) == "" {
		errs.Add("organization_name", "Enter the name of the organization.")
	}
	if p.OrganizationType != "" && !p.OrganizationType.Valid() {
		errs.Add("organization_type", "Select a valid organization type.")
	}
	if p.Zipcode != "" && !validate.Zipcode(p.Zipcode) {
		errs.Add("zipcode", "Enter a 5-digit or 9-digit zip code, like 12345 or 12345-6789.")
	}
	if p.SeniorOfficial != nil {
		for field, msgs := range validateContact(*p.SeniorOfficial) {
			for _, msg := range msgs {
				errs.Add("senior_official."+field, msg)
			}
		}
	}

	return errs
}

func (a *admin) Portfolios(ctx context.Context, viewer domain.User,
	query storage.ListQuery) (storage.Page[domain.Portfolio], error) {
	if err := access.RequireStaff(viewer); err != nil {
		return storage.Page[domain.Portfolio]{}, err
	}
	page, err := a.storage.Portfolios(ctx, a.list(query))
	if err != nil {
		return storage.Page[domain.Portfolio]{}, fmt.Errorf("could not list portfolios: %w", err)
	}

	return page, nil
}

func (a *admin) CreatePortfolio(ctx context.Context, viewer domain.User, p domain.Portfolio) (*domain.Portfolio, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	if errs := validatePortfolio(p); !errs.Empty() {
		return nil, serrors.Invalid(errs, "invalid portfolio")
	}
	p.ID = domain.PortfolioID{}
	p.CreatorID = viewer.ID
	out, err := a.storage.StorePortfolio(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("could not store portfolio: %w", err)
	}
	logger.Info(ctx, "created portfolio", zap.String("portfolioID", out.ID.String()), zap.String("name", out.OrganizationName))

	return out, nil
}

func (a *admin) UpdatePortfolio(ctx context.Context, viewer domain.User, p domain.Portfolio) (*domain.Portfolio, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	if errs := validatePortfolio(p); !errs.Empty() {
		return nil, serrors.Invalid(errs, "invalid portfolio")
	}
	out, err := a.storage.UpdatePortfolio(ctx, p)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, serrors.With(serrors.ErrNotFound, "portfolio not found")
	}
	if err != nil {
		return nil, fmt.Errorf("could not update portfolio: %w", err)
	}

	return out, nil
}

// portfolio returns the portfolio or NOT_FOUND.
func (a *admin) portfolio(ctx context.Context, id domain.PortfolioID) (*domain.Portfolio, error) {
	p, err := a.storage.PortfolioByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get portfolio: %w", err)
	}
	if p == nil {
		return nil, serrors.With(serrors.ErrNotFound, "portfolio not found")
	}

	return p, nil
}

func (a *admin) Suborganizations(ctx context.Context, viewer domain.User,
	id domain.PortfolioID) ([]domain.Suborganization, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	if _, err := a.portfolio(ctx, id); err != nil {
		return nil, err
	}
	out, err := a.storage.Suborganizations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not list suborganizations: %w", err)
	}

	return out, nil
}

func (a *admin) CreateSuborganization(ctx context.Context, viewer domain.User,
	s domain.Suborganization) (*domain.Suborganization, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return nil, serrors.Invalid(serrors.FieldErrors{"name": {"Enter a name."}}, "invalid suborganization")
	}
	if _, err := a.portfolio(ctx, s.PortfolioID); err != nil {
		return nil, err
	}
	existing, err := a.storage.Suborganizations(ctx, s.PortfolioID)
	if err != nil {
		return nil, fmt.Errorf("could not list suborganizations: %w", err)
	}
	for _, so := range existing {
		if strings.EqualFold(so.Name, s.Name) {
			return nil, serrors.With(serrors.ErrConflict, "suborganization %q already exists", s.Name)
		}
	}
	s.ID = domain.SuborganizationID{}
	out, err := a.storage.StoreSuborganization(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("could not store suborganization: %w", err)
	}

	return out, nil
}

func validGrant(roles []domain.PortfolioRole, perms []domain.PortfolioPermission) serrors.FieldErrors {
	errs := serrors.FieldErrors{}
	if len(roles) == 0 && len(perms) == 0 {
		errs.Add("roles", "Select a role or at least one permission.")
	}
	for _, r := range roles {
		if r != domain.PortfolioRoleAdmin && r != domain.PortfolioRoleMember {
			errs.Add("roles", fmt.Sprintf("Unknown role %q.", r))
		}
	}
	known := domain.PermissionsFor([]domain.PortfolioRole{domain.PortfolioRoleAdmin},
		[]domain.PortfolioPermission{domain.PermissionViewManagedDomains})
	for _, p := range perms {
		if !slices.Contains(known, p) {
			errs.Add("additional_permissions", fmt.Sprintf("Unknown permission %q.", p))
		}
	}

	return errs
}

func (a *admin) GrantPortfolioPermission(ctx context.Context, viewer domain.User, p domain.UserPortfolioPermission) error {
	if err := access.RequireStaff(viewer); err != nil {
		return err
	}
	if errs := validGrant(p.Roles, p.AdditionalPermissions); !errs.Empty() {
		return serrors.Invalid(errs, "invalid permission")
	}
	if _, err := a.portfolio(ctx, p.PortfolioID); err != nil {
		return err
	}
	user, err := a.storage.UserByID(ctx, p.UserID)
	if err != nil {
		return fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return serrors.With(serrors.ErrNotFound, "user not found")
	}
	if err := a.storage.UpsertPortfolioPermission(ctx, p); err != nil {
		return fmt.Errorf("could not store portfolio permission: %w", err)
	}

	return nil
}

func (a *admin) InvitePortfolioMember(ctx context.Context, viewer domain.User,
	inv domain.PortfolioInvitation) (*domain.PortfolioInvitation, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	inv.Email = domain.NormalizeEmail(inv.Email)
	errs := validGrant(inv.Roles, inv.AdditionalPermissions)
	if !validate.Email(inv.Email) {
		errs.Add("email", "Enter an email address in the required format, like name@example.com.")
	}
	if !errs.Empty() {
		return nil, serrors.Invalid(errs, "invalid invitation")
	}
	if _, err := a.portfolio(ctx, inv.PortfolioID); err != nil {
		return nil, err
	}
	inv.ID = domain.InvitationID{}
	inv.Status = domain.InvitationStatusInvited
	out, err := a.storage.StorePortfolioInvitation(ctx, inv)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, serrors.With(serrors.ErrConflict, "%s has already been invited to this portfolio", inv.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("could not store portfolio invitation: %w", err)
	}

	return out, nil
}

func (a *admin) DomainRequests(ctx context.Context, viewer domain.User,
	query storage.DomainRequestQuery) (storage.Page[storage.DomainRequestRow], error) {
	if err := access.RequireStaff(viewer); err != nil {
		return storage.Page[storage.DomainRequestRow]{}, err
	}
	query.ListQuery = a.list(query.ListQuery)
	page, err := a.storage.DomainRequests(ctx, query)
	if err != nil {
		return storage.Page[storage.DomainRequestRow]{}, fmt.Errorf("could not list domain requests: %w", err)
	}

	return page, nil
}

func (a *admin) Domains(ctx context.Context, viewer domain.User,
	query storage.DomainQuery) (storage.Page[storage.DomainRow], error) {
	if err := access.RequireStaff(viewer); err != nil {
		return storage.Page[storage.DomainRow]{}, err
	}
	query.ListQuery = a.list(query.ListQuery)
	if query.Today.IsZero() {
		query.Today = a.now()
	}
	page, err := a.storage.Domains(ctx, query)
	if err != nil {
		return storage.Page[storage.DomainRow]{}, fmt.Errorf("could not list domains: %w", err)
	}

	return page, nil
}
