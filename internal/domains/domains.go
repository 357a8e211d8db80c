// Package domains implements viewing and managing registered domains.
package domains

import (
	"context"
	"fmt"
	"slices"
	"time"

	"registrar/internal/access"
	"registrar/internal/wizard"
	"registrar/internal/worker"
	"registrar/pkg/domain"
	"registrar/pkg/logger"
	"registrar/pkg/mail"
	"registrar/pkg/metrics"
	"registrar/pkg/serrors"
	"registrar/pkg/storage"
	"registrar/pkg/validate"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// placeholderSecurityEmail is the registry default and never a real contact.
const placeholderSecurityEmail = "dotgov@cisa.dhs.gov"

// Options configure the domains service.
type Options struct {
	// BaseURL prefixes links in emails.
	BaseURL string
	// EmailAttempts bounds delivery attempts of queued emails.
	EmailAttempts int
	// PageSize is the default table page size.
	PageSize int
	// Now defaults to time.Now.
	Now func() time.Time
}

type domains struct {
	storage   storage.Storage
	validator *wizard.Validator
	opts      Options
}

// New creates the domains service.
func New(storage storage.Storage, opts Options) Domains {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &domains{
		storage:   storage,
		validator: wizard.NewValidator(storage, wizard.Limits{}),
		opts:      opts,
	}
}

func (d *domains) Table(ctx context.Context, viewer domain.User,
	query TableQuery) (storage.Page[storage.DomainRow], error) {
	q := storage.DomainQuery{ListQuery: query.ListQuery, Statuses: query.Statuses, Today: d.opts.Now()}
	if q.PageSize <= 0 {
		q.PageSize = d.opts.PageSize
	}

	switch {
	case !query.PortfolioID.IsZero():
		grant, err := access.PortfolioGrant(ctx, d.storage, viewer, query.PortfolioID)
		if err != nil {
			return storage.Page[storage.DomainRow]{}, err
		}
		q.PortfolioID = query.PortfolioID
		switch {
		case grant.Has(domain.PermissionViewAllDomains):
		case grant.Has(domain.PermissionViewManagedDomains):
			q.ManagerID = viewer.ID
		default:
			return storage.Page[storage.DomainRow]{}, serrors.With(serrors.ErrForbidden,
				"you may not view the domains of this portfolio")
		}
	default:
		q.ManagerID = viewer.ID
	}

	page, err := d.storage.Domains(ctx, q)
	if err != nil {
		return storage.Page[storage.DomainRow]{}, fmt.Errorf("could not list domains: %w", err)
	}

	return page, nil
}

// load returns the domain or NOT_FOUND.
func (d *domains) load(ctx context.Context, s storage.AllStorage, id domain.DomainID) (*domain.Domain, error) {
	dom, err := s.DomainByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get domain: %w", err)
	}
	if dom == nil {
		return nil, serrors.With(serrors.ErrNotFound, "domain not found")
	}

	return dom, nil
}

// canView grants read access to managers, staff and portfolio members who
// may see all domains of the domain's portfolio.
func (d *domains) canView(ctx context.Context, viewer domain.User, info *domain.DomainInformation,
	manage bool) (bool, error) {
	if manage {
		return true, nil
	}
	if info == nil || info.PortfolioID.IsZero() {
		return false, nil
	}
	grant, err := d.storage.PortfolioPermission(ctx, viewer.ID, info.PortfolioID)
	if err != nil {
		return false, fmt.Errorf("could not get portfolio permission: %w", err)
	}

	return grant != nil && grant.Has(domain.PermissionViewAllDomains), nil
}

func (d *domains) Detail(ctx context.Context, viewer domain.User, id domain.DomainID) (*Detail, error) {
	dom, err := d.load(ctx, d.storage, id)
	if err != nil {
		return nil, err
	}
	info, err := d.storage.DomainInformationByDomain(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get domain information: %w", err)
	}
	manage, err := access.CanManageDomain(ctx, d.storage, viewer, id)
	if err != nil {
		return nil, err
	}
	ok, err := d.canView(ctx, viewer, info, manage)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Unknown and foreign domains are indistinguishable to the viewer.
		return nil, serrors.With(serrors.ErrNotFound, "domain not found")
	}

	managers, err := d.storage.DomainManagers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get domain managers: %w", err)
	}
	invitations, err := d.storage.DomainInvitations(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get domain invitations: %w", err)
	}

	return &Detail{
		Domain:      *dom,
		Information: info,
		Managers:    managers,
		Invitations: invitations,
		CanManage:   manage,
	}, nil
}

func (d *domains) Available(ctx context.Context, name string) (*Availability, error) {
	full, code, err := d.validator.CheckDomain(ctx, name)
	if err != nil {
		return nil, err
	}
	out := &Availability{Domain: full, Available: code == "", Code: code}
	if code == "" {
		out.Message = "That domain is available!"
	} else {
		out.Message = wizard.DomainMessage(code)
	}

	return out, nil
}

// mutate runs change on the domain inside a transaction after checking that
// the viewer manages it and that it is editable.
func (d *domains) mutate(ctx context.Context, viewer domain.User, id domain.DomainID, op string,
	change func(tx storage.AllStorage, dom *domain.Domain) error) (*domain.Domain, error) {
	ctx, span := metrics.StartSpan(ctx, "domains."+op, attribute.String("domainID", id.String()))
	var out *domain.Domain
	err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		dom, err := d.load(ctx, tx, id)
		if err != nil {
			return err
		}
		manage, err := access.CanManageDomain(ctx, tx, viewer, id)
		if err != nil {
			return err
		}
		if !manage {
			return serrors.With(serrors.ErrNotFound, "domain not found")
		}
		if dom.State == domain.DomainStateOnHold || dom.State == domain.DomainStateDeleted {
			return serrors.With(serrors.ErrConflict, "%s is %s and can't be edited", dom.Name, dom.State)
		}
		if err := change(tx, dom); err != nil {
			return err
		}
		out, err = tx.UpdateDomain(ctx, *dom)
		if err != nil {
			return fmt.Errorf("could not update domain: %w", err)
		}

		return nil
	})
	metrics.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (d *domains) SetNameservers(ctx context.Context, viewer domain.User, id domain.DomainID,
	nameservers []domain.Nameserver) (*domain.Domain, error) {
	return d.mutate(ctx, viewer, id, "SetNameservers", func(_ storage.AllStorage, dom *domain.Domain) error {
		ns := NormalizeNameservers(nameservers)
		if errs := ValidateNameservers(dom.Name, ns); !errs.Empty() {
			return serrors.Invalid(errs, "invalid name servers")
		}
		dom.Nameservers = ns

		switch {
		case len(ns) > 0 && (dom.State == domain.DomainStateUnknown || dom.State == domain.DomainStateDNSNeeded):
			dom.State = domain.DomainStateReady
			if dom.FirstReady.IsZero() {
				dom.FirstReady = domain.Today(d.opts.Now())
			}
		case len(ns) == 0 && dom.State == domain.DomainStateReady:
			dom.State = domain.DomainStateDNSNeeded
		}

		return nil
	})
}

func (d *domains) SetDSData(ctx context.Context, viewer domain.User, id domain.DomainID,
	records []domain.DSData) (*domain.Domain, error) {
	return d.mutate(ctx, viewer, id, "SetDSData", func(_ storage.AllStorage, dom *domain.Domain) error {
		records = slices.Clone(records)
		if errs := ValidateDSData(records); !errs.Empty() {
			return serrors.Invalid(errs, "invalid DS data")
		}
		dom.DSData = records

		return nil
	})
}

func (d *domains) SetSecurityEmail(ctx context.Context, viewer domain.User, id domain.DomainID,
	email string) (*domain.Domain, error) {
	return d.mutate(ctx, viewer, id, "SetSecurityEmail", func(_ storage.AllStorage, dom *domain.Domain) error {
		email = domain.NormalizeEmail(email)
		errs := serrors.FieldErrors{}
		switch {
		case email == "":
		case email == placeholderSecurityEmail:
			errs.Add("security_email", "Enter an email address for your security contact.")
		case !validate.Email(email):
			errs.Add("security_email", "Enter an email address in the required format, like name@example.com.")
		}
		if !errs.Empty() {
			return serrors.Invalid(errs, "invalid security email")
		}
		dom.SecurityContactEmail = email

		return nil
	})
}

func (d *domains) AddManager(ctx context.Context, viewer domain.User, id domain.DomainID,
	email string) (*AddManagerResult, error) {
	email = domain.NormalizeEmail(email)
	if !validate.Email(email) {
		return nil, serrors.Invalid(serrors.FieldErrors{
			"email": {"Enter an email address in the required format, like name@example.com."},
		}, "invalid email")
	}

	result := &AddManagerResult{}
	_, err := d.mutate(ctx, viewer, id, "AddManager", func(tx storage.AllStorage, dom *domain.Domain) error {
		managers, err := tx.DomainManagers(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get domain managers: %w", err)
		}
		if slices.ContainsFunc(managers, func(u domain.User) bool { return u.Email == email }) {
			return serrors.With(serrors.ErrConflict, "%s is already a manager for this domain", email)
		}

		user, err := tx.UserByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if user != nil {
			if err := tx.AddDomainRole(ctx, domain.UserDomainRole{
				UserID: user.ID, DomainID: id, Role: domain.DomainRoleManager,
			}); err != nil {
				return fmt.Errorf("could not add domain role: %w", err)
			}
			result.User = user
		} else {
			stored, err := tx.StoreDomainInvitations(ctx, domain.DomainInvitation{Email: email, DomainID: id})
			if err != nil {
				return fmt.Errorf("could not store invitation: %w", err)
			}
			if len(stored) == 0 {
				return serrors.With(serrors.ErrConflict, "%s has already been invited to this domain", email)
			}
			result.Invitation = &stored[0]
		}

		data := map[string]any{
			"DomainName":     dom.Name,
			"RequestorEmail": viewer.Email,
			"ManagerEmail":   email,
			"BaseURL":        d.opts.BaseURL,
		}
		event := ""
		if inv := result.Invitation; inv != nil {
			// a reopened invitation is mailed again
			revision := inv.UpdatedAt
			if revision.IsZero() {
				revision = inv.CreatedAt
			}
			event = "invitation:" + inv.ID.String() + "@" + revision.UTC().Format(time.RFC3339Nano)
		}
		if err := worker.EnqueueEventEmail(ctx, tx, d.opts.EmailAttempts, event, mail.TemplateDomainInvitation,
			data, email); err != nil {
			return err
		}
		for _, m := range managers {
			if m.ID == viewer.ID {
				continue
			}
			if err := worker.EnqueueEventEmail(ctx, tx, d.opts.EmailAttempts, event,
				mail.TemplateDomainManagerAdded, data, m.Email); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "added domain manager",
		zap.String("domainID", id.String()), zap.String("email", email), zap.Bool("invited", result.User == nil))

	return result, nil
}

func (d *domains) RemoveManager(ctx context.Context, viewer domain.User, id domain.DomainID,
	userID domain.UserID) error {
	_, err := d.mutate(ctx, viewer, id, "RemoveManager", func(tx storage.AllStorage, _ *domain.Domain) error {
		managers, err := tx.DomainManagers(ctx, id)
		if err != nil {
			return fmt.Errorf("could not get domain managers: %w", err)
		}
		if !slices.ContainsFunc(managers, func(u domain.User) bool { return u.ID == userID }) {
			return serrors.With(serrors.ErrNotFound, "user is not a manager of this domain")
		}
		if len(managers) == 1 {
			return serrors.With(serrors.ErrConflict, "a domain must have at least one manager")
		}
		if _, err := tx.RemoveDomainRole(ctx, userID, id); err != nil {
			return fmt.Errorf("could not remove domain role: %w", err)
		}

		return nil
	})

	return err
}

func (d *domains) CancelInvitation(ctx context.Context, viewer domain.User, id domain.InvitationID) error {
	inv, err := d.storage.DomainInvitationByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get invitation: %w", err)
	}
	if inv == nil {
		return serrors.With(serrors.ErrNotFound, "invitation not found")
	}
	_, err = d.mutate(ctx, viewer, inv.DomainID, "CancelInvitation", func(tx storage.AllStorage, _ *domain.Domain) error {
		if inv.Status != domain.InvitationStatusInvited {
			return serrors.With(serrors.ErrConflict, "only pending invitations can be canceled")
		}
		if err := tx.SetInvitationStatus(ctx, id, domain.InvitationStatusCanceled); err != nil {
			return fmt.Errorf("could not cancel invitation: %w", err)
		}

		return nil
	})

	return err
}

// changeState applies a staff state change when the domain is in one of from.
func (d *domains) changeState(ctx context.Context, viewer domain.User, id domain.DomainID, op string,
	to domain.DomainState, from ...domain.DomainState) (*domain.Domain, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}

	var out *domain.Domain
	err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		dom, err := d.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if !slices.Contains(from, dom.State) {
			return serrors.With(serrors.ErrConflict, "can't %s a domain in state %q", op, dom.State)
		}
		dom.State = to
		if to == domain.DomainStateDeleted {
			dom.DeletedAt = d.opts.Now().UTC()
		}
		out, err = tx.UpdateDomain(ctx, *dom)
		if err != nil {
			return fmt.Errorf("could not update domain: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "changed domain state",
		zap.String("domain", out.Name), zap.String("op", op), zap.String("state", string(to)))

	return out, nil
}

func (d *domains) PlaceHold(ctx context.Context, viewer domain.User, id domain.DomainID) (*domain.Domain, error) {
	return d.changeState(ctx, viewer, id, "place hold on", domain.DomainStateOnHold,
		domain.DomainStateReady, domain.DomainStateDNSNeeded)
}

func (d *domains) RemoveHold(ctx context.Context, viewer domain.User, id domain.DomainID) (*domain.Domain, error) {
	return d.changeState(ctx, viewer, id, "remove hold from", domain.DomainStateReady, domain.DomainStateOnHold)
}

func (d *domains) Delete(ctx context.Context, viewer domain.User, id domain.DomainID) (*domain.Domain, error) {
	return d.changeState(ctx, viewer, id, "delete", domain.DomainStateDeleted,
		domain.DomainStateOnHold, domain.DomainStateDNSNeeded)
}

func (d *domains) SetExpiration(ctx context.Context, viewer domain.User, id domain.DomainID,
	date time.Time) (*domain.Domain, error) {
	if err := access.RequireStaff(viewer); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, serrors.Invalid(serrors.FieldErrors{"expiration_date": {"Enter an expiration date."}},
			"invalid expiration date")
	}

	var out *domain.Domain
	err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		dom, err := d.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if dom.State == domain.DomainStateDeleted {
			return serrors.With(serrors.ErrConflict, "%s is deleted", dom.Name)
		}
		dom.ExpirationDate = domain.Today(date)
		out, err = tx.UpdateDomain(ctx, *dom)
		if err != nil {
			return fmt.Errorf("could not update domain: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
