package storage

import (
	"context"

	"registrar/pkg/domain"
)

// DomainStorage persists registered domains, their information records and
// the roles users hold on them.
type DomainStorage interface {
	// StoreDomain inserts a domain. Returns ErrDuplicate when the name is taken.
	StoreDomain(ctx context.Context, d domain.Domain) (*domain.Domain, error)
	// UpdateDomain replaces all mutable fields of the domain identified by d.ID
	// and sets updated_at. Returns ErrNotFound for unknown ids.
	UpdateDomain(ctx context.Context, d domain.Domain) (*domain.Domain, error)
	// DeleteDomain removes the domain together with its information record,
	// roles and invitations. Reports whether a row was removed.
	DeleteDomain(ctx context.Context, id domain.DomainID) (bool, error)
	// DomainByID returns nil when not found.
	DomainByID(ctx context.Context, id domain.DomainID) (*domain.Domain, error)
	// DomainByName matches the lower-cased full name. Returns nil when not found.
	DomainByName(ctx context.Context, name string) (*domain.Domain, error)
	// Domains returns one page of the domain table described by query.
	Domains(ctx context.Context, query DomainQuery) (Page[DomainRow], error)
	// ReportDomains returns every domain with its organization, ordered by name.
	ReportDomains(ctx context.Context) ([]ReportDomain, error)

	// StoreDomainInformation inserts the information record of a domain.
	StoreDomainInformation(ctx context.Context, info domain.DomainInformation) (*domain.DomainInformation, error)
	// UpdateDomainInformation replaces the record identified by info.DomainID.
	UpdateDomainInformation(ctx context.Context, info domain.DomainInformation) (*domain.DomainInformation, error)
	// DomainInformationByDomain returns nil when the domain has no record.
	DomainInformationByDomain(ctx context.Context, id domain.DomainID) (*domain.DomainInformation, error)

	// AddDomainRole grants a role. Granting an existing role is a no-op.
	AddDomainRole(ctx context.Context, role domain.UserDomainRole) error
	// RemoveDomainRole reports whether a role was removed.
	RemoveDomainRole(ctx context.Context, userID domain.UserID, domainID domain.DomainID) (bool, error)
	// DomainManagers lists the users holding a role on the domain, ordered by email.
	DomainManagers(ctx context.Context, id domain.DomainID) ([]domain.User, error)
	// HasDomainRole reports whether the user manages the domain.
	HasDomainRole(ctx context.Context, userID domain.UserID, domainID domain.DomainID) (bool, error)
}

// DomainRequestStorage persists domain requests.
type DomainRequestStorage interface {
	// StoreDomainRequest inserts a request and returns it with generated fields.
	StoreDomainRequest(ctx context.Context, r domain.DomainRequest) (*domain.DomainRequest, error)
	// UpdateDomainRequest replaces all mutable fields of the request identified
	// by r.ID and sets updated_at. Returns ErrNotFound for unknown ids.
	UpdateDomainRequest(ctx context.Context, r domain.DomainRequest) (*domain.DomainRequest, error)
	// DeleteDomainRequest reports whether a row was removed.
	DeleteDomainRequest(ctx context.Context, id domain.DomainRequestID) (bool, error)
	// DomainRequestByID returns nil when not found.
	DomainRequestByID(ctx context.Context, id domain.DomainRequestID) (*domain.DomainRequest, error)
	// DomainRequests returns one page of the request table described by query.
	DomainRequests(ctx context.Context, query DomainRequestQuery) (Page[DomainRequestRow], error)
}
