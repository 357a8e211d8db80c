package admin

import (
	"context"
	"io"

	"registrar/pkg/domain"
	"registrar/pkg/storage"
)

// Report names a CSV export of the domain inventory.
type Report string

const (
	// ReportCurrentFull lists every domain that is not deleted.
	ReportCurrentFull Report = "current-full"
	// ReportCurrentFederal lists the federal domains that are not deleted.
	ReportCurrentFederal Report = "current-federal"
)

// Valid reports whether r is a known report.
func (r Report) Valid() bool {
	return r == ReportCurrentFull || r == ReportCurrentFederal
}

// Every method fails with FORBIDDEN unless the viewer is staff.
//
//go:generate mockgen -package mockadmin -source=interface.go -destination=mock/mockadmin.go *
type Admin interface {
	Users(ctx context.Context, viewer domain.User, query storage.ListQuery) (storage.Page[domain.User], error)
	SetUserStatus(ctx context.Context, viewer domain.User, id domain.UserID, status domain.UserStatus) (*domain.User, error)

	Contacts(ctx context.Context, viewer domain.User, query storage.ListQuery) (storage.Page[domain.Contact], error)
	CreateContact(ctx context.Context, viewer domain.User, contact domain.Contact) (*domain.Contact, error)
	UpdateContact(ctx context.Context, viewer domain.User, contact domain.Contact) (*domain.Contact, error)
	DeleteContact(ctx context.Context, viewer domain.User, id domain.ContactID) error

	Portfolios(ctx context.Context, viewer domain.User, query storage.ListQuery) (storage.Page[domain.Portfolio], error)
	CreatePortfolio(ctx context.Context, viewer domain.User, p domain.Portfolio) (*domain.Portfolio, error)
	UpdatePortfolio(ctx context.Context, viewer domain.User, p domain.Portfolio) (*domain.Portfolio, error)
	Suborganizations(ctx context.Context, viewer domain.User, id domain.PortfolioID) ([]domain.Suborganization, error)
	CreateSuborganization(ctx context.Context, viewer domain.User,
		s domain.Suborganization) (*domain.Suborganization, error)
	GrantPortfolioPermission(ctx context.Context, viewer domain.User, p domain.UserPortfolioPermission) error
	InvitePortfolioMember(ctx context.Context, viewer domain.User,
		inv domain.PortfolioInvitation) (*domain.PortfolioInvitation, error)

	DomainRequests(ctx context.Context, viewer domain.User,
		query storage.DomainRequestQuery) (storage.Page[storage.DomainRequestRow], error)
	Domains(ctx context.Context, viewer domain.User, query storage.DomainQuery) (storage.Page[storage.DomainRow], error)

	// WriteReport writes the report as CSV to w.
	WriteReport(ctx context.Context, viewer domain.User, report Report, w io.Writer) error
}
