package domains

import (
	"context"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/storage"
)

// TableQuery selects the rows of the domain table.
type TableQuery struct {
	storage.ListQuery

	// PortfolioID lists the portfolio's domains instead of the viewer's managed ones.
	PortfolioID domain.PortfolioID
	Statuses    []string
}

// Detail is everything the domain management page shows.
type Detail struct {
	Domain      domain.Domain
	Information *domain.DomainInformation
	Managers    []domain.User
	Invitations []domain.DomainInvitation
	// CanManage is false for viewers with read-only portfolio access.
	CanManage bool
}

// AddManagerResult tells whether the email belonged to an existing user, who
// was granted the role directly, or whether an invitation was created.
type AddManagerResult struct {
	User       *domain.User
	Invitation *domain.DomainInvitation
}

// Availability is the answer to a domain availability check.
type Availability struct {
	Domain    string
	Available bool
	Code      string
	Message   string
}

//go:generate mockgen -package mockdomains -source=interface.go -destination=mock/mockdomains.go *
type Domains interface {
	Table(ctx context.Context, viewer domain.User, query TableQuery) (storage.Page[storage.DomainRow], error)
	Detail(ctx context.Context, viewer domain.User, id domain.DomainID) (*Detail, error)
	Available(ctx context.Context, name string) (*Availability, error)

	SetNameservers(ctx context.Context, viewer domain.User, id domain.DomainID,
		nameservers []domain.Nameserver) (*domain.Domain, error)
	SetDSData(ctx context.Context, viewer domain.User, id domain.DomainID, records []domain.DSData) (*domain.Domain, error)
	SetSecurityEmail(ctx context.Context, viewer domain.User, id domain.DomainID, email string) (*domain.Domain, error)

	AddManager(ctx context.Context, viewer domain.User, id domain.DomainID, email string) (*AddManagerResult, error)
	RemoveManager(ctx context.Context, viewer domain.User, id domain.DomainID, userID domain.UserID) error
	CancelInvitation(ctx context.Context, viewer domain.User, id domain.InvitationID) error

	// PlaceHold, RemoveHold, Delete and SetExpiration are staff actions.
	PlaceHold(ctx context.Context, viewer domain.User, id domain.DomainID) (*domain.Domain, error)
	RemoveHold(ctx context.Context, viewer domain.User, id domain.DomainID) (*domain.Domain, error)
	Delete(ctx context.Context, viewer domain.User, id domain.DomainID) (*domain.Domain, error)
	SetExpiration(ctx context.Context, viewer domain.User, id domain.DomainID, date time.Time) (*domain.Domain, error)
}
