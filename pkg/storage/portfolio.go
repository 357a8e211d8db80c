package storage

import (
	"context"

	"registrar/pkg/domain"
)

// PortfolioStorage persists portfolios, their suborganizations, member
// permissions and member invitations.
type PortfolioStorage interface {
	StorePortfolio(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error)
	// UpdatePortfolio returns ErrNotFound for unknown ids.
	UpdatePortfolio(ctx context.Context, p domain.Portfolio) (*domain.Portfolio, error)
	// PortfolioByID returns nil when not found.
	PortfolioByID(ctx context.Context, id domain.PortfolioID) (*domain.Portfolio, error)
	// Portfolios lists portfolios ordered by organization name.
	Portfolios(ctx context.Context, query ListQuery) (Page[domain.Portfolio], error)

	StoreSuborganization(ctx context.Context, s domain.Suborganization) (*domain.Suborganization, error)
	// Suborganizations lists the suborganizations of a portfolio ordered by name.
	Suborganizations(ctx context.Context, id domain.PortfolioID) ([]domain.Suborganization, error)
	// SuborganizationByID returns nil when not found.
	SuborganizationByID(ctx context.Context, id domain.SuborganizationID) (*domain.Suborganization, error)

	// UpsertPortfolioPermission creates or replaces the grant of a user in a portfolio.
	UpsertPortfolioPermission(ctx context.Context, p domain.UserPortfolioPermission) error
	// PortfolioPermission returns nil when the user holds no grant.
	PortfolioPermission(ctx context.Context, userID domain.UserID, id domain.PortfolioID) (*domain.UserPortfolioPermission, error)
	// PortfolioMembers lists every grant of the portfolio joined with its user.
	PortfolioMembers(ctx context.Context, id domain.PortfolioID) ([]domain.PortfolioMember, error)

	StorePortfolioInvitation(ctx context.Context, inv domain.PortfolioInvitation) (*domain.PortfolioInvitation, error)
	// PortfolioInvitations lists the invitations of a portfolio in the invited state.
	PortfolioInvitations(ctx context.Context, id domain.PortfolioID) ([]domain.PortfolioInvitation, error)
}
