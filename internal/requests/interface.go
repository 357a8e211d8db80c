package requests

import (
	"context"

	"registrar/internal/wizard"
	"registrar/pkg/domain"
	"registrar/pkg/storage"
)

// TableQuery selects the rows of the domain request table.
type TableQuery struct {
	storage.ListQuery

	// PortfolioID lists the portfolio's requests instead of the viewer's own.
	PortfolioID domain.PortfolioID
	Statuses    []domain.DomainRequestStatus
}

// StepState describes one wizard step of a request.
type StepState struct {
	Step     wizard.Step `json:"step"`
	Title    string      `json:"title"`
	Visible  bool        `json:"visible"`
	Complete bool        `json:"complete"`
}

//go:generate mockgen -package mockrequests -source=interface.go -destination=mock/mockrequests.go *
type Requests interface {
	// Start creates a started request and makes it the viewer's current one.
	// A non-zero portfolio files the request under that portfolio.
	Start(ctx context.Context, viewer domain.User, portfolioID domain.PortfolioID) (*domain.DomainRequest, error)
	// Current returns the request the viewer is editing.
	Current(ctx context.Context, viewer domain.User) (*domain.DomainRequest, error)
	Get(ctx context.Context, viewer domain.User, id domain.DomainRequestID) (*domain.DomainRequest, error)
	// Edit makes an editable request the viewer created their current one.
	Edit(ctx context.Context, viewer domain.User, id domain.DomainRequestID) (*domain.DomainRequest, error)
	// SaveStep validates the step's fields of values and stores them.
	SaveStep(ctx context.Context, viewer domain.User, id domain.DomainRequestID, step wizard.Step,
		values domain.DomainRequest) (*domain.DomainRequest, error)
	Steps(ctx context.Context, viewer domain.User, id domain.DomainRequestID) ([]StepState, error)
	Submit(ctx context.Context, viewer domain.User, id domain.DomainRequestID) (*domain.DomainRequest, error)
	Withdraw(ctx context.Context, viewer domain.User, id domain.DomainRequestID) (*domain.DomainRequest, error)
	Delete(ctx context.Context, viewer domain.User, id domain.DomainRequestID) error
	Table(ctx context.Context, viewer domain.User, query TableQuery) (storage.Page[storage.DomainRequestRow], error)

	// Transition applies a staff review transition.
	Transition(ctx context.Context, viewer domain.User, id domain.DomainRequestID, t domain.Transition,
		reason string) (*domain.DomainRequest, error)
}
