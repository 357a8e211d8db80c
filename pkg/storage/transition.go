package storage

import (
	"context"

	"registrar/pkg/domain"
)

// TransitionDomainStorage persists the staging rows of the legacy data migration.
type TransitionDomainStorage interface {
	// UpsertTransitionDomain inserts the row or updates the existing row with
	// the same (username, domain name). created reports whether it was inserted.
	UpsertTransitionDomain(ctx context.Context, td domain.TransitionDomain) (stored *domain.TransitionDomain, created bool, err error)
	// TransitionDomains lists rows matching filter ordered by username and domain name.
	TransitionDomains(ctx context.Context, filter TransitionDomainFilter) ([]domain.TransitionDomain, error)
	// MarkTransitionDomainsProcessed flags rows as transferred into domains.
	MarkTransitionDomainsProcessed(ctx context.Context, ids ...domain.TransitionDomainID) error
	// MarkTransitionDomainsEmailSent flags rows whose invitation email was queued.
	MarkTransitionDomainsEmailSent(ctx context.Context, ids ...domain.TransitionDomainID) error
	// DeleteTransitionDomains removes all rows and returns how many were removed.
	DeleteTransitionDomains(ctx context.Context) (int64, error)
}
