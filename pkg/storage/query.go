package storage

import (
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/pagination"
)

// Page is one window of a filtered, sorted result set.
type Page[T any] struct {
	Items []T
	// Page is the window actually returned, after clamping the requested page.
	Page pagination.Page
	// UnfilteredTotal counts rows visible to the caller before search and
	// status filters were applied.
	UnfilteredTotal int
}

// ListQuery is the common part of list queries.
type ListQuery struct {
	// Page is the 1-based page number requested.
	Page     int
	PageSize int
	// Search is matched case-insensitively as a substring.
	Search string
	SortBy string
	Desc   bool
}

// DomainSort names a sortable column of the domain table.
type DomainSort string

const (
	DomainSortID             DomainSort = "id"
	DomainSortName           DomainSort = "name"
	DomainSortExpirationDate DomainSort = "expiration_date"
	DomainSortStateDisplay   DomainSort = "state_display"
)

// DomainQuery selects the domains shown in a domain table.
type DomainQuery struct {
	ListQuery

	// ManagerID restricts the result to domains the user manages.
	ManagerID domain.UserID
	// PortfolioID restricts the result to domains of a portfolio.
	PortfolioID domain.PortfolioID
	// Statuses are status keys as produced by domain.Domain.StatusKey.
	Statuses []string
	// Today is the reference day for expiration.
	Today time.Time
}

// DomainRow is a domain table entry joined with its information record.
type DomainRow struct {
	domain.Domain
	SubOrganizationName string
}

// ReportDomain is a domain with the organization of its information record.
// Organization is zero for domains without a record.
type ReportDomain struct {
	domain.Domain
	Organization domain.Organization
}

// DomainRequestSort names a sortable column of the domain request table.
type DomainRequestSort string

const (
	DomainRequestSortID                DomainRequestSort = "id"
	DomainRequestSortRequestedDomain   DomainRequestSort = "requested_domain"
	DomainRequestSortLastSubmittedDate DomainRequestSort = "last_submitted_date"
	DomainRequestSortStatus            DomainRequestSort = "status"
	DomainRequestSortCreatedAt         DomainRequestSort = "created_at"
)

// DomainRequestQuery selects the requests shown in a domain request table.
type DomainRequestQuery struct {
	ListQuery

	CreatorID   domain.UserID
	PortfolioID domain.PortfolioID
	Statuses    []domain.DomainRequestStatus
	// ExcludeApproved hides approved requests, which live on as domains.
	ExcludeApproved bool
}

// DomainRequestRow is a domain request joined with its creator.
type DomainRequestRow struct {
	domain.DomainRequest
	CreatorEmail string
}

// TransitionDomainFilter selects transition domain rows.
type TransitionDomainFilter struct {
	OnlyUnprocessed bool
	OnlyEmailUnsent bool
}
