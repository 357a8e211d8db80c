package domain

import (
	"time"

	"github.com/google/uuid"
)

// TopLevelDomain is the suffix every registered domain carries.
const TopLevelDomain = "gov"

// DomainID uniquely identifies a registered domain.
type DomainID uuid.UUID

// String returns the canonical UUID representation.
func (id DomainID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is unset.
func (id DomainID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// DomainState is the lifecycle state of a domain as known to the registrar.
type DomainState string

const (
	// DomainStateUnknown is the state of a freshly approved domain.
	DomainStateUnknown DomainState = "unknown"
	// DomainStateDNSNeeded indicates the domain has no name servers yet.
	DomainStateDNSNeeded DomainState = "dns needed"
	// DomainStateReady indicates the domain has name servers and resolves.
	DomainStateReady DomainState = "ready"
	// DomainStateOnHold indicates the domain was administratively paused.
	DomainStateOnHold DomainState = "on hold"
	// DomainStateDeleted indicates the domain was removed.
	DomainStateDeleted DomainState = "deleted"
)

// DomainStates lists all states.
var DomainStates = []DomainState{ //nolint: gochecknoglobals
	DomainStateUnknown,
	DomainStateDNSNeeded,
	DomainStateReady,
	DomainStateOnHold,
	DomainStateDeleted,
}

// Valid reports whether s is a known state.
func (s DomainState) Valid() bool {
	for _, st := range DomainStates {
		if st == s {
			return true
		}
	}

	return false
}

// Nameserver is a host serving the domain's zone. IPs are only set for hosts
// that live inside the domain itself (glue records).
type Nameserver struct {
	Host string   `json:"host"`
	IPs  []string `json:"ips,omitempty"`
}

// DSData is a single DNSSEC delegation signer record.
type DSData struct {
	KeyTag     int    `json:"keyTag"`
	Algorithm  int    `json:"algorithm"`
	DigestType int    `json:"digestType"`
	Digest     string `json:"digest"`
}

// Domain is a registered .gov second-level domain.
type Domain struct {
	ID                   DomainID     `json:"id"`
	Name                 string       `json:"name"`
	State                DomainState  `json:"state"`
	ExpirationDate       time.Time    `json:"expirationDate"`
	FirstReady           time.Time    `json:"firstReady"`
	DeletedAt            time.Time    `json:"deletedAt"`
	SecurityContactEmail string       `json:"securityContactEmail,omitempty"`
	Nameservers          []Nameserver `json:"nameservers"`
	DSData               []DSData     `json:"dsData"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// Today truncates t to midnight UTC. Expiration dates are compared at day granularity.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsExpired reports whether the expiration date lies before the day of now.
func (d Domain) IsExpired(now time.Time) bool {
	return !d.ExpirationDate.IsZero() && d.ExpirationDate.Before(Today(now))
}

// StateDisplay returns the label shown to users. Expired domains that are not
// in the unknown state display as expired regardless of their state.
func (d Domain) StateDisplay(now time.Time) string {
	if d.IsExpired(now) && d.State != DomainStateUnknown {
		return "Expired"
	}
	switch d.State {
	case DomainStateUnknown, DomainStateDNSNeeded:
		return "DNS needed"
	case DomainStateReady:
		return "Ready"
	case DomainStateOnHold:
		return "On hold"
	case DomainStateDeleted:
		return "Deleted"
	default:
		return "Unknown"
	}
}

// DomainStatusExpired is the pseudo status used by table filters for expired domains.
const DomainStatusExpired = "expired"

// StatusKey is the value the domain table filters and sorts on. It mirrors
// StateDisplay: expired domains yield "expired", and "dns needed" folds into
// "unknown" because both display as "DNS needed".
func (d Domain) StatusKey(now time.Time) string {
	if d.IsExpired(now) && d.State != DomainStateUnknown {
		return DomainStatusExpired
	}
	if d.State == DomainStateDNSNeeded {
		return string(DomainStateUnknown)
	}

	return string(d.State)
}

// NormalizeStatusKey maps a status filter value onto the vocabulary of StatusKey.
func NormalizeStatusKey(status string) string {
	if status == string(DomainStateDNSNeeded) {
		return string(DomainStateUnknown)
	}

	return status
}

// StateHelpText explains the current display state.
func (d Domain) StateHelpText(now time.Time) string {
	if d.IsExpired(now) && d.State != DomainStateUnknown {
		return "This domain has expired, but it is still online. To renew this domain, contact help@get.gov."
	}
	switch d.State {
	case DomainStateUnknown, DomainStateDNSNeeded:
		return "Before this domain can be used, name server addresses need to be added."
	case DomainStateReady:
		return "This domain has name servers and is ready for use."
	case DomainStateOnHold:
		return "This domain is administratively paused, so it can’t be edited and won’t resolve in DNS. " +
			"Contact help@get.gov for details."
	case DomainStateDeleted:
		return "This domain has been removed and is no longer registered to your organization."
	default:
		return ""
	}
}

// DomainInformationID identifies a DomainInformation record.
type DomainInformationID uuid.UUID

// DomainInformation holds the organizational details of an approved domain.
type DomainInformation struct {
	ID                DomainInformationID `json:"id"`
	DomainID          DomainID            `json:"domainId"`
	CreatorID         UserID              `json:"creatorId"`
	DomainRequestID   DomainRequestID     `json:"domainRequestId"`
	PortfolioID       PortfolioID         `json:"portfolioId"`
	SubOrganizationID SuborganizationID   `json:"subOrganizationId"`
	SeniorOfficialID  ContactID           `json:"seniorOfficialId"`
	Organization
	Purpose      string    `json:"purpose,omitempty"`
	AnythingElse string    `json:"anythingElse,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DomainRole is the role a user holds on a domain.
type DomainRole string

// DomainRoleManager grants full management of the domain.
const DomainRoleManager DomainRole = "manager"

// UserDomainRole ties a user to a domain they manage.
type UserDomainRole struct {
	UserID    UserID     `json:"userId"`
	DomainID  DomainID   `json:"domainId"`
	Role      DomainRole `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}
