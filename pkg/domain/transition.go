package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransitionDomainID identifies a transition domain row.
type TransitionDomainID uuid.UUID

// TransitionDomainStatus is the legacy registry status of a transition domain.
type TransitionDomainStatus string

const (
	TransitionDomainStatusReady   TransitionDomainStatus = "ready"
	TransitionDomainStatusOnHold  TransitionDomainStatus = "on hold"
	TransitionDomainStatusUnknown TransitionDomainStatus = "unknown"
)

// DomainState maps the legacy status onto the registrar's domain state.
func (s TransitionDomainStatus) DomainState() DomainState {
	switch s {
	case TransitionDomainStatusReady:
		return DomainStateReady
	case TransitionDomainStatusOnHold:
		return DomainStateOnHold
	default:
		return DomainStateUnknown
	}
}

// TransitionDomain is a staging record built from legacy registrar escrow
// files. One row exists per (username, domain name) pair.
type TransitionDomain struct {
	ID                TransitionDomainID     `json:"id"`
	Username          string                 `json:"username"`
	DomainName        string                 `json:"domainName"`
	Status            TransitionDomainStatus `json:"status"`
	EmailSent         bool                   `json:"emailSent"`
	Processed         bool                   `json:"processed"`
	OrganizationType  string                 `json:"organizationType"`
	OrganizationName  string                 `json:"organizationName"`
	FederalType       string                 `json:"federalType"`
	FederalAgency     string                 `json:"federalAgency"`
	EPPCreationDate   time.Time              `json:"eppCreationDate"`
	EPPExpirationDate time.Time              `json:"eppExpirationDate"`
	FirstName         string                 `json:"firstName"`
	MiddleName        string                 `json:"middleName"`
	LastName          string                 `json:"lastName"`
	Title             string                 `json:"title"`
	Email             string                 `json:"email"`
	Phone             string                 `json:"phone"`
	AddressLine       string                 `json:"addressLine"`
	City              string                 `json:"city"`
	StateTerritory    string                 `json:"stateTerritory"`
	Zipcode           string                 `json:"zipcode"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}
