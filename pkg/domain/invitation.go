package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationID identifies a domain or portfolio invitation.
type InvitationID uuid.UUID

// String returns the canonical UUID representation.
func (id InvitationID) String() string { return uuid.UUID(id).String() }

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	// InvitationStatusInvited means the invitee has not signed in yet.
	InvitationStatusInvited InvitationStatus = "invited"
	// InvitationStatusRetrieved means the invitee signed in and received the role.
	InvitationStatusRetrieved InvitationStatus = "retrieved"
	// InvitationStatusCanceled means the invitation was withdrawn.
	InvitationStatusCanceled InvitationStatus = "canceled"
)

// DomainInvitation invites an email address to manage a domain. It becomes a
// UserDomainRole once a user with that email signs in.
type DomainInvitation struct {
	ID        InvitationID     `json:"id"`
	Email     string           `json:"email"`
	DomainID  DomainID         `json:"domainId"`
	Status    InvitationStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
