package storage

import (
	"context"

	"registrar/pkg/domain"
)

// InvitationStorage persists domain invitations.
type InvitationStorage interface {
	// StoreDomainInvitations inserts invitations. Invitations for an (email,
	// domain) pair that already has one are skipped, except that a canceled one
	// is set back to invited. Only inserted or reopened rows are returned.
	StoreDomainInvitations(ctx context.Context, invitations ...domain.DomainInvitation) ([]domain.DomainInvitation, error)
	// DomainInvitationByID returns nil when not found.
	DomainInvitationByID(ctx context.Context, id domain.InvitationID) (*domain.DomainInvitation, error)
	// DomainInvitations lists the invitations of a domain ordered by email.
	DomainInvitations(ctx context.Context, id domain.DomainID) ([]domain.DomainInvitation, error)
	// PendingInvitationsByEmail lists invitations still in the invited state for the email.
	PendingInvitationsByEmail(ctx context.Context, email string) ([]domain.DomainInvitation, error)
	// SetInvitationStatus returns ErrNotFound for unknown ids.
	SetInvitationStatus(ctx context.Context, id domain.InvitationID, status domain.InvitationStatus) error
}
