package members

import (
	"context"
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/storage"
)

// Member is a row of the member table: a user holding a grant in the
// portfolio or an email invited to it.
type Member struct {
	// ID is the user ID for members and the invitation ID for invited members.
	ID          string
	Name        string
	Email       string
	Roles       []domain.PortfolioRole
	Permissions []domain.PortfolioPermission
	// LastActive is zero for invited members and users that never signed in.
	LastActive time.Time
	IsAdmin    bool
	Invited    bool
	// Editable is set when the viewer may edit the member.
	Editable bool
}

// Display is the name shown in the member column.
func (m Member) Display() string {
	if m.Name != "" {
		return m.Name
	}

	return m.Email
}

// Sort columns of the member table.
const (
	SortMember     = "member"
	SortLastActive = "last_active"
)

//go:generate mockgen -package mockmembers -source=interface.go -destination=mock/mockmembers.go *
type Members interface {
	// Table lists a portfolio's members and pending invitations.
	Table(ctx context.Context, viewer domain.User, portfolioID domain.PortfolioID,
		query storage.ListQuery) (storage.Page[Member], error)
}
