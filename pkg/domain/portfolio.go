package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PortfolioID identifies a portfolio.
type PortfolioID uuid.UUID

// String returns the canonical UUID representation.
func (id PortfolioID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is unset.
func (id PortfolioID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// SuborganizationID identifies a suborganization.
type SuborganizationID uuid.UUID

// IsZero reports whether the ID is unset.
func (id SuborganizationID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// Portfolio groups the domains, requests and members of one organization,
// typically a federal agency.
type Portfolio struct {
	ID               PortfolioID      `json:"id"`
	CreatorID        UserID           `json:"creatorId"`
	OrganizationName string           `json:"organizationName"`
	OrganizationType OrganizationType `json:"organizationType"`
	FederalAgency    string           `json:"federalAgency,omitempty"`
	AddressLine1     string           `json:"addressLine1,omitempty"`
	AddressLine2     string           `json:"addressLine2,omitempty"`
	City             string           `json:"city,omitempty"`
	StateTerritory   string           `json:"stateTerritory,omitempty"`
	Zipcode          string           `json:"zipcode,omitempty"`
	SeniorOfficial   *Contact         `json:"seniorOfficial,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Suborganization is a named division inside a portfolio.
type Suborganization struct {
	ID          SuborganizationID `json:"id"`
	PortfolioID PortfolioID       `json:"portfolioId"`
	Name        string            `json:"name"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// PortfolioRole is a coarse role inside a portfolio.
type PortfolioRole string

const (
	PortfolioRoleAdmin  PortfolioRole = "organization_admin"
	PortfolioRoleMember PortfolioRole = "organization_member"
)

// PortfolioPermission is a fine grained capability inside a portfolio.
type PortfolioPermission string

const (
	PermissionViewAllDomains     PortfolioPermission = "view_all_domains"
	PermissionViewManagedDomains PortfolioPermission = "view_managed_domains"
	PermissionViewMembers        PortfolioPermission = "view_members"
	PermissionEditMembers        PortfolioPermission = "edit_members"
	PermissionViewAllRequests    PortfolioPermission = "view_all_requests"
	PermissionEditRequests       PortfolioPermission = "edit_requests"
	PermissionViewPortfolio      PortfolioPermission = "view_portfolio"
	PermissionEditPortfolio      PortfolioPermission = "edit_portfolio"
)

var rolePermissions = map[PortfolioRole][]PortfolioPermission{ //nolint: gochecknoglobals
	PortfolioRoleAdmin: {
		PermissionViewAllDomains,
		PermissionViewMembers,
		PermissionEditMembers,
		PermissionViewAllRequests,
		PermissionEditRequests,
		PermissionViewPortfolio,
		PermissionEditPortfolio,
	},
	PortfolioRoleMember: {
		PermissionViewPortfolio,
	},
}

// PermissionsFor expands roles into permissions and merges additional ones,
// without duplicates and in a stable order.
func PermissionsFor(roles []PortfolioRole, additional []PortfolioPermission) []PortfolioPermission {
	out := make([]PortfolioPermission, 0)
	for _, r := range roles {
		for _, p := range rolePermissions[r] {
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	for _, p := range additional {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}

	return out
}

// UserPortfolioPermission grants a user roles within a portfolio.
type UserPortfolioPermission struct {
	UserID                UserID                `json:"userId"`
	PortfolioID           PortfolioID           `json:"portfolioId"`
	Roles                 []PortfolioRole       `json:"roles"`
	AdditionalPermissions []PortfolioPermission `json:"additionalPermissions"`
	CreatedAt             time.Time             `json:"createdAt"`
}

// Permissions returns the effective permissions of the grant.
func (p UserPortfolioPermission) Permissions() []PortfolioPermission {
	return PermissionsFor(p.Roles, p.AdditionalPermissions)
}

// Has reports whether the grant includes the permission.
func (p UserPortfolioPermission) Has(perm PortfolioPermission) bool {
	return slices.Contains(p.Permissions(), perm)
}

// IsAdmin reports whether the grant includes the admin role.
func (p UserPortfolioPermission) IsAdmin() bool {
	return slices.Contains(p.Roles, PortfolioRoleAdmin)
}

// PortfolioInvitation invites an email address into a portfolio.
type PortfolioInvitation struct {
	ID                    InvitationID          `json:"id"`
	Email                 string                `json:"email"`
	PortfolioID           PortfolioID           `json:"portfolioId"`
	Roles                 []PortfolioRole       `json:"roles"`
	AdditionalPermissions []PortfolioPermission `json:"additionalPermissions"`
	Status                InvitationStatus      `json:"status"`
	CreatedAt             time.Time             `json:"createdAt"`
}

// PortfolioMember is a permission grant joined with its user.
type PortfolioMember struct {
	User       User
	Permission UserPortfolioPermission
}
