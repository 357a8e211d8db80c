package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical UUID representation.
func (id UserID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the ID is unset.
func (id UserID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// UserStatus is an administrative flag on a user account.
type UserStatus string

const (
	// UserStatusActive is the default state of a user.
	UserStatusActive UserStatus = ""
	// UserStatusRestricted blocks the user from starting or submitting domain requests.
	UserStatusRestricted UserStatus = "restricted"
)

// User is a person who signed in to the registrar.
type User struct {
	ID        UserID     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Title     string     `json:"title"`
	Phone     string     `json:"phone"`
	Status    UserStatus `json:"status"`
	IsStaff   bool       `json:"isStaff"`
	LastLogin time.Time  `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
}

// IsRestricted reports whether the user may not create domain requests.
func (u User) IsRestricted() bool {
	return u.Status == UserStatusRestricted
}

// NormalizeEmail lower-cases and trims an email address. Emails are stored and
// compared in this form everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
