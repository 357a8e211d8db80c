package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactID identifies a stored contact.
type ContactID uuid.UUID

// IsZero reports whether the ID is unset.
func (id ContactID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// Contact is a person associated with an organization, such as a senior
// official or one of the other employees listed on a domain request.
type Contact struct {
	ID         ContactID `json:"id"`
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName,omitempty"`
	LastName   string    `json:"lastName"`
	Title      string    `json:"title"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FullName joins the non-empty name parts with spaces.
func (c Contact) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}
