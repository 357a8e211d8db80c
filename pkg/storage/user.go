package storage

import (
	"context"
	"time"

	"registrar/pkg/domain"
)

// UserStorage persists registrar users.
type UserStorage interface {
	// UpsertUser inserts the user or, when a user with the same email exists,
	// updates its profile fields. Status and staff flags of an existing user are
	// left untouched. The stored row is returned.
	UpsertUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID returns nil when the user does not exist.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByEmail matches the normalized email. Returns nil when not found.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// Users lists users ordered by email; Search matches email and names.
	Users(ctx context.Context, query ListQuery) (Page[domain.User], error)
	// SetUserStatus changes the administrative status. Returns ErrNotFound for unknown users.
	SetUserStatus(ctx context.Context, id domain.UserID, status domain.UserStatus) error
	// TouchLastLogin records a sign in.
	TouchLastLogin(ctx context.Context, id domain.UserID, at time.Time) error
}

// ContactStorage persists contacts such as senior officials.
type ContactStorage interface {
	// StoreContacts inserts contacts and returns them with generated fields.
	StoreContacts(ctx context.Context, contacts ...domain.Contact) ([]domain.Contact, error)
	// UpdateContact replaces the fields of an existing contact. Returns ErrNotFound for unknown ids.
	UpdateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error)
	// DeleteContact reports whether a row was removed.
	DeleteContact(ctx context.Context, id domain.ContactID) (bool, error)
	// ContactByID returns nil when not found.
	ContactByID(ctx context.Context, id domain.ContactID) (*domain.Contact, error)
	// Contacts lists contacts ordered by last and first name; Search matches names and email.
	Contacts(ctx context.Context, query ListQuery) (Page[domain.Contact], error)
}
