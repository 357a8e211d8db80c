package domain

import (
	"github.com/google/uuid"
)

// IDs travel as canonical UUID strings in JSON. The zero ID encodes as an
// empty string so unset references stay readable.

func marshalID(id uuid.UUID) ([]byte, error) {
	if id == uuid.Nil {
		return []byte{}, nil
	}

	return id.MarshalText()
}

func unmarshalID(dst *uuid.UUID, text []byte) error {
	if len(text) == 0 {
		*dst = uuid.Nil

		return nil
	}

	return dst.UnmarshalText(text)
}

func (id UserID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *UserID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id ContactID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *ContactID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id DomainID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *DomainID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id DomainInformationID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *DomainInformationID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id DomainRequestID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *DomainRequestID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id InvitationID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *InvitationID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id PortfolioID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *PortfolioID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id SuborganizationID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *SuborganizationID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}

func (id TransitionDomainID) MarshalText() ([]byte, error) {
	return marshalID(uuid.UUID(id))
}

func (id *TransitionDomainID) UnmarshalText(text []byte) error {
	return unmarshalID((*uuid.UUID)(id), text)
}
