package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies users, products, orders, deliveries and outbox events.
// It wraps github.com/google/uuid; the nil UUID is treated as "not set".
//
// Example:
//
//	orderID := kernel.NewUUID()
//	userID, err := kernel.UUIDFromString(req.UserId)
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("userId", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn or hyphen-less form.
// The nil UUID is rejected with ErrUUIDIsNotConstructed.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return FromGoogleUUID(id)
}

// FromGoogleUUID converts a uuid.UUID coming from storage or from generated
// transport types. The nil UUID is rejected.
//
// Returns:
//   - UUID: the wrapped identifier
//   - error: ErrUUIDIsNotConstructed for uuid.Nil
func FromGoogleUUID(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, used by repository DTOs.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether the UUID was never set.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
