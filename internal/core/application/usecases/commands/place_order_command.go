package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// MaxIdempotencyKeyLength bounds client supplied Idempotency-Key values.
const MaxIdempotencyKeyLength = 255

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand asks to convert the user's cart into an order delivered to
// the given point.
//
// Example:
//
//	lat, lon := 52.52, 13.405
//	cmd, err := NewPlaceOrderCommand(userID, &lat, &lon, r.Header.Get("Idempotency-Key"))
//	if err != nil {
//	    return err // InvalidArgument
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	userID         kernel.UUID
	destination    kernel.GeoPoint
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the request before any storage is touched.
// latitude and longitude are pointers so that an absent value is told apart
// from 0. idempotencyKey is optional.
func NewPlaceOrderCommand(
	userID kernel.UUID,
	latitude, longitude *float64,
	idempotencyKey string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setDestination(latitude, longitude),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// UserID returns the user whose cart is converted.
func (c PlaceOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Destination returns the delivery point.
func (c PlaceOrderCommand) Destination() kernel.GeoPoint {
	return c.destination
}

// IdempotencyKey returns the client key or "" when none was sent.
func (c PlaceOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *PlaceOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	c.userID = userID
	return nil
}

func (c *PlaceOrderCommand) setDestination(latitude, longitude *float64) error {
	var missing []error
	if latitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("latitude"))
	}
	if longitude == nil {
		missing = append(missing, errs.NewValueIsRequiredError("longitude"))
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	p, err := kernel.NewGeoPoint(*latitude, *longitude)
	if err != nil {
		return err
	}
	c.destination = p
	return nil
}

func (c *PlaceOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > MaxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotencyKey length", len(key), 1, MaxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
