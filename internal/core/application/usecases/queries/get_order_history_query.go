// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read denormalised rows straight from the
// database.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists every order of a user with its items.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(userID)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetOrderHistoryQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates the query for userID.
func NewGetOrderHistoryQuery(userID kernel.UUID) (GetOrderHistoryQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return GetOrderHistoryQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// UserID returns the user whose history is read.
func (q GetOrderHistoryQuery) UserID() kernel.UUID {
	return q.userID
}

// OrderHistoryItem is one line of a past order as it was at purchase time.
type OrderHistoryItem struct {
	ProductID kernel.UUID
	Title     string
	Author    string
	Photo     string
	Quantity  int
	UnitPrice kernel.Money
}

// OrderHistoryEntry is one order of the history.
type OrderHistoryEntry struct {
	ID          kernel.UUID
	Total       kernel.Money
	Status      string
	Destination kernel.GeoPoint
	CreatedAt   time.Time
	Items       []OrderHistoryItem
}
