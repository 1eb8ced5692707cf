package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetDriverDeliveriesQueryIsNotConstructed = errors.New(
	"GetDriverDeliveriesQuery must be created via NewGetDriverDeliveriesQuery constructor",
)

// GetDriverDeliveriesQuery lists the deliveries associated with a driver.
type GetDriverDeliveriesQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverDeliveriesQuery creates the query for driverID.
func NewGetDriverDeliveriesQuery(driverID kernel.UUID) (GetDriverDeliveriesQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverDeliveriesQuery{}, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	return GetDriverDeliveriesQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverDeliveriesQueryIsNotConstructed)
}

func (q GetDriverDeliveriesQuery) DriverID() kernel.UUID {
	return q.driverID
}

// DriverDelivery is a delivery together with the order it carries.
// DriverPosition and AssignedAt are nil until the delivery is accepted.
type DriverDelivery struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Status         string
	DriverPosition *kernel.GeoPoint
	AssignedAt     *time.Time
	CreatedAt      time.Time

	UserID      kernel.UUID
	Destination kernel.GeoPoint
	OrderTotal  kernel.Money
	OrderStatus string
}
