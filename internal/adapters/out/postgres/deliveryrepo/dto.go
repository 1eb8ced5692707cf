// Package deliveryrepo maps the Delivery aggregate to the deliveries table.
package deliveryrepo

import (
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is one deliveries row. Driver columns stay NULL until a driver
// is known or accepts.
type DeliveryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index:idx_deliveries_driver_assigned,priority:1"`
	Status          string
	DriverLatitude  *float64
	DriverLongitude *float64
	AssignedAt      *time.Time `gorm:"index:idx_deliveries_driver_assigned,priority:2,sort:desc"`
	CreatedAt       time.Time
}

// TableName overrides the gorm default.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:         d.ID().Bytes(),
		OrderID:    d.OrderID().Bytes(),
		Status:     d.Status().String(),
		AssignedAt: d.AssignedAt(),
		CreatedAt:  d.CreatedAt(),
	}
	if id := d.DriverID(); id != nil {
		raw := id.Bytes()
		dto.DriverID = &raw
	}
	if p := d.DriverPosition(); p != nil {
		lat, lon := p.Latitude(), p.Longitude()
		dto.DriverLatitude = &lat
		dto.DriverLongitude = &lon
	}
	return dto
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.FromGoogleUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.FromGoogleUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.FromGoogleUUID(*dto.DriverID)
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	var position *kernel.GeoPoint
	if dto.DriverLatitude != nil && dto.DriverLongitude != nil {
		p, posErr := kernel.NewGeoPoint(*dto.DriverLatitude, *dto.DriverLongitude)
		if posErr != nil {
			return nil, posErr
		}
		position = &p
	}

	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(id, orderID, driverID, status, position, dto.AssignedAt, dto.CreatedAt)
}
