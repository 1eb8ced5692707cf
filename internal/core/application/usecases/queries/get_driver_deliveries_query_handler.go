package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const driverDeliveriesQuery = `
SELECT d.id,
       d.order_id,
       d.status,
       d.driver_latitude,
       d.driver_longitude,
       d.assigned_at,
       d.created_at,
       o.user_id,
       o.latitude,
       o.longitude,
       o.total,
       o.status
FROM deliveries d
JOIN orders o ON o.id = d.order_id
WHERE d.driver_id = ?
ORDER BY d.assigned_at DESC NULLS LAST, d.created_at DESC, d.id`

// GetDriverDeliveriesQueryHandler reads a driver's deliveries with their
// orders in one query.
type GetDriverDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetDriverDeliveriesQueryHandler(db *gorm.DB) GetDriverDeliveriesQueryHandler {
	return GetDriverDeliveriesQueryHandler{db: db}
}

// Handle returns the most recently assigned deliveries first; deliveries not
// yet accepted come last.
func (h GetDriverDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDriverDeliveriesQuery,
) ([]DriverDelivery, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(driverDeliveriesQuery, query.DriverID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]DriverDelivery, 0)
	for rows.Next() {
		var (
			id, orderID, userID uuid.UUID
			status, orderStatus string
			driverLat           sql.NullFloat64
			driverLon           sql.NullFloat64
			assignedAt          sql.NullTime
			createdAt           time.Time
			latitude, longitude float64
			total               decimal.Decimal
		)

		if err = rows.Scan(
			&id, &orderID, &status, &driverLat, &driverLon, &assignedAt, &createdAt,
			&userID, &latitude, &longitude, &total, &orderStatus,
		); err != nil {
			return nil, err
		}

		d := DriverDelivery{
			Status:      status,
			CreatedAt:   createdAt.UTC(),
			OrderStatus: orderStatus,
		}
		if d.ID, err = kernel.FromGoogleUUID(id); err != nil {
			return nil, err
		}
		if d.OrderID, err = kernel.FromGoogleUUID(orderID); err != nil {
			return nil, err
		}
		if d.UserID, err = kernel.FromGoogleUUID(userID); err != nil {
			return nil, err
		}
		if d.Destination, err = kernel.NewGeoPoint(latitude, longitude); err != nil {
			return nil, err
		}
		if d.OrderTotal, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		if driverLat.Valid && driverLon.Valid {
			p, posErr := kernel.NewGeoPoint(driverLat.Float64, driverLon.Float64)
			if posErr != nil {
				return nil, posErr
			}
			d.DriverPosition = &p
		}
		if assignedAt.Valid {
			at := assignedAt.Time.UTC()
			d.AssignedAt = &at
		}

		deliveries = append(deliveries, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
