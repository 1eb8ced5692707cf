package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const orderHistoryQuery = `
SELECT o.id,
       o.total,
       o.status,
       o.latitude,
       o.longitude,
       o.created_at,
       oi.product_id,
       oi.title,
       oi.author,
       oi.photo_base64,
       oi.quantity,
       oi.unit_price
FROM orders o
LEFT JOIN order_items oi ON oi.order_id = o.id
WHERE o.user_id = ?
ORDER BY o.created_at DESC, o.id, oi.position`

// GetOrderHistoryQueryHandler reads a user's orders in one round trip.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates the handler on the shared pool.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the orders newest first, items in cart order. A user without
// orders, or an unknown user, gets an empty slice.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]OrderHistoryEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderHistoryQuery, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]OrderHistoryEntry, 0)
	for rows.Next() {
		var (
			orderID       uuid.UUID
			total         decimal.Decimal
			status        string
			latitude      float64
			longitude     float64
			createdAt     time.Time
			productID     uuid.NullUUID
			title, author sql.NullString
			photo         sql.NullString
			quantity      sql.NullInt64
			unitPrice     decimal.NullDecimal
		)

		if err = rows.Scan(
			&orderID, &total, &status, &latitude, &longitude, &createdAt,
			&productID, &title, &author, &photo, &quantity, &unitPrice,
		); err != nil {
			return nil, err
		}

		if n := len(history); n == 0 || history[n-1].ID.Bytes() != orderID {
			entry, entryErr := newHistoryEntry(orderID, total, status, latitude, longitude, createdAt)
			if entryErr != nil {
				return nil, entryErr
			}
			history = append(history, entry)
		}

		if !productID.Valid {
			continue
		}

		item, itemErr := newHistoryItem(productID.UUID, title.String, author.String, photo.String,
			int(quantity.Int64), unitPrice.Decimal)
		if itemErr != nil {
			return nil, fmt.Errorf("order %s: %w", orderID, itemErr)
		}
		last := &history[len(history)-1]
		last.Items = append(last.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

func newHistoryEntry(
	id uuid.UUID,
	total decimal.Decimal,
	status string,
	latitude, longitude float64,
	createdAt time.Time,
) (OrderHistoryEntry, error) {
	orderID, err := kernel.FromGoogleUUID(id)
	if err != nil {
		return OrderHistoryEntry{}, err
	}
	amount, err := kernel.NewMoney(total)
	if err != nil {
		return OrderHistoryEntry{}, err
	}
	destination, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return OrderHistoryEntry{}, err
	}

	return OrderHistoryEntry{
		ID:          orderID,
		Total:       amount,
		Status:      status,
		Destination: destination,
		CreatedAt:   createdAt.UTC(),
		Items:       make([]OrderHistoryItem, 0),
	}, nil
}

func newHistoryItem(
	id uuid.UUID,
	title, author, photo string,
	quantity int,
	price decimal.Decimal,
) (OrderHistoryItem, error) {
	productID, err := kernel.FromGoogleUUID(id)
	if err != nil {
		return OrderHistoryItem{}, err
	}
	unitPrice, err := kernel.NewMoney(price)
	if err != nil {
		return OrderHistoryItem{}, err
	}

	return OrderHistoryItem{
		ProductID: productID,
		Title:     title,
		Author:    author,
		Photo:     photo,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}
