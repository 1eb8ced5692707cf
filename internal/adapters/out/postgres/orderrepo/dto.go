// Package orderrepo maps the Order aggregate to the orders and order_items tables.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row with its items.
type OrderDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;index:idx_orders_user_created,priority:1"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2)"`
	Latitude  float64
	Longitude float64
	Status    string
	CreatedAt time.Time      `gorm:"index:idx_orders_user_created,priority:2,sort:desc"`
	Items     []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the gorm default.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order_items row. Product data is a copy, not a reference.
type OrderItemDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid"`
	Position    int
	ProductID   uuid.UUID `gorm:"type:uuid"`
	Title       string
	Author      string
	PhotoBase64 string
	Quantity    int
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName overrides the gorm default.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     o.ID().Bytes(),
			Position:    it.Position(),
			ProductID:   it.ProductID().Bytes(),
			Title:       it.Title(),
			Author:      it.Author(),
			PhotoBase64: it.Photo(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:        o.ID().Bytes(),
		UserID:    o.UserID().Bytes(),
		Total:     o.Total().Decimal(),
		Latitude:  o.Destination().Latitude(),
		Longitude: o.Destination().Longitude(),
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
		Items:     items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.FromGoogleUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.FromGoogleUUID(dto.UserID)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := itemToDomain(it)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, userID, items, total, destination, status, dto.CreatedAt)
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.FromGoogleUUID(dto.ProductID)
	if err != nil {
		return order.Item{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	return order.RestoreItem(dto.Position, productID, dto.Title, dto.Author, dto.PhotoBase64, dto.Quantity, unitPrice)
}
