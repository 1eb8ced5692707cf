// Package cartrepo reads cart snapshots for the order ledger and clears the
// captured rows. Cart contents are written by another service.
package cartrepo

import (
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemDTO maps the cart_items table.
type CartItemDTO struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int
	CreatedAt time.Time
}

// TableName overrides the gorm default.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// lineRow is one row of the snapshot join.
type lineRow struct {
	ProductID   uuid.UUID
	Quantity    int
	Price       decimal.Decimal
	Title       string
	Author      string
	PhotoBase64 string
}

func toLine(row lineRow) (cart.Line, error) {
	productID, err := kernel.FromGoogleUUID(row.ProductID)
	if err != nil {
		return cart.Line{}, err
	}

	price, err := kernel.NewMoney(row.Price)
	if err != nil {
		return cart.Line{}, err
	}

	return cart.NewLine(productID, row.Quantity, price, row.Title, row.Author, row.PhotoBase64)
}
