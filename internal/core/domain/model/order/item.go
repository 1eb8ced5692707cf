package order

import (
	"errors"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Item is an immutable order line. Product data is denormalised so later
// catalog edits do not change the order.
type Item struct {
	position  int
	productID kernel.UUID
	title     string
	author    string
	photo     string
	quantity  int
	unitPrice kernel.Money
}

func itemFromLine(position int, l cart.Line) Item {
	return Item{
		position:  position,
		productID: l.ProductID(),
		title:     l.Title(),
		author:    l.Author(),
		photo:     l.Photo(),
		quantity:  l.Quantity(),
		unitPrice: l.UnitPrice(),
	}
}

// RestoreItem rebuilds an item from storage.
func RestoreItem(
	position int,
	productID kernel.UUID,
	title, author, photo string,
	quantity int,
	unitPrice kernel.Money,
) (Item, error) {
	var qtyErr error
	if quantity < 1 {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "+inf")
	}
	if err := errors.Join(productID.Validate(), unitPrice.Validate(), qtyErr); err != nil {
		return Item{}, err
	}

	return Item{
		position:  position,
		productID: productID,
		title:     title,
		author:    author,
		photo:     photo,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

func (i Item) Position() int           { return i.position }
func (i Item) ProductID() kernel.UUID  { return i.productID }
func (i Item) Title() string           { return i.title }
func (i Item) Author() string          { return i.author }
func (i Item) Photo() string           { return i.photo }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// Subtotal returns unitPrice × quantity.
func (i Item) Subtotal() kernel.Money {
	sub, _ := i.unitPrice.Mul(i.quantity)
	return sub
}
