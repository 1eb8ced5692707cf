package cart

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a zero-value Line is used.
var ErrLineIsNotConstructed = errors.New("cart line must be created via NewLine")

// Line is one product of a cart with the price and descriptive data read at
// snapshot time.
type Line struct {
	productID kernel.UUID
	quantity  int
	unitPrice kernel.Money
	title     string
	author    string
	photo     string
	guard     guard.ConstructorGuard
}

// NewLine validates and builds a cart line.
//
// Parameters:
//   - productID: product identifier
//   - quantity: number of units, at least 1
//   - unitPrice: live product price at snapshot time
//   - title, author, photo: product data copied into the order items
//
// Returns:
//   - Line: the validated line
//   - error: joined validation errors
func NewLine(productID kernel.UUID, quantity int, unitPrice kernel.Money, title, author, photo string) (Line, error) {
	l := Line{
		title:  title,
		author: author,
		photo:  photo,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setProductID(productID),
		l.setQuantity(quantity),
		l.setUnitPrice(unitPrice),
	); err != nil {
		return Line{}, err
	}

	return l, nil
}

// Validate returns ErrLineIsNotConstructed for the zero value.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l Line) ProductID() kernel.UUID  { return l.productID }
func (l Line) Quantity() int           { return l.quantity }
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l Line) Title() string           { return l.title }
func (l Line) Author() string          { return l.author }
func (l Line) Photo() string           { return l.photo }

// Subtotal returns unitPrice × quantity.
func (l Line) Subtotal() kernel.Money {
	// quantity is validated at construction, Mul cannot fail here.
	sub, _ := l.unitPrice.Mul(l.quantity)
	return sub
}

func (l *Line) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	l.productID = id
	return nil
}

func (l *Line) setQuantity(q int) error {
	if q < 1 {
		return errs.NewValueIsOutOfRangeErrorWithCause("quantity", q, 1, "+inf",
			fmt.Errorf("%d is less than 1", q))
	}
	l.quantity = q
	return nil
}

func (l *Line) setUnitPrice(p kernel.Money) error {
	if err := p.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("unitPrice", err)
	}
	l.unitPrice = p
	return nil
}
