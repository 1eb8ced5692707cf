package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fraction digits kept for amounts.
const MoneyScale = 2

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromString")

// Money is a non-negative amount in the store currency, backed by shopspring/decimal
// so sums of many fractional-cent lines stay exact.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("10.00")
//	line, _ := price.Mul(2)                   // 20.00
//	total := kernel.ZeroMoney().Add(line)     // 20.00
//	fmt.Println(total)                        // "20.00"
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// ZeroMoney returns a valid amount of 0.00, the starting point for sums.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// NewMoney builds Money from a decimal. Negative values are rejected; more than
// MoneyScale fraction digits are rounded half away from zero.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "+inf")
	}
	return Money{amount: amount.Round(MoneyScale), guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal string such as "25.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Add returns m + other. Adding two valid amounts always yields a valid amount.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Mul returns m × quantity. quantity must be at least 1.
func (m Money) Mul(quantity int) (Money, error) {
	if quantity < 1 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "+inf")
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: guard.NewConstructorGuard()}, nil
}

// Decimal exposes the amount for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsEqual compares amounts numerically, so 1.5 equals 1.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly MoneyScale fraction digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// GoString keeps %#v output readable in test failures.
func (m Money) GoString() string {
	return fmt.Sprintf("kernel.Money(%s)", m.String())
}
