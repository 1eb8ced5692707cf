package cart

import (
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Snapshot is the ordered set of lines read from one user's cart.
// An empty Snapshot is valid: it means the cart had no rows.
type Snapshot struct {
	userID kernel.UUID
	lines  []Line
}

// NewSnapshot builds a snapshot for userID. Every line must be constructed.
func NewSnapshot(userID kernel.UUID, lines []Line) (Snapshot, error) {
	if err := userID.Validate(); err != nil {
		return Snapshot{}, errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return Snapshot{}, err
		}
	}

	return Snapshot{userID: userID, lines: slices.Clone(lines)}, nil
}

// UserID returns the cart owner.
func (s Snapshot) UserID() kernel.UUID {
	return s.userID
}

// Lines returns a copy of the lines in cart insertion order.
func (s Snapshot) Lines() []Line {
	return slices.Clone(s.lines)
}

// IsEmpty reports whether the cart had no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.lines) == 0
}

// ProductIDs returns the products captured by the snapshot, used to clear
// exactly these rows.
func (s Snapshot) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(s.lines))
	for _, l := range s.lines {
		ids = append(ids, l.productID)
	}
	return ids
}

// Total sums the line subtotals.
func (s Snapshot) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
