package delivery

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	// Unassigned deliveries wait for a driver to accept them.
	Unassigned
	// Accepted deliveries have a driver, a driver position and an assignment time.
	Accepted
	// Delivered is terminal.
	Delivered
	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Unassigned: "unassigned",
	Accepted:   "accepted",
	Delivered:  "delivered",
	Cancelled:  "cancelled",
}

// ParseStatus maps the stored text form back to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a delivery status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsActive reports whether the delivery still counts against the
// one-active-delivery-per-order rule.
func (s Status) IsActive() bool {
	return s == Unassigned || s == Accepted
}

// Accept returns the status after a driver accepts.
//
// Valid transitions:
//   - Unassigned -> Accepted
//   - Accepted -> Accepted (re-acceptance)
//
// Returns ErrInvalidState for every other source status.
func (s Status) Accept() (Status, error) {
	if s != Unassigned && s != Accepted {
		return Unknown, fmt.Errorf("%w: cannot accept a %s delivery", ErrInvalidState, s)
	}
	return Accepted, nil
}

// String returns the text stored in the deliveries.status column.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
