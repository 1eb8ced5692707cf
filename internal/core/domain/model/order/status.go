package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// This service only creates orders in Placed. Delivered and Cancelled are set by
// fulfilment processes and are accepted when restoring from storage.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	// Placed is the status of a freshly created order.
	Placed
	// Delivered means the goods reached the destination.
	Delivered
	// Cancelled means the order will not be fulfilled.
	Cancelled
)

var statusNames = map[Status]string{
	Placed:    "placed",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// ParseStatus maps the stored text form back to a Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the text stored in the orders.status column.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
