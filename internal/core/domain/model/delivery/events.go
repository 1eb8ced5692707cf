package delivery

import "time"

// AcceptedEvent is published after an acceptance is committed.
type AcceptedEvent struct {
	DeliveryID      string    `json:"deliveryId"`
	OrderID         string    `json:"orderId"`
	DriverID        string    `json:"driverId"`
	DriverLatitude  float64   `json:"driverLatitude"`
	DriverLongitude float64   `json:"driverLongitude"`
	AssignedAt      time.Time `json:"assignedAt"`
}

// AggregateID keys the message by delivery.
func (e AcceptedEvent) AggregateID() string {
	return e.DeliveryID
}
