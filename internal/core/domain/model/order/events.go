package order

import "time"

// PlacedEvent is published after an order is committed.
type PlacedEvent struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Total      string    `json:"total"`
	ItemCount  int       `json:"itemCount"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AggregateID is used as the message key so events of one order stay ordered.
func (e PlacedEvent) AggregateID() string {
	return e.OrderID
}
