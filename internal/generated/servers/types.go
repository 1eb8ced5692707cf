// Package servers holds the HTTP contract described by openapi.yaml: request
// and response types, the ServerInterface implemented by the http adapter and
// the echo route registration.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// AcceptDeliveryRequest defines model for AcceptDeliveryRequest.
type AcceptDeliveryRequest struct {
	DriverId        *openapi_types.UUID `json:"driverId,omitempty"`
	DriverLatitude  *float64            `json:"driverLatitude,omitempty"`
	DriverLongitude *float64            `json:"driverLongitude,omitempty"`
}

// CreateDeliveryRequest defines model for CreateDeliveryRequest.
type CreateDeliveryRequest struct {
	DriverId *openapi_types.UUID `json:"driverId,omitempty"`
	OrderId  *openapi_types.UUID `json:"orderId,omitempty"`
}

// CreateDeliveryResponse defines model for CreateDeliveryResponse.
type CreateDeliveryResponse struct {
	DeliveryId openapi_types.UUID `json:"deliveryId"`
}

// Delivery defines model for Delivery.
type Delivery struct {
	AssignedAt           *time.Time         `json:"assignedAt,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	DestinationLatitude  float64            `json:"destinationLatitude"`
	DestinationLongitude float64            `json:"destinationLongitude"`
	DriverLatitude       *float64           `json:"driverLatitude,omitempty"`
	DriverLongitude      *float64           `json:"driverLongitude,omitempty"`
	Id                   openapi_types.UUID `json:"id"`
	OrderId              openapi_types.UUID `json:"orderId"`
	OrderStatus          string             `json:"orderStatus"`
	OrderTotal           string             `json:"orderTotal"`
	Status               string             `json:"status"`
	UserId               openapi_types.UUID `json:"userId"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt time.Time          `json:"createdAt"`
	Id        openapi_types.UUID `json:"id"`
	Items     []OrderItem        `json:"items"`
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	Status    string             `json:"status"`
	Total     string             `json:"total"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Author    string             `json:"author"`
	Photo     string             `json:"photo"`
	ProductId openapi_types.UUID `json:"productId"`
	Quantity  int                `json:"quantity"`
	Title     string             `json:"title"`
	UnitPrice string             `json:"unitPrice"`
}

// PlaceOrderRequest defines model for PlaceOrderRequest.
type PlaceOrderRequest struct {
	Latitude  *float64            `json:"latitude,omitempty"`
	Longitude *float64            `json:"longitude,omitempty"`
	UserId    *openapi_types.UUID `json:"userId,omitempty"`
}

// PlaceOrderResponse defines model for PlaceOrderResponse.
type PlaceOrderResponse struct {
	OrderId openapi_types.UUID `json:"orderId"`
}

// PlaceOrderParams defines parameters for PlaceOrder.
type PlaceOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// PlaceOrderJSONRequestBody defines body for PlaceOrder for application/json ContentType.
type PlaceOrderJSONRequestBody = PlaceOrderRequest

// CreateDeliveryJSONRequestBody defines body for CreateDelivery for application/json ContentType.
type CreateDeliveryJSONRequestBody = CreateDeliveryRequest

// AcceptDeliveryJSONRequestBody defines body for AcceptDelivery for application/json ContentType.
type AcceptDeliveryJSONRequestBody = AcceptDeliveryRequest
