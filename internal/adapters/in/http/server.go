package http

import (
	"context"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (kernel.UUID, error)
	}

	AcceptDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptDeliveryCommand) error
	}

	CreateDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (kernel.UUID, error)
	}

	OrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.OrderHistoryEntry, error)
	}

	DriverDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.GetDriverDeliveriesQuery) ([]queries.DriverDelivery, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	PlaceOrder       PlaceOrderHandler
	AcceptDelivery   AcceptDeliveryHandler
	CreateDelivery   CreateDeliveryHandler
	OrderHistory     OrderHistoryHandler
	DriverDeliveries DriverDeliveriesHandler
}

// Server implements servers.ServerInterface on top of the application layer.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates the HTTP server adapter.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context, params servers.PlaceOrderParams) error {
	var body servers.PlaceOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var userID kernel.UUID
	if body.UserId != nil {
		// nil UUID stays zero and is reported as missing by the command
		userID, _ = kernel.FromGoogleUUID(*body.UserId)
	}
	var key string
	if params.IdempotencyKey != nil {
		key = *params.IdempotencyKey
	}

	cmd, err := commands.NewPlaceOrderCommand(userID, body.Latitude, body.Longitude, key)
	if err != nil {
		return s.fail(ctx, "PlaceOrder", err)
	}

	orderID, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "PlaceOrder", err, "user_id", userID.String())
	}

	return ctx.JSON(http.StatusCreated, servers.PlaceOrderResponse{OrderId: orderID.Bytes()})
}

// AcceptDelivery handles POST /api/v1/deliveries/{deliveryId}/accept.
func (s *Server) AcceptDelivery(ctx echo.Context, deliveryId openapi_types.UUID) error {
	var body servers.AcceptDeliveryJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryID, _ := kernel.FromGoogleUUID(deliveryId)
	driverID, err := optionalUUID("driverId", body.DriverId)
	if err != nil {
		return s.fail(ctx, "AcceptDelivery", err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, body.DriverLatitude, body.DriverLongitude, driverID)
	if err != nil {
		return s.fail(ctx, "AcceptDelivery", err)
	}

	if err = s.handlers.AcceptDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "AcceptDelivery", err, "delivery_id", deliveryId.String())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	var body servers.CreateDeliveryJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var orderID kernel.UUID
	if body.OrderId != nil {
		orderID, _ = kernel.FromGoogleUUID(*body.OrderId)
	}
	driverID, err := optionalUUID("driverId", body.DriverId)
	if err != nil {
		return s.fail(ctx, "CreateDelivery", err)
	}

	cmd, err := commands.NewCreateDeliveryCommand(orderID, driverID)
	if err != nil {
		return s.fail(ctx, "CreateDelivery", err)
	}

	deliveryID, err := s.handlers.CreateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "CreateDelivery", err, "order_id", orderID.String())
	}

	return ctx.JSON(http.StatusCreated, servers.CreateDeliveryResponse{DeliveryId: deliveryID.Bytes()})
}

// GetOrderHistory handles GET /api/v1/users/{userId}/orders.
func (s *Server) GetOrderHistory(ctx echo.Context, userId openapi_types.UUID) error {
	userID, _ := kernel.FromGoogleUUID(userId)
	query, err := queries.NewGetOrderHistoryQuery(userID)
	if err != nil {
		return s.fail(ctx, "GetOrderHistory", err)
	}

	history, err := s.handlers.OrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "GetOrderHistory", err, "user_id", userId.String())
	}

	response := make([]servers.Order, len(history))
	for i, o := range history {
		items := make([]servers.OrderItem, len(o.Items))
		for j, item := range o.Items {
			items[j] = servers.OrderItem{
				ProductId: item.ProductID.Bytes(),
				Title:     item.Title,
				Author:    item.Author,
				Photo:     item.Photo,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice.String(),
			}
		}

		response[i] = servers.Order{
			Id:        o.ID.Bytes(),
			Total:     o.Total.String(),
			Status:    o.Status,
			Latitude:  o.Destination.Latitude(),
			Longitude: o.Destination.Longitude(),
			CreatedAt: o.CreatedAt,
			Items:     items,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDriverDeliveries handles GET /api/v1/drivers/{driverId}/deliveries.
func (s *Server) GetDriverDeliveries(ctx echo.Context, driverId openapi_types.UUID) error {
	driverID, _ := kernel.FromGoogleUUID(driverId)
	query, err := queries.NewGetDriverDeliveriesQuery(driverID)
	if err != nil {
		return s.fail(ctx, "GetDriverDeliveries", err)
	}

	deliveries, err := s.handlers.DriverDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "GetDriverDeliveries", err, "driver_id", driverId.String())
	}

	response := make([]servers.Delivery, len(deliveries))
	for i, d := range deliveries {
		out := servers.Delivery{
			Id:                   d.ID.Bytes(),
			OrderId:              d.OrderID.Bytes(),
			Status:               d.Status,
			AssignedAt:           d.AssignedAt,
			CreatedAt:            d.CreatedAt,
			UserId:               d.UserID.Bytes(),
			DestinationLatitude:  d.Destination.Latitude(),
			DestinationLongitude: d.Destination.Longitude(),
			OrderTotal:           d.OrderTotal.String(),
			OrderStatus:          d.OrderStatus,
		}
		if d.DriverPosition != nil {
			lat, lon := d.DriverPosition.Latitude(), d.DriverPosition.Longitude()
			out.DriverLatitude = &lat
			out.DriverLongitude = &lon
		}
		response[i] = out
	}

	return ctx.JSON(http.StatusOK, response)
}

func optionalUUID(name string, id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	v, err := kernel.FromGoogleUUID(*id)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &v, nil
}
