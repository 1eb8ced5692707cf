package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Convert the user's cart into an order
	// (POST /api/v1/orders)
	PlaceOrder(ctx echo.Context, params PlaceOrderParams) error
	// List a user's orders, newest first
	// (GET /api/v1/users/{userId}/orders)
	GetOrderHistory(ctx echo.Context, userId openapi_types.UUID) error
	// Open an unassigned delivery for an order
	// (POST /api/v1/deliveries)
	CreateDelivery(ctx echo.Context) error
	// A driver accepts a delivery
	// (POST /api/v1/deliveries/{deliveryId}/accept)
	AcceptDelivery(ctx echo.Context, deliveryId openapi_types.UUID) error
	// List a driver's deliveries, most recently assigned first
	// (GET /api/v1/drivers/{driverId}/deliveries)
	GetDriverDeliveries(ctx echo.Context, driverId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// PlaceOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	var err error

	var params PlaceOrderParams

	headers := ctx.Request().Header
	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var IdempotencyKey string
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &IdempotencyKey, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}

		params.IdempotencyKey = &IdempotencyKey
	}

	err = w.Handler.PlaceOrder(ctx, params)
	return err
}

// GetOrderHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	var err error
	var userId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "userId", ctx.Param("userId"), &userId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter userId: %s", err))
	}

	err = w.Handler.GetOrderHistory(ctx, userId)
	return err
}

// CreateDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) CreateDelivery(ctx echo.Context) error {
	return w.Handler.CreateDelivery(ctx)
}

// AcceptDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptDelivery(ctx echo.Context) error {
	var err error
	var deliveryId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "deliveryId", ctx.Param("deliveryId"), &deliveryId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter deliveryId: %s", err))
	}

	err = w.Handler.AcceptDelivery(ctx, deliveryId)
	return err
}

// GetDriverDeliveries converts echo context to params.
func (w *ServerInterfaceWrapper) GetDriverDeliveries(ctx echo.Context) error {
	var err error
	var driverId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "driverId", ctx.Param("driverId"), &driverId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter driverId: %s", err))
	}

	err = w.Handler.GetDriverDeliveries(ctx, driverId)
	return err
}

// EchoRouter is implemented by both echo.Echo and echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/deliveries", wrapper.CreateDelivery)
	router.POST(baseURL+"/api/v1/deliveries/:deliveryId/accept", wrapper.AcceptDelivery)
	router.GET(baseURL+"/api/v1/drivers/:driverId/deliveries", wrapper.GetDriverDeliveries)
	router.POST(baseURL+"/api/v1/orders", wrapper.PlaceOrder)
	router.GET(baseURL+"/api/v1/users/:userId/orders", wrapper.GetOrderHistory)
}
