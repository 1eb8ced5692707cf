package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/generated/servers"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlaceOrder struct{ mock.Mock }

func (m *mockPlaceOrder) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type mockAcceptDelivery struct{ mock.Mock }

func (m *mockAcceptDelivery) Handle(ctx context.Context, cmd commands.AcceptDeliveryCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockCreateDelivery struct{ mock.Mock }

func (m *mockCreateDelivery) Handle(ctx context.Context, cmd commands.CreateDeliveryCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type mockOrderHistory struct{ mock.Mock }

func (m *mockOrderHistory) Handle(ctx context.Context, q queries.GetOrderHistoryQuery) ([]queries.OrderHistoryEntry, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).([]queries.OrderHistoryEntry)
	return res, args.Error(1)
}

type mockDriverDeliveries struct{ mock.Mock }

func (m *mockDriverDeliveries) Handle(ctx context.Context, q queries.GetDriverDeliveriesQuery) ([]queries.DriverDelivery, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).([]queries.DriverDelivery)
	return res, args.Error(1)
}

type fixture struct {
	echo             *echo.Echo
	placeOrder       *mockPlaceOrder
	acceptDelivery   *mockAcceptDelivery
	createDelivery   *mockCreateDelivery
	orderHistory     *mockOrderHistory
	driverDeliveries *mockDriverDeliveries
	logs             *bytes.Buffer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		echo:             echo.New(),
		placeOrder:       new(mockPlaceOrder),
		acceptDelivery:   new(mockAcceptDelivery),
		createDelivery:   new(mockCreateDelivery),
		orderHistory:     new(mockOrderHistory),
		driverDeliveries: new(mockDriverDeliveries),
		logs:             new(bytes.Buffer),
	}

	doc, err := servers.GetSwagger()
	require.NoError(t, err)
	validator, err := httpadapter.RequestValidator(doc)
	require.NoError(t, err)
	f.echo.Use(validator)

	server := httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:       f.placeOrder,
		AcceptDelivery:   f.acceptDelivery,
		CreateDelivery:   f.createDelivery,
		OrderHistory:     f.orderHistory,
		DriverDeliveries: f.driverDeliveries,
	}, slog.New(slog.NewJSONHandler(f.logs, nil)))
	servers.RegisterHandlers(f.echo, server)
	return f
}

func (f fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var e servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestPlaceOrder_Created(t *testing.T) {
	f := newFixture(t)
	userID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	f.placeOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PlaceOrderCommand) bool {
		return cmd.UserID().IsEqual(userID) && cmd.IdempotencyKey() == "k-1" &&
			cmd.Destination().Latitude() == 52.52
	})).Return(orderID, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders",
		`{"userId":"`+userID.String()+`","latitude":52.52,"longitude":13.405}`,
		"Idempotency-Key", "k-1")

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp servers.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, orderID.String(), resp.OrderId.String())
	f.placeOrder.AssertExpectations(t)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/orders", `{"userId":"`+kernel.NewUUID().String()+`"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "latitude")
	f.placeOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPlaceOrder_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"empty_cart", commands.ErrEmptyCart, http.StatusBadRequest},
		{"in_progress", commands.ErrPlacementInProgress, http.StatusConflict},
		{"storage", fmt.Errorf("%w: %w", commands.ErrOrderPlacementFailed, errors.New("pq: connection refused")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.placeOrder.On("Handle", mock.Anything, mock.Anything).Return(kernel.UUID{}, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/orders",
				`{"userId":"`+kernel.NewUUID().String()+`","latitude":1,"longitude":1}`)

			require.Equal(t, tt.status, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, tt.status, e.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, e.Message, "pq:")
				assert.Contains(t, f.logs.String(), "pq: connection refused")
				assert.Contains(t, f.logs.String(), `"operation":"PlaceOrder"`)
			}
		})
	}
}

func TestAcceptDelivery(t *testing.T) {
	deliveryID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	body := `{"driverId":"` + driverID.String() + `","driverLatitude":52.5,"driverLongitude":13.4}`

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"accepted", nil, http.StatusNoContent},
		{"not_found", errs.NewObjectNotFoundError("delivery", deliveryID.String()), http.StatusNotFound},
		{"invalid_state", delivery.ErrInvalidState, http.StatusConflict},
		{"driver_required", errs.NewValueIsRequiredError("driverId"), http.StatusBadRequest},
		{"storage", commands.ErrAssignmentFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.acceptDelivery.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AcceptDeliveryCommand) bool {
				return cmd.DeliveryID().IsEqual(deliveryID) && cmd.DriverID().IsEqual(driverID)
			})).Return(tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/deliveries/"+deliveryID.String()+"/accept", body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			f.acceptDelivery.AssertExpectations(t)
		})
	}
}

func TestAcceptDelivery_BadPathParameter(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/deliveries/not-a-uuid/accept", `{"driverLatitude":1,"driverLongitude":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.acceptDelivery.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateDelivery(t *testing.T) {
	orderID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()

	f := newFixture(t)
	f.createDelivery.On("Handle", mock.Anything, mock.Anything).Return(deliveryID, nil).Once()
	rec := f.do(http.MethodPost, "/api/v1/deliveries", `{"orderId":"`+orderID.String()+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), deliveryID.String())

	f = newFixture(t)
	f.createDelivery.On("Handle", mock.Anything, mock.Anything).Return(kernel.UUID{}, commands.ErrDeliveryAlreadyActive).Once()
	rec = f.do(http.MethodPost, "/api/v1/deliveries", `{"orderId":"`+orderID.String()+`"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	f = newFixture(t)
	rec = f.do(http.MethodPost, "/api/v1/deliveries", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderHistory(t *testing.T) {
	f := newFixture(t)
	userID := kernel.NewUUID()
	total, _ := kernel.MoneyFromString("25.50")
	price, _ := kernel.MoneyFromString("10.00")
	dest, _ := kernel.NewGeoPoint(52.5, 13.4)
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	f.orderHistory.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderHistoryEntry{{
		ID:          kernel.NewUUID(),
		Total:       total,
		Status:      "placed",
		Destination: dest,
		CreatedAt:   created,
		Items: []queries.OrderHistoryItem{{
			ProductID: kernel.NewUUID(),
			Title:     "Book",
			Author:    "Author",
			Quantity:  2,
			UnitPrice: price,
		}},
	}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/users/"+userID.String()+"/orders", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var orders []servers.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "25.50", orders[0].Total)
	assert.Equal(t, "10.00", orders[0].Items[0].UnitPrice)
	assert.True(t, created.Equal(orders[0].CreatedAt))
}

func TestGetOrderHistory_Empty(t *testing.T) {
	f := newFixture(t)
	f.orderHistory.On("Handle", mock.Anything, mock.Anything).Return([]queries.OrderHistoryEntry{}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/users/"+kernel.NewUUID().String()+"/orders", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetDriverDeliveries(t *testing.T) {
	f := newFixture(t)
	total, _ := kernel.MoneyFromString("3.00")
	dest, _ := kernel.NewGeoPoint(1, 2)
	pos, _ := kernel.NewGeoPoint(3, 4)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	f.driverDeliveries.On("Handle", mock.Anything, mock.Anything).Return([]queries.DriverDelivery{
		{ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Status: "accepted", DriverPosition: &pos, AssignedAt: &at,
			UserID: kernel.NewUUID(), Destination: dest, OrderTotal: total, OrderStatus: "placed"},
		{ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), Status: "unassigned",
			UserID: kernel.NewUUID(), Destination: dest, OrderTotal: total, OrderStatus: "placed"},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/drivers/"+kernel.NewUUID().String()+"/deliveries", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out []servers.Delivery
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	require.NotNil(t, out[0].DriverLatitude)
	assert.InDelta(t, 3.0, *out[0].DriverLatitude, 1e-9)
	assert.Nil(t, out[1].AssignedAt)
	assert.Equal(t, "3.00", out[1].OrderTotal)
}
