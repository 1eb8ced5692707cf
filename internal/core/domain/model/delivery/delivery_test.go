package delivery_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

func TestNewDelivery(t *testing.T) {
	now := time.Now()

	t.Run("starts_unassigned", func(t *testing.T) {
		orderID := kernel.NewUUID()

		d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, nil, now)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, delivery.Unassigned, d.Status())
		assert.True(t, d.OrderID().IsEqual(orderID))
		assert.Nil(t, d.DriverID())
		assert.Nil(t, d.DriverPosition())
		assert.Nil(t, d.AssignedAt())
	})

	t.Run("with_known_driver", func(t *testing.T) {
		driverID := kernel.NewUUID()

		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), &driverID, now)

		require.NoError(t, err)
		require.NotNil(t, d.DriverID())
		assert.True(t, d.DriverID().IsEqual(driverID))
	})

	t.Run("missing_ids", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.UUID{}, kernel.UUID{}, nil, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "deliveryId")
		assert.Contains(t, err.Error(), "orderId")
		assert.Nil(t, d)
	})
}

func TestDelivery_Accept(t *testing.T) {
	driverID := kernel.NewUUID()
	otherDriver := kernel.NewUUID()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	newUnassigned := func(t *testing.T, driver *kernel.UUID) *delivery.Delivery {
		t.Helper()
		d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), driver, now)
		require.NoError(t, err)
		return d
	}

	t.Run("unassigned_to_accepted", func(t *testing.T) {
		d := newUnassigned(t, nil)
		pos := point(t, 48.85, 2.35)
		acceptedAt := now.Add(time.Minute)

		err := d.Accept(&driverID, pos, acceptedAt)

		require.NoError(t, err)
		assert.Equal(t, delivery.Accepted, d.Status())
		require.NotNil(t, d.DriverID())
		assert.True(t, d.DriverID().IsEqual(driverID))
		require.NotNil(t, d.DriverPosition())
		assert.True(t, d.DriverPosition().IsEqual(pos))
		require.NotNil(t, d.AssignedAt())
		assert.Equal(t, acceptedAt, *d.AssignedAt())
	})

	t.Run("preassigned_driver_may_omit_id", func(t *testing.T) {
		d := newUnassigned(t, &driverID)

		require.NoError(t, d.Accept(nil, point(t, 1, 1), now))
		assert.True(t, d.DriverID().IsEqual(driverID))
	})

	t.Run("driver_required_when_none_known", func(t *testing.T) {
		d := newUnassigned(t, nil)

		err := d.Accept(nil, point(t, 1, 1), now)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, delivery.Unassigned, d.Status())
	})

	t.Run("position_required", func(t *testing.T) {
		d := newUnassigned(t, nil)

		err := d.Accept(&driverID, kernel.GeoPoint{}, now)

		assert.True(t, errs.IsInvalidArgument(err))
		assert.Equal(t, delivery.Unassigned, d.Status())
	})

	t.Run("reaccept_by_same_driver_overwrites_position", func(t *testing.T) {
		d := newUnassigned(t, nil)
		require.NoError(t, d.Accept(&driverID, point(t, 1, 1), now))

		later := now.Add(time.Hour)
		require.NoError(t, d.Accept(&driverID, point(t, 2, 2), later))

		assert.Equal(t, delivery.Accepted, d.Status())
		assert.InDelta(t, 2.0, d.DriverPosition().Latitude(), 1e-9)
		assert.Equal(t, later, *d.AssignedAt())
	})

	t.Run("reaccept_by_other_driver_fails", func(t *testing.T) {
		d := newUnassigned(t, nil)
		require.NoError(t, d.Accept(&driverID, point(t, 1, 1), now))

		err := d.Accept(&otherDriver, point(t, 3, 3), now.Add(time.Hour))

		require.ErrorIs(t, err, delivery.ErrInvalidState)
		assert.True(t, d.DriverID().IsEqual(driverID))
		assert.InDelta(t, 1.0, d.DriverPosition().Latitude(), 1e-9)
	})

	t.Run("terminal_states_cannot_be_accepted", func(t *testing.T) {
		for _, st := range []delivery.Status{delivery.Delivered, delivery.Cancelled} {
			d, err := delivery.RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), &driverID, st,
				ptr(point(t, 1, 1)), ptr(now), now)
			require.NoError(t, err)

			err = d.Accept(&driverID, point(t, 2, 2), now)

			require.ErrorIs(t, err, delivery.ErrInvalidState, st.String())
			assert.Equal(t, st, d.Status())
		}
	})
}

func TestRestoreDelivery(t *testing.T) {
	now := time.Now()

	t.Run("accepted_requires_assignment_data", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), nil, delivery.Accepted, nil, nil, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown_status", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), nil, delivery.Unknown, nil, nil, now)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDelivery_AcceptedEvent(t *testing.T) {
	driverID := kernel.NewUUID()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, d.Accept(&driverID, point(t, 5, 6), time.Now()))

	e := d.AcceptedEvent()

	assert.Equal(t, d.ID().String(), e.AggregateID())
	assert.Equal(t, driverID.String(), e.DriverID)
	assert.InDelta(t, 6.0, e.DriverLongitude, 1e-9)
	assert.False(t, e.AssignedAt.IsZero())
}

func TestDelivery_ZeroValue(t *testing.T) {
	assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, (&delivery.Delivery{}).Validate())
}
