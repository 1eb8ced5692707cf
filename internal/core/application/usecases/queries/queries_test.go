package queries_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderHistoryQuery(t *testing.T) {
	userID := kernel.NewUUID()

	q, err := queries.NewGetOrderHistoryQuery(userID)
	require.NoError(t, err)
	assert.NoError(t, q.Validate())
	assert.True(t, q.UserID().IsEqual(userID))

	_, err = queries.NewGetOrderHistoryQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetOrderHistoryQuery{}.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
}

func TestNewGetDriverDeliveriesQuery(t *testing.T) {
	driverID := kernel.NewUUID()

	q, err := queries.NewGetDriverDeliveriesQuery(driverID)
	require.NoError(t, err)
	assert.True(t, q.DriverID().IsEqual(driverID))

	_, err = queries.NewGetDriverDeliveriesQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetDriverDeliveriesQuery{}.Validate(), queries.ErrGetDriverDeliveriesQueryIsNotConstructed)
}
