package commands_test

import (
	"math"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAcceptDeliveryCommand(t *testing.T) {
	deliveryID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, ptr(1.5), ptr(2.5), &driverID)
	require.NoError(t, err)
	assert.True(t, cmd.DeliveryID().IsEqual(deliveryID))
	require.NotNil(t, cmd.DriverID())
	assert.True(t, cmd.DriverID().IsEqual(driverID))
	assert.InDelta(t, 2.5, cmd.DriverPosition().Longitude(), 1e-9)

	cmd, err = commands.NewAcceptDeliveryCommand(deliveryID, ptr(1.5), ptr(2.5), nil)
	require.NoError(t, err)
	assert.Nil(t, cmd.DriverID())

	_, err = commands.NewAcceptDeliveryCommand(deliveryID, nil, ptr(2.5), nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "driverLatitude")

	_, err = commands.NewAcceptDeliveryCommand(kernel.UUID{}, ptr(1.0), ptr(1.0), nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err = commands.NewAcceptDeliveryCommand(deliveryID, ptr(-95.0), ptr(181.0), nil)
	require.NoError(t, err)
	assert.InDelta(t, -95.0, cmd.DriverPosition().Latitude(), 1e-9)

	_, err = commands.NewAcceptDeliveryCommand(deliveryID, ptr(0.0), ptr(math.Inf(1)), nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.ErrorIs(t, commands.AcceptDeliveryCommand{}.Validate(), commands.ErrAcceptDeliveryCommandIsNotConstructed)
}
