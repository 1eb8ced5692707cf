package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/deliveryrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *deliveryrepo.GormDeliveryRepository
	orderID    kernel.UUID
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate())

	userID, orderID := uuid.New(), uuid.New()
	suite.Require().NoError(suite.pg.InsertUser(ctx, userID))
	suite.Require().NoError(suite.pg.DB.Exec(
		"INSERT INTO orders (id, user_id, total, latitude, longitude) VALUES (?, ?, 10, 1, 2)",
		orderID, userID).Error)
	suite.orderID, _ = kernel.FromGoogleUUID(orderID)

	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.pg.DB)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) newDelivery() *delivery.Delivery {
	d, err := delivery.NewDelivery(kernel.NewUUID(), suite.orderID, nil, time.Now().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return d
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	d := suite.newDelivery()

	suite.Require().NoError(suite.repository.Add(ctx, d))
	got, err := suite.repository.Get(ctx, d.ID())

	suite.Require().NoError(err)
	suite.Equal(delivery.Unassigned, got.Status())
	suite.True(got.OrderID().IsEqual(suite.orderID))
	suite.Nil(got.DriverID())
	suite.Nil(got.DriverPosition())
	suite.Nil(got.AssignedAt())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_SecondActiveDeliveryRejected() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newDelivery()))

	err := suite.repository.Add(ctx, suite.newDelivery())

	suite.ErrorIs(err, ports.ErrDeliveryAlreadyActive)
	suite.Equal(int64(1), suite.pg.Count(ctx, "deliveries", ""))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_AfterTerminalDeliveryAllowed() {
	ctx := context.Background()
	first := suite.newDelivery()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.pg.DB.Exec("UPDATE deliveries SET status = 'cancelled' WHERE id = ?", first.ID().Bytes()).Error)

	suite.NoError(suite.repository.Add(ctx, suite.newDelivery()))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_UnknownOrder() {
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), nil, time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), d)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_PersistsAcceptance() {
	ctx := context.Background()
	d := suite.newDelivery()
	suite.Require().NoError(suite.repository.Add(ctx, d))

	driverID := kernel.NewUUID()
	pos, _ := kernel.NewGeoPoint(48.8566, 2.3522)
	acceptedAt := time.Now().Truncate(time.Microsecond)
	suite.Require().NoError(d.Accept(&driverID, pos, acceptedAt))

	suite.Require().NoError(suite.repository.Update(ctx, d))

	got, err := suite.repository.GetForUpdate(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Accepted, got.Status())
	suite.True(got.DriverID().IsEqual(driverID))
	suite.True(got.DriverPosition().IsEqual(pos))
	suite.True(got.AssignedAt().Equal(acceptedAt))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	err := suite.repository.Update(context.Background(), suite.newDelivery())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDeliveryRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
