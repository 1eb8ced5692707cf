package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type testEvent struct {
	ID string `json:"id"`
}

func (e testEvent) AggregateID() string { return e.ID }

// UnitOfWorkIntegrationTestSuite checks transaction boundaries of the GORM
// unit of work against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) message(id string) outbox.Message {
	m, err := outbox.NewMessage(outbox.TopicOrderPlaced, testEvent{ID: id}, time.Now())
	suite.Require().NoError(err)
	return m
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIndependentInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.CartRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DeliveryRepository())
	suite.NotNil(uow1.OutboxRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesChangesVisible() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.message("a")))
	suite.Equal(int64(0), suite.pg.Count(ctx, "outbox", ""), "uncommitted row must be invisible")

	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(int64(1), suite.pg.Count(ctx, "outbox", ""))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.message("a")))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.message("b")))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.pg.Count(ctx, "outbox", ""))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_IsHarmless() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.message("a")))
	suite.Require().NoError(uow.Commit(ctx))

	err := uow.Rollback(ctx)

	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
	suite.Equal(int64(1), suite.pg.Count(ctx, "outbox", ""))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin() {
	suite.ErrorIs(suite.factory.Create().Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_KeepsSingleTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.message("a")))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.pg.Count(ctx, "outbox", ""))
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
