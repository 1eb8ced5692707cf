package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/events"
	"marketplace/internal/adapters/out/postgres"
	redisadapter "marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// closablePublisher is an event publisher holding a broker connection.
type closablePublisher interface {
	ports.EventPublisher
	Close() error
}

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	redisClient *redis.Client
	publisher   ports.EventPublisher
	logger      *slog.Logger
	uowFactory  postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the adapters. Redis and Kafka are optional: without
// REDIS_ADDR Idempotency-Key headers are ignored, without KAFKA_BROKERS
// events are written to the log.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}

	if config.RedisAddr != "" {
		root.redisClient = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	}

	if len(config.KafkaBrokers) > 0 {
		publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
			Brokers: config.KafkaBrokers,
			Topics: map[string]string{
				outbox.TopicOrderPlaced:      config.KafkaOrderPlacedTopic,
				outbox.TopicDeliveryAccepted: config.KafkaDeliveryAcceptedTopic,
			},
		})
		if err != nil {
			return nil, err
		}
		root.publisher = publisher
	} else {
		root.publisher = events.NewLogPublisher(logger)
	}

	return root, nil
}

// Ping checks the connections the service cannot run without.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if c.redisClient != nil {
		return c.redisClient.Ping(ctx).Err()
	}
	return nil
}

// Close releases broker, cache and database connections.
func (c *CompositionRoot) Close() error {
	var errs []error
	if p, ok := c.publisher.(closablePublisher); ok {
		errs = append(errs, p.Close())
	}
	if c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() *commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})

	var store ports.IdempotencyStore
	if c.redisClient != nil {
		store = redisadapter.NewIdempotencyStore(c.redisClient, c.config.IdempotencyTTL, c.config.IdempotencyPendingTTL)
	}

	h := commands.NewPlaceOrderCommandHandler(f, store, nil, c.logger)
	return &h
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() *commands.AcceptDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewAcceptDeliveryCommandHandler(f, nil)
	return &h
}

func (c *CompositionRoot) CreateCreateDeliveryCommandHandler() *commands.CreateDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateDeliveryCommandHandler(f, nil)
	return &h
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() *commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRelayOutboxCommandHandler(f, c.publisher, nil)
	return &h
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverDeliveriesQueryHandler() queries.GetDriverDeliveriesQueryHandler {
	return queries.NewGetDriverDeliveriesQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the adapter behind the generated routes.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:       c.CreatePlaceOrderCommandHandler(),
		AcceptDelivery:   c.CreateAcceptDeliveryCommandHandler(),
		CreateDelivery:   c.CreateCreateDeliveryCommandHandler(),
		OrderHistory:     c.CreateGetOrderHistoryQueryHandler(),
		DriverDeliveries: c.CreateGetDriverDeliveriesQueryHandler(),
	}, c.logger)
}

// CreateJobManager builds the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		c.config.OutboxRelaySchedule,
		c.config.OutboxRelayBatchSize,
		c.logger,
	)
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
