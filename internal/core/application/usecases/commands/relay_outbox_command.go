package commands

import (
	"errors"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// MaxRelayBatchSize caps how many messages one relay run locks.
const MaxRelayBatchSize = 1000

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand publishes up to BatchSize pending outbox messages.
type RelayOutboxCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayOutboxCommand validates the batch size.
func NewRelayOutboxCommand(batchSize int) (RelayOutboxCommand, error) {
	if batchSize < 1 || batchSize > MaxRelayBatchSize {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, MaxRelayBatchSize)
	}
	return RelayOutboxCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

// BatchSize returns the maximum number of messages to publish.
func (c RelayOutboxCommand) BatchSize() int {
	return c.batchSize
}
