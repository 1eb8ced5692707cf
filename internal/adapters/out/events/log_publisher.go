package events

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/outbox"
)

// LogPublisher writes outbox messages to the log. It stands in for the broker
// when none is configured, so the outbox still drains.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "LogPublisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	p.logger.InfoContext(ctx, "event published",
		"event_id", msg.EventID.String(),
		"topic", msg.Topic,
		"key", msg.Key,
		"payload", string(msg.Payload),
	)
	return nil
}
