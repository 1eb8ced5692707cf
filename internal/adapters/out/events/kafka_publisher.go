// Package events publishes outbox messages to the message broker.
package events

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/outbox"

	"github.com/segmentio/kafka-go"
)

// Header names carried on every published record.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConfig configures KafkaPublisher. Topics maps outbox topics to broker
// topics; unmapped outbox topics are published under their own name.
type KafkaConfig struct {
	Brokers      []string
	Topics       map[string]string
	WriteTimeout time.Duration
}

// KafkaPublisher implements ports.EventPublisher with a synchronous
// kafka-go writer. Records are keyed by aggregate id, so the events of one
// order land on one partition in outbox order.
type KafkaPublisher struct {
	writer messageWriter
	topics map[string]string
}

// NewKafkaPublisher creates a publisher for cfg.Brokers.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher: no brokers configured")
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           timeout,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, cfg.Topics), nil
}

func newKafkaPublisher(w messageWriter, topics map[string]string) *KafkaPublisher {
	m := make(map[string]string, len(topics))
	for k, v := range topics {
		if v != "" {
			m[k] = v
		}
	}
	return &KafkaPublisher{writer: w, topics: m}
}

// Publish writes msg and waits for the broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	record := kafka.Message{
		Topic: p.topic(msg.Topic),
		Key:   []byte(msg.Key),
		Value: msg.Payload,
		Time:  msg.CreatedAt,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(msg.EventID.String())},
			{Key: HeaderEventType, Value: []byte(msg.Topic)},
		},
	}

	if err := p.writer.WriteMessages(ctx, record); err != nil {
		return fmt.Errorf("publish %s to %s: %w", msg.EventID, record.Topic, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) topic(name string) string {
	if t, ok := p.topics[name]; ok {
		return t
	}
	return name
}
