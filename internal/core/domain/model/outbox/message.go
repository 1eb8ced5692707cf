// Package outbox models events written in the same transaction as the state
// change they describe and relayed to the broker afterwards.
package outbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	// TopicOrderPlaced carries order.PlacedEvent payloads.
	TopicOrderPlaced = "orders.placed"
	// TopicDeliveryAccepted carries delivery.AcceptedEvent payloads.
	TopicDeliveryAccepted = "deliveries.accepted"
)

// Event is a domain event that can be stored in the outbox.
type Event interface {
	AggregateID() string
}

// Message is one pending or sent outbox row. ID is assigned by storage.
type Message struct {
	ID        int64
	EventID   kernel.UUID
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

// NewMessage serialises event as JSON for topic.
func NewMessage(topic string, event Event, now time.Time) (Message, error) {
	if topic == "" {
		return Message{}, errs.NewValueIsRequiredError("topic")
	}
	if event == nil {
		return Message{}, errs.NewValueIsRequiredError("event")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s event: %w", topic, err)
	}

	return Message{
		EventID:   kernel.NewUUID(),
		Topic:     topic,
		Key:       event.AggregateID(),
		Payload:   payload,
		CreatedAt: now.UTC(),
	}, nil
}

// IsSent reports whether the relay already published the message.
func (m Message) IsSent() bool {
	return m.SentAt != nil
}

// ErrAlreadySent is returned when marking a message sent twice.
var ErrAlreadySent = errors.New("outbox message already sent")

// MarkSent stamps the message as published.
func (m *Message) MarkSent(now time.Time) error {
	if m.IsSent() {
		return ErrAlreadySent
	}
	at := now.UTC()
	m.SentAt = &at
	return nil
}
