// Package outboxrepo stores outbox messages in the outbox table.
package outboxrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// OutboxDTO is one outbox row.
type OutboxDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	EventID   uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Topic     string
	Key       string
	Payload   string `gorm:"type:jsonb"`
	CreatedAt time.Time
	SentAt    *time.Time
}

// TableName overrides the gorm default.
func (OutboxDTO) TableName() string {
	return "outbox"
}

func fromDomain(m outbox.Message) OutboxDTO {
	return OutboxDTO{
		ID:        m.ID,
		EventID:   m.EventID.Bytes(),
		Topic:     m.Topic,
		Key:       m.Key,
		Payload:   string(m.Payload),
		CreatedAt: m.CreatedAt,
		SentAt:    m.SentAt,
	}
}

func toDomain(dto OutboxDTO) (outbox.Message, error) {
	eventID, err := kernel.FromGoogleUUID(dto.EventID)
	if err != nil {
		return outbox.Message{}, err
	}

	return outbox.Message{
		ID:        dto.ID,
		EventID:   eventID,
		Topic:     dto.Topic,
		Key:       dto.Key,
		Payload:   []byte(dto.Payload),
		CreatedAt: dto.CreatedAt,
		SentAt:    dto.SentAt,
	}, nil
}
