package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts a pending message.
func (r *GormOutboxRepository) Add(ctx context.Context, message outbox.Message) error {
	if err := message.EventID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("eventId", err)
	}

	dto := fromDomain(message)
	dto.ID = 0
	dto.SentAt = nil
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	return nil
}

// GetPending returns up to limit unsent messages oldest first, skipping rows
// locked by another relay.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "+inf")
	}

	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, fmt.Errorf("fetch pending outbox messages: %w", err)
	}

	messages := make([]outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// MarkSent stamps the given messages.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ? AND sent_at IS NULL", ids).
		Update("sent_at", sentAt.UTC()).Error
	if err != nil {
		return fmt.Errorf("mark outbox messages sent: %w", err)
	}
	return nil
}
