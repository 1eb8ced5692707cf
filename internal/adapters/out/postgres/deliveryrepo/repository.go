package deliveryrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
// The *gorm.DB must be opened with TranslateError so unique and foreign key
// violations surface as gorm sentinels.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// Add inserts a delivery.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Create(&dto).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ports.ErrDeliveryAlreadyActive
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewObjectNotFoundErrorWithCause("order", aggregate.OrderID().String(), err)
	}
	return err
}

// Update writes the mutable columns. Nil driver fields are written as NULL.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"driver_id":        dto.DriverID,
		"status":           dto.Status,
		"driver_latitude":  dto.DriverLatitude,
		"driver_longitude": dto.DriverLongitude,
		"assigned_at":      dto.AssignedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}
	return nil
}

// Get retrieves a delivery by ID without locking. It is not part of
// ports.DeliveryRepository: every write path reads through GetForUpdate, and
// Get serves the integration tests that inspect committed rows.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate retrieves a delivery by ID and holds a row lock until the
// transaction ends.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormDeliveryRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
