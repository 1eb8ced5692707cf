package cartrepo

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const snapshotQuery = `
SELECT ci.product_id,
       ci.quantity,
       p.price,
       p.title,
       p.author,
       p.photo_base64
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = ?
ORDER BY ci.created_at, ci.product_id
FOR UPDATE OF ci`

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a cart repository on db, which is either the
// pool or an open transaction.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetSnapshot reads the cart with live product prices. The cart rows stay
// locked until the surrounding transaction ends. A concurrent placement that
// already deleted the rows leaves this call with an empty snapshot.
func (r *GormCartRepository) GetSnapshot(ctx context.Context, userID kernel.UUID) (cart.Snapshot, error) {
	if err := userID.Validate(); err != nil {
		return cart.Snapshot{}, err
	}

	var rows []lineRow
	if err := r.db.WithContext(ctx).Raw(snapshotQuery, userID.Bytes()).Scan(&rows).Error; err != nil {
		return cart.Snapshot{}, fmt.Errorf("read cart snapshot: %w", err)
	}

	lines := make([]cart.Line, 0, len(rows))
	for _, row := range rows {
		line, err := toLine(row)
		if err != nil {
			return cart.Snapshot{}, fmt.Errorf("map cart line %s: %w", row.ProductID, err)
		}
		lines = append(lines, line)
	}

	return cart.NewSnapshot(userID, lines)
}

// Clear deletes the rows captured by snapshot. Products added to the cart after
// the snapshot was taken are left alone.
func (r *GormCartRepository) Clear(ctx context.Context, snapshot cart.Snapshot) error {
	if snapshot.IsEmpty() {
		return nil
	}

	productIDs := make([]uuid.UUID, 0, len(snapshot.ProductIDs()))
	for _, id := range snapshot.ProductIDs() {
		productIDs = append(productIDs, id.Bytes())
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", snapshot.UserID().Bytes(), productIDs).
		Delete(&CartItemDTO{}).Error
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
