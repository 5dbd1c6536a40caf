package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/ruchitara/internal/models"
)

// GormRepository persists orders in Postgres.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository constructs a GormRepository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Materialize inserts the order with its items and clears the user's cart in
// one transaction. Any failure rolls the whole write back.
func (r *GormRepository) Materialize(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return tx.Where("phone_number = ?", order.PhoneNumber).
			Delete(&models.CartItem{}).Error
	})
}

// OrderNumberTaken reports whether an order with the given number exists.
func (r *GormRepository) OrderNumberTaken(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_number = ?", number).
		Count(&count).Error
	return count > 0, err
}
