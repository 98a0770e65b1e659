package postgres

import (
	"context"
	"fmt"

	"sizefit/domain"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{
		DB: db,
	}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	return nil
}

// FindByClientID returns the client's purchases oldest first, so the engine
// processes feedback in the order it was given.
func (r *PurchaseRepository) FindByClientID(ctx context.Context, clientID uint) ([]domain.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var purchases []domain.Purchase
	err := r.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Find(&purchases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find purchases: %w", err)
	}

	return purchases, nil
}
