package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sizefit/domain"

	"gorm.io/gorm"
)

type ClientRepository struct {
	DB *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{
		DB: db,
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *ClientRepository) FindByClientID(ctx context.Context, clientID string) (domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return domain.Client{}, fmt.Errorf("context error: %w", err)
	}

	var client domain.Client

	err := r.DB.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("failed to find client: %w", err)
	}

	return client, nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var clients []domain.Client
	err := r.DB.WithContext(ctx).Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find clients: %w", err)
	}

	return clients, nil
}

// Search matches on catalog id or name, case-insensitively.
func (r *ClientRepository) Search(ctx context.Context, query string, limit int) ([]domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = 5
	}
	pattern := "%" + strings.ToLower(query) + "%"

	var clients []domain.Client
	err := r.DB.WithContext(ctx).
		Where("LOWER(client_id) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}

	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Client{}).Where("id = ?", client.ID).Updates(map[string]interface{}{
		"name":          client.Name,
		"age":           client.Age,
		"height_cm":     client.HeightCM,
		"weight_kg":     client.WeightKG,
		"bust_cm":       client.BustCM,
		"waist_cm":      client.WaistCM,
		"hips_cm":       client.HipsCM,
		"preferred_fit": client.PreferredFit,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}
