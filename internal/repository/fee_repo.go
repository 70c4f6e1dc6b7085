package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// FeeRepository exposes the fee schedule.
type FeeRepository interface {
	List(ctx context.Context) ([]models.FeeLineItem, error)
	Replace(ctx context.Context, items []models.FeeLineItem) error
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository constructs the repository implementation.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) List(ctx context.Context) ([]models.FeeLineItem, error) {
	var items []models.FeeLineItem
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *feeRepository) Replace(ctx context.Context, items []models.FeeLineItem) error {
	return replaceAll(ctx, r.db, &models.FeeLineItem{}, items)
}
