package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type DeliveryFeeTierGormRepository struct {
	db *gorm.DB
}

func NewDeliveryFeeTierGormRepository(db *gorm.DB) *DeliveryFeeTierGormRepository {
	return &DeliveryFeeTierGormRepository{db: db}
}

func (r *DeliveryFeeTierGormRepository) ListOrdered(ctx context.Context) ([]model.DeliveryFeeTier, error) {
	var items []model.DeliveryFeeTier
	err := r.db.WithContext(ctx).
		Order("max_distance_km asc").
		Find(&items).Error
	if err != nil {
		return []model.DeliveryFeeTier{}, err
	}
	return items, nil
}

func (r *DeliveryFeeTierGormRepository) FindByID(ctx context.Context, tierID int64) (model.DeliveryFeeTier, error) {
	var t model.DeliveryFeeTier
	err := r.db.WithContext(ctx).Where("id = ?", tierID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DeliveryFeeTier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DeliveryFeeTier{}, err
	}
	return t, nil
}

func (r *DeliveryFeeTierGormRepository) Create(ctx context.Context, t model.DeliveryFeeTier) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return 0, err
	}
	return t.ID, nil
}

func (r *DeliveryFeeTierGormRepository) Update(ctx context.Context, t model.DeliveryFeeTier) error {
	res := r.db.WithContext(ctx).Model(&model.DeliveryFeeTier{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"label":           t.Label,
			"max_distance_km": t.MaxDistanceKM,
			"fee":             t.Fee,
			"updated_at":      t.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DeliveryFeeTierGormRepository) Delete(ctx context.Context, tierID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", tierID).Delete(&model.DeliveryFeeTier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
