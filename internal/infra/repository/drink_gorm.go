package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type DrinkGormRepository struct {
	db *gorm.DB
}

func NewDrinkGormRepository(db *gorm.DB) *DrinkGormRepository {
	return &DrinkGormRepository{db: db}
}

func (r *DrinkGormRepository) List(ctx context.Context, page int, limit int) ([]model.Drink, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Drink{}).Count(&total).Error; err != nil {
		return []model.Drink{}, 0, err
	}

	var items []model.Drink
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Drink{}, 0, err
	}

	return items, total, nil
}

func (r *DrinkGormRepository) FindByID(ctx context.Context, drinkID int64) (model.Drink, error) {
	var d model.Drink
	err := r.db.WithContext(ctx).Where("id = ?", drinkID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Drink{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Drink{}, err
	}
	return d, nil
}

func (r *DrinkGormRepository) Create(ctx context.Context, d model.Drink) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return 0, err
	}
	return d.ID, nil
}

func (r *DrinkGormRepository) Update(ctx context.Context, d model.Drink) error {
	res := r.db.WithContext(ctx).Model(&model.Drink{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"flavor":     d.Flavor,
			"size":       d.Size,
			"price":      d.Price,
			"updated_at": d.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DrinkGormRepository) Delete(ctx context.Context, drinkID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", drinkID).Delete(&model.Drink{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
