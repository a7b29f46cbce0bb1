package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CourierGormRepository struct {
	db *gorm.DB
}

func NewCourierGormRepository(db *gorm.DB) *CourierGormRepository {
	return &CourierGormRepository{db: db}
}

func (r *CourierGormRepository) Create(ctx context.Context, c model.Courier) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *CourierGormRepository) FindByID(ctx context.Context, courierID int64) (model.Courier, error) {
	var c model.Courier
	err := r.db.WithContext(ctx).Where("id = ?", courierID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Courier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Courier{}, err
	}
	return c, nil
}

func (r *CourierGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Courier, error) {
	var c model.Courier
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Courier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Courier{}, err
	}
	return c, nil
}

func (r *CourierGormRepository) List(ctx context.Context, page int, limit int) ([]model.Courier, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Courier{}).Count(&total).Error; err != nil {
		return []model.Courier{}, 0, err
	}

	var items []model.Courier
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Courier{}, 0, err
	}

	return items, total, nil
}

func (r *CourierGormRepository) Update(ctx context.Context, c model.Courier) error {
	res := r.db.WithContext(ctx).Model(&model.Courier{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":           c.Name,
			"phone":          c.Phone,
			"address":        c.Address,
			"email":          c.Email,
			"motorcycle_doc": c.MotorcycleDoc,
			"plate_number":   c.PlateNumber,
			"updated_at":     c.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CourierGormRepository) Delete(ctx context.Context, courierID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", courierID).Delete(&model.Courier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CourierGormRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Courier{}).Where("cpf = ?", cpf).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CourierGormRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Courier{}).Where("LOWER(email) = LOWER(?)", email).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
