package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PizzaGormRepository struct {
	db *gorm.DB
}

func NewPizzaGormRepository(db *gorm.DB) *PizzaGormRepository {
	return &PizzaGormRepository{db: db}
}

func (r *PizzaGormRepository) List(ctx context.Context, page int, limit int) ([]model.Pizza, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Pizza{}).Count(&total).Error; err != nil {
		return []model.Pizza{}, 0, err
	}

	var items []model.Pizza
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Pizza{}, 0, err
	}

	return items, total, nil
}

func (r *PizzaGormRepository) FindByID(ctx context.Context, pizzaID int64) (model.Pizza, error) {
	var p model.Pizza
	err := r.db.WithContext(ctx).Where("id = ?", pizzaID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Pizza{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Pizza{}, err
	}
	return p, nil
}

func (r *PizzaGormRepository) Create(ctx context.Context, p model.Pizza) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *PizzaGormRepository) Update(ctx context.Context, p model.Pizza) error {
	//PromoPriceのNULL戻しも反映したいのでmapで更新する
	res := r.db.WithContext(ctx).Model(&model.Pizza{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"flavor":        p.Flavor,
			"size":          p.Size,
			"base_price":    p.BasePrice,
			"promo_price":   p.PromoPrice,
			"discounted_at": p.DiscountedAt,
			"updated_at":    p.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PizzaGormRepository) Delete(ctx context.Context, pizzaID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", pizzaID).Delete(&model.Pizza{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
