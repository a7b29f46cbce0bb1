package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type EmployeeGormRepository struct {
	db *gorm.DB
}

func NewEmployeeGormRepository(db *gorm.DB) *EmployeeGormRepository {
	return &EmployeeGormRepository{db: db}
}

func (r *EmployeeGormRepository) Create(ctx context.Context, e model.Employee) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		return 0, err
	}
	return e.ID, nil
}

func (r *EmployeeGormRepository) FindByID(ctx context.Context, employeeID int64) (model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Where("id = ?", employeeID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Employee{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Employee{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeGormRepository) List(ctx context.Context, page int, limit int) ([]model.Employee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Employee{}).Count(&total).Error; err != nil {
		return []model.Employee{}, 0, err
	}

	var items []model.Employee
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Employee{}, 0, err
	}

	return items, total, nil
}

func (r *EmployeeGormRepository) Update(ctx context.Context, e model.Employee) error {
	res := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":       e.Name,
			"phone":      e.Phone,
			"email":      e.Email,
			"position":   e.Position,
			"updated_at": e.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EmployeeGormRepository) Delete(ctx context.Context, employeeID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", employeeID).Delete(&model.Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *EmployeeGormRepository) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Where("cpf = ?", cpf).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *EmployeeGormRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Where("LOWER(email) = LOWER(?)", email).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
