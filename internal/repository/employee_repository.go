package repository

import (
	"context"

	"app/internal/domain/model"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e model.Employee) (int64, error)
	FindByID(ctx context.Context, employeeID int64) (model.Employee, error)
	FindByUserID(ctx context.Context, userID int64) (model.Employee, error)
	List(ctx context.Context, page int, limit int) ([]model.Employee, int64, error)
	Update(ctx context.Context, e model.Employee) error
	Delete(ctx context.Context, employeeID int64) error

	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
