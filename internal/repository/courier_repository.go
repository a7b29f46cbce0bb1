package repository

import (
	"context"

	"app/internal/domain/model"
)

type CourierRepository interface {
	Create(ctx context.Context, c model.Courier) (int64, error)
	FindByID(ctx context.Context, courierID int64) (model.Courier, error)
	FindByUserID(ctx context.Context, userID int64) (model.Courier, error)
	List(ctx context.Context, page int, limit int) ([]model.Courier, int64, error)
	Update(ctx context.Context, c model.Courier) error
	Delete(ctx context.Context, courierID int64) error

	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
