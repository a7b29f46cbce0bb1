package repository

import (
	"context"

	"app/internal/domain/model"
)

type PizzaRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Pizza, int64, error)
	FindByID(ctx context.Context, pizzaID int64) (model.Pizza, error)
	Create(ctx context.Context, p model.Pizza) (int64, error)
	Update(ctx context.Context, p model.Pizza) error
	Delete(ctx context.Context, pizzaID int64) error
}
