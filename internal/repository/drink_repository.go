package repository

import (
	"context"

	"app/internal/domain/model"
)

type DrinkRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Drink, int64, error)
	FindByID(ctx context.Context, drinkID int64) (model.Drink, error)
	Create(ctx context.Context, d model.Drink) (int64, error)
	Update(ctx context.Context, d model.Drink) error
	Delete(ctx context.Context, drinkID int64) error
}
