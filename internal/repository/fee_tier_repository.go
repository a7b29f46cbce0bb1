package repository

import (
	"context"

	"app/internal/domain/model"
)

type DeliveryFeeTierRepository interface {
	//MaxDistanceKM昇順で返す。料金表の引き当てはこの順で行う
	ListOrdered(ctx context.Context) ([]model.DeliveryFeeTier, error)
	FindByID(ctx context.Context, tierID int64) (model.DeliveryFeeTier, error)
	Create(ctx context.Context, t model.DeliveryFeeTier) (int64, error)
	Update(ctx context.Context, t model.DeliveryFeeTier) error
	Delete(ctx context.Context, tierID int64) error
}
