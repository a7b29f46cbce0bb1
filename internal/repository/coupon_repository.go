package repository

import (
	"context"

	"app/internal/domain/model"
)

type CouponRepository interface {
	//コードは大文字小文字を区別せずに引く
	FindByCode(ctx context.Context, code string) (model.Coupon, error)
	FindByID(ctx context.Context, couponID int64) (model.Coupon, error)
	List(ctx context.Context, page int, limit int) ([]model.Coupon, int64, error)
	Create(ctx context.Context, c model.Coupon) (int64, error)
	Update(ctx context.Context, c model.Coupon) error
	Delete(ctx context.Context, couponID int64) error

	//更新時は自分自身を除いて重複チェック
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
}
