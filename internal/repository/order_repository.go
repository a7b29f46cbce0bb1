package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type StaffOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	//スタッフ用の全注文一覧
	ListStaff(ctx context.Context, f StaffOrderListFilter) ([]model.Order, int64, error)
	//金額・クーポン・ステータスなどまとめて保存
	Update(ctx context.Context, order model.Order) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	//明細の入れ替えは全消ししてから作り直す
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
