package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// レコードが見つかりませんを統一
var ErrNotFound = errors.New("not found")

type CustomerRepository interface {
	Create(ctx context.Context, c model.Customer) (int64, error)
	FindByID(ctx context.Context, customerID int64) (model.Customer, error)
	//ログインユーザーから顧客プロフィールを引く
	FindByUserID(ctx context.Context, userID int64) (model.Customer, error)
	List(ctx context.Context, page int, limit int) ([]model.Customer, int64, error)
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, customerID int64) error

	//重複チェック用
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
