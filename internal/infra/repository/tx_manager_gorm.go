package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users      repo.UserRepository
	customers  repo.CustomerRepository
	employees  repo.EmployeeRepository
	couriers   repo.CourierRepository
	pizzas     repo.PizzaRepository
	drinks     repo.DrinkRepository
	coupons    repo.CouponRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
}

func (r *txReposGorm) Users() repo.UserRepository           { return r.users }
func (r *txReposGorm) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposGorm) Employees() repo.EmployeeRepository   { return r.employees }
func (r *txReposGorm) Couriers() repo.CourierRepository     { return r.couriers }
func (r *txReposGorm) Pizzas() repo.PizzaRepository         { return r.pizzas }
func (r *txReposGorm) Drinks() repo.DrinkRepository         { return r.drinks }
func (r *txReposGorm) Coupons() repo.CouponRepository       { return r.coupons }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:      NewUserGormRepository(tx),
			customers:  NewCustomerGormRepository(tx),
			employees:  NewEmployeeGormRepository(tx),
			couriers:   NewCourierGormRepository(tx),
			pizzas:     NewPizzaGormRepository(tx),
			drinks:     NewDrinkGormRepository(tx),
			coupons:    NewCouponGormRepository(tx),
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
		}
		return fn(r)
	})
}
