package unit

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// 共通ヘルパー
// =====================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// usecaseのHTTPErrorを検証する
func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	assert.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	//DBのautoIncrementを再現
	if user != nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) Create(ctx context.Context, c model.Customer) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, customerID int64) (model.Customer, error) {
	args := m.Called(ctx, customerID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Customer, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) List(ctx context.Context, page int, limit int) ([]model.Customer, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Customer)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepoMock) Delete(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *CustomerRepoMock) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

func (m *CustomerRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type EmployeeRepoMock struct{ mock.Mock }

func (m *EmployeeRepoMock) Create(ctx context.Context, e model.Employee) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EmployeeRepoMock) FindByID(ctx context.Context, employeeID int64) (model.Employee, error) {
	args := m.Called(ctx, employeeID)
	e, _ := args.Get(0).(model.Employee)
	return e, args.Error(1)
}

func (m *EmployeeRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Employee, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).(model.Employee)
	return e, args.Error(1)
}

func (m *EmployeeRepoMock) List(ctx context.Context, page int, limit int) ([]model.Employee, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Employee)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *EmployeeRepoMock) Update(ctx context.Context, e model.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EmployeeRepoMock) Delete(ctx context.Context, employeeID int64) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

func (m *EmployeeRepoMock) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

func (m *EmployeeRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type CourierRepoMock struct{ mock.Mock }

func (m *CourierRepoMock) Create(ctx context.Context, c model.Courier) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CourierRepoMock) FindByID(ctx context.Context, courierID int64) (model.Courier, error) {
	args := m.Called(ctx, courierID)
	c, _ := args.Get(0).(model.Courier)
	return c, args.Error(1)
}

func (m *CourierRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Courier, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Courier)
	return c, args.Error(1)
}

func (m *CourierRepoMock) List(ctx context.Context, page int, limit int) ([]model.Courier, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Courier)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CourierRepoMock) Update(ctx context.Context, c model.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CourierRepoMock) Delete(ctx context.Context, courierID int64) error {
	args := m.Called(ctx, courierID)
	return args.Error(0)
}

func (m *CourierRepoMock) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	args := m.Called(ctx, cpf)
	return args.Bool(0), args.Error(1)
}

func (m *CourierRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type PizzaRepoMock struct{ mock.Mock }

func (m *PizzaRepoMock) List(ctx context.Context, page int, limit int) ([]model.Pizza, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Pizza)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *PizzaRepoMock) FindByID(ctx context.Context, pizzaID int64) (model.Pizza, error) {
	args := m.Called(ctx, pizzaID)
	p, _ := args.Get(0).(model.Pizza)
	return p, args.Error(1)
}

func (m *PizzaRepoMock) Create(ctx context.Context, p model.Pizza) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PizzaRepoMock) Update(ctx context.Context, p model.Pizza) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PizzaRepoMock) Delete(ctx context.Context, pizzaID int64) error {
	args := m.Called(ctx, pizzaID)
	return args.Error(0)
}

type DrinkRepoMock struct{ mock.Mock }

func (m *DrinkRepoMock) List(ctx context.Context, page int, limit int) ([]model.Drink, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Drink)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *DrinkRepoMock) FindByID(ctx context.Context, drinkID int64) (model.Drink, error) {
	args := m.Called(ctx, drinkID)
	d, _ := args.Get(0).(model.Drink)
	return d, args.Error(1)
}

func (m *DrinkRepoMock) Create(ctx context.Context, d model.Drink) (int64, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DrinkRepoMock) Update(ctx context.Context, d model.Drink) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DrinkRepoMock) Delete(ctx context.Context, drinkID int64) error {
	args := m.Called(ctx, drinkID)
	return args.Error(0)
}

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) FindByCode(ctx context.Context, code string) (model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) FindByID(ctx context.Context, couponID int64) (model.Coupon, error) {
	args := m.Called(ctx, couponID)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) List(ctx context.Context, page int, limit int) ([]model.Coupon, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Coupon)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *CouponRepoMock) Create(ctx context.Context, c model.Coupon) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CouponRepoMock) Update(ctx context.Context, c model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CouponRepoMock) Delete(ctx context.Context, couponID int64) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

func (m *CouponRepoMock) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, customerID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) ListStaff(ctx context.Context, f repo.StaffOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Update(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type FeeTierRepoMock struct{ mock.Mock }

func (m *FeeTierRepoMock) ListOrdered(ctx context.Context) ([]model.DeliveryFeeTier, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.DeliveryFeeTier)
	return items, args.Error(1)
}

func (m *FeeTierRepoMock) FindByID(ctx context.Context, tierID int64) (model.DeliveryFeeTier, error) {
	args := m.Called(ctx, tierID)
	t, _ := args.Get(0).(model.DeliveryFeeTier)
	return t, args.Error(1)
}

func (m *FeeTierRepoMock) Create(ctx context.Context, t model.DeliveryFeeTier) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *FeeTierRepoMock) Update(ctx context.Context, t model.DeliveryFeeTier) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *FeeTierRepoMock) Delete(ctx context.Context, tierID int64) error {
	args := m.Called(ctx, tierID)
	return args.Error(0)
}

// =====================
// Txまわりのfake
// =====================

// 全部のRepoモックを束ねてTxReposとして渡す
type fakeTxRepos struct {
	users      *UserRepoMock
	customers  *CustomerRepoMock
	employees  *EmployeeRepoMock
	couriers   *CourierRepoMock
	pizzas     *PizzaRepoMock
	drinks     *DrinkRepoMock
	coupons    *CouponRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
}

func newFakeTxRepos() *fakeTxRepos {
	return &fakeTxRepos{
		users:      new(UserRepoMock),
		customers:  new(CustomerRepoMock),
		employees:  new(EmployeeRepoMock),
		couriers:   new(CourierRepoMock),
		pizzas:     new(PizzaRepoMock),
		drinks:     new(DrinkRepoMock),
		coupons:    new(CouponRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
	}
}

func (f *fakeTxRepos) Users() repo.UserRepository { return f.users }

func (f *fakeTxRepos) Customers() repo.CustomerRepository { return f.customers }

func (f *fakeTxRepos) Employees() repo.EmployeeRepository { return f.employees }

func (f *fakeTxRepos) Couriers() repo.CourierRepository { return f.couriers }

func (f *fakeTxRepos) Pizzas() repo.PizzaRepository { return f.pizzas }

func (f *fakeTxRepos) Drinks() repo.DrinkRepository { return f.drinks }

func (f *fakeTxRepos) Coupons() repo.CouponRepository { return f.coupons }

func (f *fakeTxRepos) Orders() repo.OrderRepository { return f.orders }

func (f *fakeTxRepos) OrderItems() repo.OrderItemRepository { return f.orderItems }

// fnをそのまま実行するTransactionManager
type fakeTxManager struct {
	repos *fakeTxRepos
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}
