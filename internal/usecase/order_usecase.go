package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/pricing"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 注文の作成・更新・進行
type OrderUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
	couriers  repo.CourierRepository
	employees repo.EmployeeRepository
	clock     func() time.Time
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	customers repo.CustomerRepository,
	couriers repo.CourierRepository,
	employees repo.EmployeeRepository,
	clock func() time.Time,
) *OrderUsecase {
	if clock == nil {
		clock = time.Now
	}
	return &OrderUsecase{
		tx:        tx,
		customers: customers,
		couriers:  couriers,
		employees: employees,
		clock:     clock,
	}
}

// リクエストした本人。roleで見える範囲が変わる
type Actor struct {
	UserID int64
	Role   model.Role
}

func (a Actor) isStaff() bool {
	return a.Role == model.RoleStaff
}

type OrderLineInput struct {
	PizzaID  *int64 `json:"pizza_id"`
	DrinkID  *int64 `json:"drink_id"`
	Quantity int64  `json:"quantity"`
}

type CreateOrderInput struct {
	//スタッフが店頭で受けるときだけ指定。顧客本人なら自動で決まる
	CustomerID *int64

	FulfillmentType model.FulfillmentType
	DeliveryAddress string
	DeliveryFee     *decimal.Decimal
	CouponCode      string
	PaymentMethod   model.PaymentMethod
	ChangeFor       *decimal.Decimal
	Notes           string
	Items           []OrderLineInput
}

type OrderItemOutput struct {
	ID           int64           `json:"id"`
	PizzaID      *int64          `json:"pizza_id"`
	DrinkID      *int64          `json:"drink_id"`
	ProductName  string          `json:"product_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int64           `json:"quantity"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}

type OrderOutput struct {
	ID              int64            `json:"id"`
	Number          string           `json:"number"`
	CustomerID      int64            `json:"customer_id"`
	EmployeeID      *int64           `json:"employee_id"`
	CourierID       *int64           `json:"courier_id"`
	CouponID        *int64           `json:"coupon_id"`
	Status          string           `json:"status"`
	FulfillmentType string           `json:"fulfillment_type"`
	DeliveryAddress string           `json:"delivery_address"`
	ItemsSubtotal   decimal.Decimal  `json:"items_subtotal"`
	CouponDiscount  decimal.Decimal  `json:"coupon_discount"`
	DeliveryFee     decimal.Decimal  `json:"delivery_fee"`
	Total           decimal.Decimal  `json:"total"`
	PaymentMethod   string           `json:"payment_method"`
	ChangeFor       *decimal.Decimal `json:"change_for"`
	Notes           string           `json:"notes"`
	ReadyAt         *time.Time       `json:"ready_at"`
	DispatchedAt    *time.Time       `json:"dispatched_at"`
	CompletedAt     *time.Time       `json:"completed_at"`
	CreatedAt       time.Time        `json:"created_at"`

	Items []OrderItemOutput `json:"items"`
}

// CreateOrderは明細・クーポン・合計を1つのトランザクションで確定する。
func (u *OrderUsecase) CreateOrder(ctx context.Context, actor Actor, in CreateOrderInput) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}
	if !in.PaymentMethod.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	switch in.FulfillmentType {
	case model.FulfillmentDelivery:
		if strings.TrimSpace(in.DeliveryAddress) == "" {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery_address required for delivery orders")
		}
	case model.FulfillmentPickup:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid fulfillment_type")
	}

	// 注文の持ち主を決める
	customerID, employeeID, err := u.resolveOwner(ctx, actor, in.CustomerID)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		coupon, err := resolveCoupon(ctx, r, in.CouponCode, u.clock())
		if err != nil {
			return err
		}

		//商品を引いて価格をスナップショット
		items, lines, err := buildOrderItems(ctx, r, in.Items, u.clock())
		if err != nil {
			return err
		}

		totals, err := pricing.Compute(lines, coupon, in.FulfillmentType, in.DeliveryFee, u.clock())
		if err != nil {
			return pricingError(err)
		}

		now := u.clock()
		order := model.Order{
			Number:          uuid.NewString(),
			CustomerID:      customerID,
			EmployeeID:      employeeID,
			Status:          model.OrderStatusPending,
			FulfillmentType: in.FulfillmentType,
			DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
			ItemsSubtotal:   totals.ItemsSubtotal,
			CouponDiscount:  totals.CouponDiscount,
			DeliveryFee:     totals.DeliveryFee,
			Total:           totals.Total,
			PaymentMethod:   in.PaymentMethod,
			ChangeFor:       in.ChangeFor,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

type UpdateOrderInput struct {
	//nilなら据え置き。空配列は拒否
	Items []OrderLineInput

	//nilなら据え置き。空文字はクーポンを外す
	CouponCode *string

	FulfillmentType *model.FulfillmentType
	DeliveryAddress *string
	DeliveryFee     *decimal.Decimal
	PaymentMethod   *model.PaymentMethod
	ChangeFor       *decimal.Decimal
	Notes           *string
}

// UpdateOrderは明細の入れ替えとクーポンの付け外しを受けて合計を再計算する。
// 同じ入力で何度呼んでも金額は変わらない
func (u *OrderUsecase) UpdateOrder(ctx context.Context, actor Actor, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Items != nil && len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "at least one item is required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.authorizeOrderAccess(ctx, actor, order); err != nil {
			return err
		}

		//終わった注文は触れない
		if order.Status == model.OrderStatusDelivered || order.Status == model.OrderStatusCanceled {
			return NewHTTPError(http.StatusBadRequest, "order can no longer be modified")
		}

		if in.FulfillmentType != nil {
			switch *in.FulfillmentType {
			case model.FulfillmentDelivery, model.FulfillmentPickup:
				order.FulfillmentType = *in.FulfillmentType
			default:
				return NewHTTPError(http.StatusBadRequest, "invalid fulfillment_type")
			}
		}
		if in.DeliveryAddress != nil {
			order.DeliveryAddress = strings.TrimSpace(*in.DeliveryAddress)
		}
		if in.PaymentMethod != nil {
			if !in.PaymentMethod.Valid() {
				return NewHTTPError(http.StatusBadRequest, "invalid payment_method")
			}
			order.PaymentMethod = *in.PaymentMethod
		}
		if in.ChangeFor != nil {
			order.ChangeFor = in.ChangeFor
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}

		if order.FulfillmentType == model.FulfillmentDelivery && order.DeliveryAddress == "" {
			return NewHTTPError(http.StatusBadRequest, "delivery_address required for delivery orders")
		}

		//クーポンはコードが送られたときだけ付け替える
		var coupon *model.Coupon
		if in.CouponCode != nil {
			coupon, err = resolveCoupon(ctx, r, *in.CouponCode, u.clock())
			if err != nil {
				return err
			}
			if coupon != nil {
				order.CouponID = &coupon.ID
			} else {
				order.CouponID = nil
			}
		} else if order.CouponID != nil {
			//据え置きでも再計算には中身が要る
			c, err := r.Coupons().FindByID(ctx, *order.CouponID)
			if err == repo.ErrNotFound {
				order.CouponID = nil
			} else if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			} else {
				coupon = &c
			}
		}

		//明細が送られたら全部入れ替える
		var items []model.OrderItem
		var lines []pricing.Line
		if in.Items != nil {
			if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			items, lines, err = buildOrderItems(ctx, r, in.Items, u.clock())
			if err != nil {
				return err
			}
			if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			items, err = r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for _, it := range items {
				lines = append(lines, pricing.Line{UnitPrice: it.UnitPriceSnapshot, Quantity: it.Quantity})
			}
		}

		//配達料は指定があれば新しい値、なければ今の値で計算し直す
		fee := in.DeliveryFee
		if fee == nil {
			f := order.DeliveryFee
			fee = &f
		}

		totals, err := pricing.Compute(lines, coupon, order.FulfillmentType, fee, u.clock())
		if err != nil {
			return pricingError(err)
		}

		order.ItemsSubtotal = totals.ItemsSubtotal
		order.CouponDiscount = totals.CouponDiscount
		order.DeliveryFee = totals.DeliveryFee
		order.Total = totals.Total
		order.UpdatedAt = u.clock()

		if err := r.Orders().Update(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

// UpdateStatusはステータス遷移と時刻の記録。スタッフ専用
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, next model.OrderStatus) (OrderOutput, error) {
	if !actor.isStaff() {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "staff only")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if next == model.OrderStatusCanceled {
			return NewHTTPError(http.StatusBadRequest, "use the cancel endpoint")
		}
		if !order.Status.CanTransitionTo(next) {
			return NewHTTPError(http.StatusBadRequest, "invalid status transition")
		}

		//持ち帰り注文は配達ステータスに進めない
		if next == model.OrderStatusOutForDelivery && order.FulfillmentType != model.FulfillmentDelivery {
			return NewHTTPError(http.StatusBadRequest, "pickup orders cannot go out for delivery")
		}

		now := u.clock()
		order.Status = next
		switch next {
		case model.OrderStatusReady:
			order.ReadyAt = &now
		case model.OrderStatusOutForDelivery:
			order.DispatchedAt = &now
		case model.OrderStatusDelivered:
			order.CompletedAt = &now
		}
		order.UpdatedAt = now

		if err := r.Orders().Update(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

// Cancelは調理完了前の注文だけ取り消せる。顧客は自分の注文のみ
func (u *OrderUsecase) Cancel(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.authorizeOrderAccess(ctx, actor, order); err != nil {
			return err
		}

		if !order.Status.CanCancel() {
			return NewHTTPError(http.StatusBadRequest, "order can no longer be canceled")
		}

		order.Status = model.OrderStatusCanceled
		order.UpdatedAt = u.clock()

		if err := r.Orders().Update(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

// AssignCourierは配達注文に配達員を割り当てる。スタッフ専用
func (u *OrderUsecase) AssignCourier(ctx context.Context, actor Actor, orderID int64, courierID int64) (OrderOutput, error) {
	if !actor.isStaff() {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "staff only")
	}
	if orderID <= 0 || courierID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//実在する配達員か
	if _, err := u.couriers.FindByID(ctx, courierID); err != nil {
		if err == repo.ErrNotFound {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "courier not found")
		}
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if order.FulfillmentType != model.FulfillmentDelivery {
			return NewHTTPError(http.StatusBadRequest, "pickup orders have no courier")
		}
		if order.Status == model.OrderStatusDelivered || order.Status == model.OrderStatusCanceled {
			return NewHTTPError(http.StatusBadRequest, "order can no longer be modified")
		}

		order.CourierID = &courierID
		order.UpdatedAt = u.clock()

		if err := r.Orders().Update(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ListMyOrdersは自分の注文だけ
func (u *OrderUsecase) ListMyOrders(ctx context.Context, actor Actor, page int, limit int) (OrderListOutput, error) {
	if actor.UserID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	customer, err := u.customers.FindByUserID(ctx, actor.UserID)
	if err == repo.ErrNotFound {
		return OrderListOutput{}, NewHTTPError(http.StatusForbidden, "no customer profile")
	}
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out OrderListOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByCustomerID(ctx, customer.ID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = OrderListOutput{Items: outs, Total: total, Page: page, Limit: limit}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}

	return out, nil
}

// ListStaffは全注文。スタッフ専用
func (u *OrderUsecase) ListStaff(ctx context.Context, actor Actor, f repo.StaffOrderListFilter) (OrderListOutput, error) {
	if !actor.isStaff() {
		return OrderListOutput{}, NewHTTPError(http.StatusForbidden, "staff only")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListStaff(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = OrderListOutput{Items: outs, Total: total, Page: f.Page, Limit: f.Limit}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}

	return out, nil
}

// GetOrderDetailは1件取得。顧客は自分の注文だけ見える
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.authorizeOrderAccess(ctx, actor, o); err != nil {
			return err
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	return out, nil
}

// 注文の持ち主（customer）と受け付けたスタッフ（employee）を決める
func (u *OrderUsecase) resolveOwner(ctx context.Context, actor Actor, requestedCustomerID *int64) (int64, *int64, error) {
	if actor.isStaff() {
		if requestedCustomerID == nil || *requestedCustomerID <= 0 {
			return 0, nil, NewHTTPError(http.StatusBadRequest, "customer_id required")
		}
		if _, err := u.customers.FindByID(ctx, *requestedCustomerID); err != nil {
			if err == repo.ErrNotFound {
				return 0, nil, NewHTTPError(http.StatusNotFound, "customer not found")
			}
			return 0, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//どのスタッフが受けたかを残す
		var employeeID *int64
		if e, err := u.employees.FindByUserID(ctx, actor.UserID); err == nil {
			employeeID = &e.ID
		} else if err != repo.ErrNotFound {
			return 0, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return *requestedCustomerID, employeeID, nil
	}

	customer, err := u.customers.FindByUserID(ctx, actor.UserID)
	if err == repo.ErrNotFound {
		return 0, nil, NewHTTPError(http.StatusForbidden, "no customer profile")
	}
	if err != nil {
		return 0, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人のcustomer_idを指定しての作成は禁止
	if requestedCustomerID != nil && *requestedCustomerID != customer.ID {
		return 0, nil, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	return customer.ID, nil, nil
}

// 顧客は自分の注文だけ。スタッフは全部
func (u *OrderUsecase) authorizeOrderAccess(ctx context.Context, actor Actor, order model.Order) error {
	if actor.isStaff() {
		return nil
	}

	customer, err := u.customers.FindByUserID(ctx, actor.UserID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusForbidden, "no customer profile")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if order.CustomerID != customer.ID {
		//他人の注文は「存在しない扱い」にする
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	return nil
}

// クーポンコードを引いて検証する。
// 空文字はクーポンなし。存在しない・使えないコードはエラー
func resolveCoupon(ctx context.Context, r repo.TxRepos, code string, today time.Time) (*model.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	c, err := r.Coupons().FindByCode(ctx, code)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusBadRequest, "coupon not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !c.IsValid(today) {
		return nil, NewHTTPError(http.StatusBadRequest, "coupon invalid or expired")
	}

	return &c, nil
}

// 明細入力から商品を引き、単価と名前をスナップショットする
func buildOrderItems(ctx context.Context, r repo.TxRepos, inputs []OrderLineInput, now time.Time) ([]model.OrderItem, []pricing.Line, error) {
	items := make([]model.OrderItem, 0, len(inputs))
	lines := make([]pricing.Line, 0, len(inputs))

	for _, li := range inputs {
		hasPizza := li.PizzaID != nil
		hasDrink := li.DrinkID != nil

		//ピザかドリンクのどちらか片方だけ
		if hasPizza && hasDrink {
			return nil, nil, NewHTTPError(http.StatusBadRequest, "item cannot be both a pizza and a drink")
		}
		if !hasPizza && !hasDrink {
			return nil, nil, NewHTTPError(http.StatusBadRequest, "item must be a pizza or a drink")
		}
		if li.Quantity < 1 {
			return nil, nil, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
		}

		var unitPrice decimal.Decimal
		var name string

		if hasPizza {
			p, err := r.Pizzas().FindByID(ctx, *li.PizzaID)
			if err == repo.ErrNotFound {
				return nil, nil, NewHTTPError(http.StatusBadRequest, "pizza not found")
			}
			if err != nil {
				return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//セール価格があればそちらで確定
			unitPrice = p.EffectivePrice()
			name = p.Flavor + " (" + string(p.Size) + ")"
		} else {
			d, err := r.Drinks().FindByID(ctx, *li.DrinkID)
			if err == repo.ErrNotFound {
				return nil, nil, NewHTTPError(http.StatusBadRequest, "drink not found")
			}
			if err != nil {
				return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
			}
			unitPrice = d.Price
			name = d.Flavor + " (" + string(d.Size) + ")"
		}

		items = append(items, model.OrderItem{
			PizzaID:             li.PizzaID,
			DrinkID:             li.DrinkID,
			ProductNameSnapshot: name,
			UnitPriceSnapshot:   unitPrice,
			Quantity:            li.Quantity,
			LineSubtotal:        pricing.LineSubtotal(unitPrice, li.Quantity),
			CreatedAt:           now,
		})
		lines = append(lines, pricing.Line{UnitPrice: unitPrice, Quantity: li.Quantity})
	}

	return items, lines, nil
}

// pricingのエラーをHTTPエラーへ
func pricingError(err error) error {
	switch err {
	case pricing.ErrMissingDeliveryFee:
		return NewHTTPError(http.StatusBadRequest, "delivery_fee required for delivery orders")
	case pricing.ErrNegativeDeliveryFee:
		return NewHTTPError(http.StatusBadRequest, "delivery_fee must not be negative")
	case pricing.ErrInvalidQuantity:
		return NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:           it.ID,
			PizzaID:      it.PizzaID,
			DrinkID:      it.DrinkID,
			ProductName:  it.ProductNameSnapshot,
			UnitPrice:    it.UnitPriceSnapshot,
			Quantity:     it.Quantity,
			LineSubtotal: it.LineSubtotal,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		Number:          o.Number,
		CustomerID:      o.CustomerID,
		EmployeeID:      o.EmployeeID,
		CourierID:       o.CourierID,
		CouponID:        o.CouponID,
		Status:          string(o.Status),
		FulfillmentType: string(o.FulfillmentType),
		DeliveryAddress: o.DeliveryAddress,
		ItemsSubtotal:   o.ItemsSubtotal,
		CouponDiscount:  o.CouponDiscount,
		DeliveryFee:     o.DeliveryFee,
		Total:           o.Total,
		PaymentMethod:   string(o.PaymentMethod),
		ChangeFor:       o.ChangeFor,
		Notes:           o.Notes,
		ReadyAt:         o.ReadyAt,
		DispatchedAt:    o.DispatchedAt,
		CompletedAt:     o.CompletedAt,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
