package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
)

// 許可されている遷移だけtrue。CANCELEDは別判定（CanCancel）
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:        {OrderStatusReceived},
		OrderStatusReceived:       {OrderStatusPreparing},
		OrderStatusPreparing:      {OrderStatusReady},
		OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusDelivered},
		OrderStatusOutForDelivery: {OrderStatusDelivered},
	}
	for _, n := range allowed[s] {
		if n == next {
			return true
		}
	}
	return false
}

// キャンセルは調理完了前まで
func (s OrderStatus) CanCancel() bool {
	switch s {
	case OrderStatusPending, OrderStatusReceived, OrderStatusPreparing:
		return true
	}
	return false
}

type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "DELIVERY"
	FulfillmentPickup   FulfillmentType = "PICKUP"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentPix  PaymentMethod = "PIX"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentPix:
		return true
	}
	return false
}

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//レシートや問い合わせに使う公開番号
	Number string `gorm:"type:varchar(36);not null;uniqueIndex" json:"number"`

	CustomerID int64 `gorm:"not null;index" json:"customer_id"`

	//受け付けたスタッフ（店頭注文のとき）
	EmployeeID *int64 `gorm:"index" json:"employee_id"`

	//配達担当
	CourierID *int64 `gorm:"index" json:"courier_id"`

	//クーポンが消されたら参照だけNULLになる
	CouponID *int64 `gorm:"index;constraint:OnDelete:SET NULL" json:"coupon_id"`

	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	FulfillmentType FulfillmentType `gorm:"type:varchar(20);not null" json:"fulfillment_type"`
	DeliveryAddress string          `gorm:"type:varchar(255)" json:"delivery_address"`

	ItemsSubtotal  decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"items_subtotal"`
	CouponDiscount decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"coupon_discount"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"delivery_fee"`
	Total          decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"total"`

	PaymentMethod PaymentMethod    `gorm:"type:varchar(20);not null" json:"payment_method"`
	ChangeFor     *decimal.Decimal `gorm:"type:decimal(8,2)" json:"change_for"`
	Notes         string           `gorm:"type:text" json:"notes"`

	//遷移ごとの時刻
	ReadyAt      *time.Time `json:"ready_at"`
	DispatchedAt *time.Time `json:"dispatched_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
