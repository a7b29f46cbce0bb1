// Package pricingは注文金額の計算だけを持つ。DBにもHTTPにも触らない。
package pricing

import (
	"errors"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	//明細が不正（数量0以下など）
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	//配達なのに送料がない・負
	ErrMissingDeliveryFee  = errors.New("delivery fee is required for delivery orders")
	ErrNegativeDeliveryFee = errors.New("delivery fee must not be negative")
)

// 計算結果。すべて小数2桁で確定済み
type Totals struct {
	ItemsSubtotal  decimal.Decimal
	CouponDiscount decimal.Decimal
	DeliveryFee    decimal.Decimal
	Total          decimal.Decimal
}

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// 明細1行の小計。単価×数量
func LineSubtotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// Computeは明細・クーポン・受け取り方法から合計を出す。
// 入力が同じなら何度呼んでも同じ結果になる（再計算しても値がずれない）。
//   - 小計 = Σ(単価×数量)
//   - 割引 = 小計×割引率/100 を四捨五入で2桁（クーポンが無効なら0）
//   - 送料 = PICKUPなら強制0、DELIVERYなら非負の指定値
//   - 合計 = 小計 − 割引 + 送料 を2桁
func Compute(lines []Line, coupon *model.Coupon, fulfillment model.FulfillmentType, deliveryFee *decimal.Decimal, today time.Time) (Totals, error) {
	subtotal := decimal.Zero
	for _, l := range lines {
		if l.Quantity < 1 {
			return Totals{}, ErrInvalidQuantity
		}
		subtotal = subtotal.Add(LineSubtotal(l.UnitPrice, l.Quantity))
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero.Round(2)
	if coupon != nil && coupon.IsValid(today) {
		discount = subtotal.Mul(coupon.DiscountPercent).Div(decimal.NewFromInt(100)).Round(2)
	}

	fee := decimal.Zero.Round(2)
	switch fulfillment {
	case model.FulfillmentDelivery:
		if deliveryFee == nil {
			return Totals{}, ErrMissingDeliveryFee
		}
		if deliveryFee.IsNegative() {
			return Totals{}, ErrNegativeDeliveryFee
		}
		fee = deliveryFee.Round(2)
	case model.FulfillmentPickup:
		//持ち帰りは送料なし。指定されていても無視する
	}

	total := subtotal.Sub(discount).Add(fee).Round(2)

	return Totals{
		ItemsSubtotal:  subtotal,
		CouponDiscount: discount,
		DeliveryFee:    fee,
		Total:          total,
	}, nil
}

// 割引後のセール価格。定価×(1−percent/100)を2桁
func DiscountedPrice(basePrice decimal.Decimal, percent decimal.Decimal) decimal.Decimal {
	off := basePrice.Mul(percent).Div(decimal.NewFromInt(100))
	return basePrice.Sub(off).Round(2)
}
