package pricing

import (
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validCoupon(percent string, today time.Time) *model.Coupon {
	return &model.Coupon{
		Code:            "TEST",
		DiscountPercent: dec(percent),
		ExpiresOn:       today.AddDate(0, 0, 7),
		Active:          true,
	}
}

func TestLineSubtotal(t *testing.T) {
	got := LineSubtotal(dec("39.90"), 3)
	assert.True(t, dec("119.70").Equal(got), got.String())
}

func TestCompute_SubtotalExact(t *testing.T) {
	today := time.Now()

	lines := []Line{
		{UnitPrice: dec("39.90"), Quantity: 2},
		{UnitPrice: dec("7.50"), Quantity: 3},
	}

	totals, err := Compute(lines, nil, model.FulfillmentPickup, nil, today)
	assert.NoError(t, err)
	assert.Equal(t, "102.30", totals.ItemsSubtotal.StringFixed(2))
	assert.Equal(t, "0.00", totals.CouponDiscount.StringFixed(2))
	assert.Equal(t, "0.00", totals.DeliveryFee.StringFixed(2))
	assert.Equal(t, "102.30", totals.Total.StringFixed(2))
}

func TestCompute_TenPercentCoupon(t *testing.T) {
	today := time.Now()

	lines := []Line{{UnitPrice: dec("50.00"), Quantity: 2}}

	totals, err := Compute(lines, validCoupon("10.00", today), model.FulfillmentPickup, nil, today)
	assert.NoError(t, err)
	assert.Equal(t, "100.00", totals.ItemsSubtotal.StringFixed(2))
	assert.Equal(t, "10.00", totals.CouponDiscount.StringFixed(2))
	assert.Equal(t, "90.00", totals.Total.StringFixed(2))
}

// 割引の四捨五入（33.33の15% = 4.9995 → 5.00）
func TestCompute_DiscountRoundsHalfUp(t *testing.T) {
	today := time.Now()

	lines := []Line{{UnitPrice: dec("33.33"), Quantity: 1}}

	totals, err := Compute(lines, validCoupon("15.00", today), model.FulfillmentPickup, nil, today)
	assert.NoError(t, err)
	assert.Equal(t, "5.00", totals.CouponDiscount.StringFixed(2))
	assert.Equal(t, "28.33", totals.Total.StringFixed(2))
}

// 持ち帰りは送料を渡しても0
func TestCompute_PickupIgnoresFee(t *testing.T) {
	today := time.Now()
	fee := dec("12.00")

	lines := []Line{{UnitPrice: dec("20.00"), Quantity: 1}}

	totals, err := Compute(lines, nil, model.FulfillmentPickup, &fee, today)
	assert.NoError(t, err)
	assert.Equal(t, "0.00", totals.DeliveryFee.StringFixed(2))
	assert.Equal(t, "20.00", totals.Total.StringFixed(2))
}

func TestCompute_DeliveryRequiresFee(t *testing.T) {
	today := time.Now()

	lines := []Line{{UnitPrice: dec("20.00"), Quantity: 1}}

	_, err := Compute(lines, nil, model.FulfillmentDelivery, nil, today)
	assert.ErrorIs(t, err, ErrMissingDeliveryFee)
}

func TestCompute_DeliveryRejectsNegativeFee(t *testing.T) {
	today := time.Now()
	fee := dec("-1.00")

	lines := []Line{{UnitPrice: dec("20.00"), Quantity: 1}}

	_, err := Compute(lines, nil, model.FulfillmentDelivery, &fee, today)
	assert.ErrorIs(t, err, ErrNegativeDeliveryFee)
}

func TestCompute_DeliveryAddsFee(t *testing.T) {
	today := time.Now()
	fee := dec("8.50")

	lines := []Line{{UnitPrice: dec("45.00"), Quantity: 1}}

	totals, err := Compute(lines, nil, model.FulfillmentDelivery, &fee, today)
	assert.NoError(t, err)
	assert.Equal(t, "8.50", totals.DeliveryFee.StringFixed(2))
	assert.Equal(t, "53.50", totals.Total.StringFixed(2))
}

func TestCompute_RejectsZeroQuantity(t *testing.T) {
	today := time.Now()

	lines := []Line{{UnitPrice: dec("20.00"), Quantity: 0}}

	_, err := Compute(lines, nil, model.FulfillmentPickup, nil, today)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// 期限切れクーポンは割引0
func TestCompute_ExpiredCouponNoDiscount(t *testing.T) {
	today := time.Now()
	expired := &model.Coupon{
		Code:            "OLD",
		DiscountPercent: dec("10.00"),
		ExpiresOn:       today.AddDate(0, 0, -1),
		Active:          true,
	}

	lines := []Line{{UnitPrice: dec("100.00"), Quantity: 1}}

	totals, err := Compute(lines, expired, model.FulfillmentPickup, nil, today)
	assert.NoError(t, err)
	assert.Equal(t, "0.00", totals.CouponDiscount.StringFixed(2))
	assert.Equal(t, "100.00", totals.Total.StringFixed(2))
}

// 同じ入力なら何度計算しても同じ値
func TestCompute_Idempotent(t *testing.T) {
	today := time.Now()
	fee := dec("5.00")
	coupon := validCoupon("12.50", today)

	lines := []Line{
		{UnitPrice: dec("39.90"), Quantity: 2},
		{UnitPrice: dec("9.99"), Quantity: 1},
	}

	first, err := Compute(lines, coupon, model.FulfillmentDelivery, &fee, today)
	assert.NoError(t, err)

	second, err := Compute(lines, coupon, model.FulfillmentDelivery, &fee, today)
	assert.NoError(t, err)

	assert.Equal(t, first.ItemsSubtotal.String(), second.ItemsSubtotal.String())
	assert.Equal(t, first.CouponDiscount.String(), second.CouponDiscount.String())
	assert.Equal(t, first.DeliveryFee.String(), second.DeliveryFee.String())
	assert.Equal(t, first.Total.String(), second.Total.String())
}

func TestDiscountedPrice(t *testing.T) {
	got := DiscountedPrice(dec("50.00"), dec("20.00"))
	assert.Equal(t, "40.00", got.StringFixed(2))

	//端数は四捨五入
	got = DiscountedPrice(dec("33.33"), dec("15.00"))
	assert.Equal(t, "28.33", got.StringFixed(2))
}
