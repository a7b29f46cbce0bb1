package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderStatusPending, OrderStatusReceived, true},
		{OrderStatusReceived, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusReady, OrderStatusOutForDelivery, true},
		{OrderStatusReady, OrderStatusDelivered, true},
		{OrderStatusOutForDelivery, OrderStatusDelivered, true},

		//飛ばし・逆行は不可
		{OrderStatusPending, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusReady, false},
		{OrderStatusReceived, OrderStatusPending, false},
		{OrderStatusReady, OrderStatusPreparing, false},
		{OrderStatusDelivered, OrderStatusReady, false},
		{OrderStatusCanceled, OrderStatusReceived, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusCanCancel(t *testing.T) {
	assert.True(t, OrderStatusPending.CanCancel())
	assert.True(t, OrderStatusReceived.CanCancel())
	assert.True(t, OrderStatusPreparing.CanCancel())

	//調理完了後は取り消せない
	assert.False(t, OrderStatusReady.CanCancel())
	assert.False(t, OrderStatusOutForDelivery.CanCancel())
	assert.False(t, OrderStatusDelivered.CanCancel())
	assert.False(t, OrderStatusCanceled.CanCancel())
}

func TestPizzaEffectivePrice(t *testing.T) {
	p := Pizza{BasePrice: mustDec("45.00")}
	assert.Equal(t, "45.00", p.EffectivePrice().StringFixed(2))

	promo := mustDec("36.00")
	p.PromoPrice = &promo
	assert.Equal(t, "36.00", p.EffectivePrice().StringFixed(2))
}
