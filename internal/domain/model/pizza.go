package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PizzaSize string

const (
	PizzaSizeSmall  PizzaSize = "SMALL"
	PizzaSizeMedium PizzaSize = "MEDIUM"
	PizzaSizeLarge  PizzaSize = "LARGE"
)

func (s PizzaSize) Valid() bool {
	switch s {
	case PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge:
		return true
	}
	return false
}

type Pizza struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Flavor string    `gorm:"type:varchar(50);not null" json:"flavor"`
	Size   PizzaSize `gorm:"type:varchar(20);not null" json:"size"`

	//定価
	BasePrice decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"base_price"`

	//セール価格（あれば定価より優先）
	PromoPrice   *decimal.Decimal `gorm:"type:decimal(6,2)" json:"promo_price"`
	DiscountedAt *time.Time       `json:"discounted_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// 今売る値段。PromoPriceがあればそちら
func (p Pizza) EffectivePrice() decimal.Decimal {
	if p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.BasePrice
}
