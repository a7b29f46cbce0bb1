package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DrinkSize string

const (
	DrinkSizeCan   DrinkSize = "CAN"
	DrinkSize600ML DrinkSize = "600ML"
	DrinkSize1L    DrinkSize = "1L"
	DrinkSize2L    DrinkSize = "2L"
)

func (s DrinkSize) Valid() bool {
	switch s {
	case DrinkSizeCan, DrinkSize600ML, DrinkSize1L, DrinkSize2L:
		return true
	}
	return false
}

type Drink struct {
	ID     int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Flavor string          `gorm:"type:varchar(50);not null" json:"flavor"`
	Size   DrinkSize       `gorm:"type:varchar(20);not null" json:"size"`
	Price  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
