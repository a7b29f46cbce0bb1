package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 配達料金の段階。距離がMaxDistanceKM以下なら該当
type DeliveryFeeTier struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Label         string          `gorm:"type:varchar(100);not null;uniqueIndex" json:"label"`
	MaxDistanceKM decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"max_distance_km"`
	Fee           decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"fee"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
