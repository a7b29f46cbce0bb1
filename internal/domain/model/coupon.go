package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coupon struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//コードは大文字小文字を区別しない。保存時に大文字へ正規化する
	Code string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`

	//割引率（%）。0.01〜100.00
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percent"`

	//有効期限。当日まで使える
	ExpiresOn time.Time `gorm:"type:date;not null" json:"expires_on"`

	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidはActiveかつExpiresOn当日を含めて期限内ならtrue。
func (c Coupon) IsValid(today time.Time) bool {
	if !c.Active {
		return false
	}
	expires := dateOnly(c.ExpiresOn)
	return !expires.Before(dateOnly(today))
}

// 時刻を落として日付だけにする
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
