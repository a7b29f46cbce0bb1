package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。PizzaIDかDrinkIDのどちらか片方だけを持つ
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	PizzaID *int64 `gorm:"index" json:"pizza_id"`
	DrinkID *int64 `gorm:"index" json:"drink_id"`

	//表示用の商品名スナップショット
	ProductNameSnapshot string `gorm:"type:varchar(120);not null" json:"product_name_snapshot"`

	//注文時点の単価。後から商品価格が変わっても動かない
	UnitPriceSnapshot decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price_snapshot"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	//単価×数量
	LineSubtotal decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"line_subtotal"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
