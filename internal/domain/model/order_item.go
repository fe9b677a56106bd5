package model

import "time"

// 注文明細。価格は購入時点の値を保存し、以後の商品価格変更の影響を受けない。
type OrderItem struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID         int64     `gorm:"not null;index" json:"order_id"`
	ProductID       int64     `gorm:"not null;index" json:"product_id"`
	Quantity        int64     `gorm:"not null" json:"quantity"`
	PriceAtPurchase int64     `gorm:"column:price_at_time_of_purchase;not null" json:"price_at_time_of_purchase"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
