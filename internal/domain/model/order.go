package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ステータス文字列が既知の値か
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// 確定済みの注文。total_amountは明細の購入時価格×数量の合計。
type Order struct {
	ID     int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64       `gorm:"not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`

	//住所は注文時点の文字列として固定する
	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`

	PaymentType PaymentType `gorm:"type:varchar(20);not null" json:"payment_type"`
	TotalAmount int64       `gorm:"not null" json:"total_amount"`

	OrderDate time.Time `gorm:"not null;autoCreateTime" json:"order_date"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
