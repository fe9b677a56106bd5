package model

import "time"

type PaymentType string

const (
	//銀行振込（カード情報を案内して入金確認する）
	PaymentTypeCash PaymentType = "cash"
	//小切手
	PaymentTypeCheck PaymentType = "check"
)

func ValidPaymentType(s string) bool {
	switch PaymentType(s) {
	case PaymentTypeCash, PaymentTypeCheck:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// 注文1件につき支払いは1件。
type Payment struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64         `gorm:"not null;uniqueIndex" json:"order_id"`
	PaymentType   PaymentType   `gorm:"type:varchar(20);not null" json:"payment_type"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TransactionID string        `gorm:"type:varchar(100)" json:"transaction_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文ステータスから支払いステータスを導く。
// 注文ステータスを変更した操作が、同じトランザクション内で必ず呼ぶ。
func DerivePaymentStatus(s OrderStatus) PaymentStatus {
	switch s {
	case OrderStatusCancelled:
		return PaymentStatusFailed
	case OrderStatusPending:
		return PaymentStatusPending
	default:
		return PaymentStatusCompleted
	}
}
