package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 管理者用の注文一覧条件
type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64

	//shipping_addressの部分一致検索
	Q string

	From *time.Time
	To   *time.Time

	// order_date / total_amount / status に asc/desc サフィックス
	Sort string
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdateTotalAmount(ctx context.Context, orderID int64, total int64) error
	//ステータス・配送先・支払い方法の更新
	Update(ctx context.Context, order model.Order) error

	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}
