package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentListFilter struct {
	Page   int
	Limit  int
	Status string
	Type   string
	//transaction_idの部分一致
	Q string
	// created_at / amount / status に asc/desc サフィックス
	Sort string
}

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	FindByID(ctx context.Context, id int64) (model.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
	ListAdmin(ctx context.Context, f PaymentListFilter) ([]model.Payment, int64, error)

	//管理者の直接編集
	Update(ctx context.Context, p model.Payment) error

	//注文ステータス変更に伴う投影（同一トランザクション内で呼ぶ）
	SyncStatusByOrderID(ctx context.Context, orderID int64, status model.PaymentStatus) error

	SetStatusByIDs(ctx context.Context, ids []int64, status model.PaymentStatus) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteByOrderIDs(ctx context.Context, orderIDs []int64) error
}
