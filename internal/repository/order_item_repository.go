package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error)
	Update(ctx context.Context, item model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	//ids のうちその注文に属する明細だけを返す
	ListByOrderAndIDs(ctx context.Context, orderID int64, ids []int64) ([]model.OrderItem, error)
	DeleteByIDs(ctx context.Context, orderID int64, ids []int64) (int64, error)
	DeleteByOrderIDs(ctx context.Context, orderIDs []int64) error
}
