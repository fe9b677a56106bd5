package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	//ユーザーのカートを取得（無ければ作成）
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	//明細の全削除
	Clear(ctx context.Context, cartID int64) error
}
