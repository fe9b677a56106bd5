package repository

import (
	"context"
	"time"
)

// パスワード再設定トークンの短期保存。商品・注文データには使わない。
type ResetTokenStore interface {
	Save(ctx context.Context, userID int64, token string, ttl time.Duration) error
	//期限切れ・未発行は ErrNotFound
	Get(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
}
