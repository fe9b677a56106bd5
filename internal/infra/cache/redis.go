package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	repo "app/internal/repository"

	"github.com/redis/go-redis/v9"
)

func NewClient(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// パスワード再設定トークンのRedis実装。
// キーはuser_id単位、TTL切れで自動消滅する。
type ResetTokenRedisStore struct {
	rdb *redis.Client
}

func NewResetTokenRedisStore(rdb *redis.Client) *ResetTokenRedisStore {
	return &ResetTokenRedisStore{rdb: rdb}
}

func resetTokenKey(userID int64) string {
	return fmt.Sprintf("password_reset:%d", userID)
}

func (s *ResetTokenRedisStore) Save(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, resetTokenKey(userID), token, ttl).Err()
}

func (s *ResetTokenRedisStore) Get(ctx context.Context, userID int64) (string, error) {
	v, err := s.rdb.Get(ctx, resetTokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *ResetTokenRedisStore) Delete(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, resetTokenKey(userID)).Err()
}
