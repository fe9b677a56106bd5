package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Profile, error)
	//無ければ作成、あれば更新
	Upsert(ctx context.Context, p model.Profile) (model.Profile, error)
}
