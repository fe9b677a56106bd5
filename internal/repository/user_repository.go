package repository

import (
	"context"

	"app/internal/domain/model"
)

type UserListFilter struct {
	Page  int
	Limit int
	//username/emailの部分一致
	Q string
	//USER / ADMIN
	Role string
	// id / username / created_at に asc/desc サフィックス
	Sort string
}

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, f UserListFilter) ([]model.User, int64, error)
	Update(ctx context.Context, u model.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	SetActiveByIDs(ctx context.Context, ids []int64, isActive bool) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}
