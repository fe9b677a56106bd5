package repository

import (
	"context"

	"app/internal/domain/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type CarListFilter struct {
	Page  int
	Limit int
	//make/modelの部分一致
	Q    string
	Year *int
}

type CarRepository interface {
	List(ctx context.Context, f CarListFilter) ([]model.Car, int64, error)
	FindByID(ctx context.Context, id int64) (model.Car, error)
	Create(ctx context.Context, c model.Car) (model.Car, error)
	Update(ctx context.Context, c model.Car) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type BannerRepository interface {
	//position昇順
	List(ctx context.Context) ([]model.Banner, error)
	FindByID(ctx context.Context, id int64) (model.Banner, error)
	Create(ctx context.Context, b model.Banner) (model.Banner, error)
	Update(ctx context.Context, b model.Banner) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

type ContactRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Contact, int64, error)
	FindByID(ctx context.Context, id int64) (model.Contact, error)
	Create(ctx context.Context, c model.Contact) (model.Contact, error)
	Update(ctx context.Context, c model.Contact) error
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}
