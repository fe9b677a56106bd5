package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	//一意制約違反（username重複など）
	ErrConflict = errors.New("conflict")
)

// 一覧検索の条件。公開側・管理側で共用する。
type ProductListQuery struct {
	Page  int
	Limit int

	//name/brand/part_codeを横断する自由検索
	Q string

	//個別フィールドの部分一致
	Name     string
	Brand    string
	PartCode string

	MinPrice *int64
	MaxPrice *int64

	//trueなら在庫あり（stock_quantity > 0）だけ
	InStock *bool

	CategoryID *int64

	//適合車種での絞り込み
	CarMake  string
	CarModel string
	CarYear  *int

	// name / price / stock_quantity / created_at に asc/desc サフィックス
	Sort string

	//公開側はtrue（is_active=trueのみ）
	ActiveOnly bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//画像と適合車種も読み込む
	FindByIDWithRelations(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	//Bulk系。対象が見つからなかったIDは黙って飛ばし、件数を返す。
	SetActiveByIDs(ctx context.Context, ids []int64, isActive bool) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	ReplaceCompatibleCars(ctx context.Context, productID int64, carIDs []int64) error

	AddImage(ctx context.Context, img model.ProductImage) (model.ProductImage, error)
	ClearMainImage(ctx context.Context, productID int64) error
	DeleteImage(ctx context.Context, productID int64, imageID int64) error
}
