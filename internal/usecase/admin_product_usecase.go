package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者向けの商品CRUD。
type AdminProductUsecase struct {
	products  repo.ProductRepository
	inventory repo.InventoryRepository
}

// DI
func NewAdminProductUsecase(products repo.ProductRepository, inventory repo.InventoryRepository) *AdminProductUsecase {
	return &AdminProductUsecase{products: products, inventory: inventory}
}

type AdminProductInput struct {
	Name            string
	Slug            string
	Description     string
	PartCode        string
	Brand           string
	CountryOfOrigin string
	Warranty        string
	Price           int64
	StockQuantity   int64
	PackageQuantity int64

	AllowIndividualSale bool

	CategoryID int64
	CarIDs     []int64
	IsActive   bool
}

func (in AdminProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 200 {
		return NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if strings.TrimSpace(in.PartCode) == "" || len(in.PartCode) > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid part_code")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid brand")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}
	if in.PackageQuantity < 1 {
		return NewHTTPError(http.StatusBadRequest, "package_quantity must be >= 1")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	return nil
}

// ListProducts は管理者用の一覧（非公開の商品も含む）。
func (u *AdminProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 20
	}
	if err := validateListInput(in); err != nil {
		return ProductListOutput{}, err
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          strings.TrimSpace(in.Q),
		Name:       strings.TrimSpace(in.Name),
		Brand:      strings.TrimSpace(in.Brand),
		PartCode:   strings.TrimSpace(in.PartCode),
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		InStock:    in.InStock,
		CategoryID: in.CategoryID,
		CarMake:    strings.TrimSpace(in.CarMake),
		CarModel:   strings.TrimSpace(in.CarModel),
		CarYear:    in.CarYear,
		Sort:       strings.TrimSpace(in.Sort),
		ActiveOnly: false,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ProductListOutput{
		Items: make([]ProductSummary, 0, len(items)),
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}
	for _, p := range items {
		out.Items = append(out.Items, toProductSummary(p))
	}
	return out, nil
}

func (u *AdminProductUsecase) GetProduct(ctx context.Context, productID int64) (ProductDetailOutput, error) {
	if productID <= 0 {
		return ProductDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByIDWithRelations(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductDetail(p), nil
}

func (u *AdminProductUsecase) CreateProduct(ctx context.Context, in AdminProductInput) (ProductDetailOutput, error) {
	if err := in.validate(); err != nil {
		return ProductDetailOutput{}, err
	}

	created, err := u.products.Create(ctx, model.Product{
		Name:                strings.TrimSpace(in.Name),
		Slug:                strings.TrimSpace(in.Slug),
		Description:         in.Description,
		PartCode:            strings.TrimSpace(in.PartCode),
		Brand:               strings.TrimSpace(in.Brand),
		CountryOfOrigin:     strings.TrimSpace(in.CountryOfOrigin),
		Warranty:            strings.TrimSpace(in.Warranty),
		Price:               in.Price,
		StockQuantity:       in.StockQuantity,
		PackageQuantity:     in.PackageQuantity,
		AllowIndividualSale: in.AllowIndividualSale,
		CategoryID:          in.CategoryID,
		IsActive:            in.IsActive,
	})
	if err == repo.ErrConflict {
		return ProductDetailOutput{}, NewHTTPError(http.StatusConflict, "part_code already exists")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if len(in.CarIDs) > 0 {
		if err := u.products.ReplaceCompatibleCars(ctx, created.ID, normalizeIDs(in.CarIDs)); err != nil {
			return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.GetProduct(ctx, created.ID)
}

func (u *AdminProductUsecase) UpdateProduct(ctx context.Context, productID int64, in AdminProductInput) (ProductDetailOutput, error) {
	if productID <= 0 {
		return ProductDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return ProductDetailOutput{}, err
	}

	current, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Slug = strings.TrimSpace(in.Slug)
	current.Description = in.Description
	current.PartCode = strings.TrimSpace(in.PartCode)
	current.Brand = strings.TrimSpace(in.Brand)
	current.CountryOfOrigin = strings.TrimSpace(in.CountryOfOrigin)
	current.Warranty = strings.TrimSpace(in.Warranty)
	current.Price = in.Price
	current.StockQuantity = in.StockQuantity
	current.PackageQuantity = in.PackageQuantity
	current.AllowIndividualSale = in.AllowIndividualSale
	current.CategoryID = in.CategoryID
	current.IsActive = in.IsActive

	if err := u.products.Update(ctx, current); err != nil {
		if err == repo.ErrConflict {
			return ProductDetailOutput{}, NewHTTPError(http.StatusConflict, "part_code already exists")
		}
		if err == repo.ErrNotFound {
			return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//適合車種は全置き換え
	if err := u.products.ReplaceCompatibleCars(ctx, productID, normalizeIDs(in.CarIDs)); err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetProduct(ctx, productID)
}

func (u *AdminProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.products.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// UpdateStock は在庫数の直接設定。
func (u *AdminProductUsecase) UpdateStock(ctx context.Context, productID int64, newStock int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}
	if err := u.inventory.SetStock(ctx, productID, newStock); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// BulkSetActive は公開/非公開の一括切り替え。1件ずつ結果を返す。
func (u *AdminProductUsecase) BulkSetActive(ctx context.Context, ids []int64, isActive bool) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		n, err := u.products.SetActiveByIDs(ctx, []int64{id}, isActive)
		if err != nil {
			results = append(results, bulkFailed(id, "db error"))
			continue
		}
		if n == 0 {
			results = append(results, bulkFailed(id, "not found"))
			continue
		}
		results = append(results, bulkOK(id))
	}
	return buildBulkOutput(results), nil
}

// BulkDelete は一括削除。見つからなかったIDはそのIDだけ失敗にする。
func (u *AdminProductUsecase) BulkDelete(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		err := u.products.Delete(ctx, id)
		if err == repo.ErrNotFound {
			results = append(results, bulkFailed(id, "not found"))
			continue
		}
		if err != nil {
			results = append(results, bulkFailed(id, "db error"))
			continue
		}
		results = append(results, bulkOK(id))
	}
	return buildBulkOutput(results), nil
}

type AddProductImageInput struct {
	Path   string
	IsMain bool
}

func (u *AdminProductUsecase) AddImage(ctx context.Context, productID int64, in AddProductImageInput) (model.ProductImage, error) {
	if productID <= 0 {
		return model.ProductImage{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Path) == "" || len(in.Path) > 255 {
		return model.ProductImage{}, NewHTTPError(http.StatusBadRequest, "invalid path")
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return model.ProductImage{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.ProductImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//メイン画像は1枚だけ
	if in.IsMain {
		if err := u.products.ClearMainImage(ctx, productID); err != nil {
			return model.ProductImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	img, err := u.products.AddImage(ctx, model.ProductImage{
		ProductID: productID,
		Path:      strings.TrimSpace(in.Path),
		IsMain:    in.IsMain,
	})
	if err != nil {
		return model.ProductImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return img, nil
}

func (u *AdminProductUsecase) DeleteImage(ctx context.Context, productID int64, imageID int64) error {
	if productID <= 0 || imageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.products.DeleteImage(ctx, productID, imageID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
