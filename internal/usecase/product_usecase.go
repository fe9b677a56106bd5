package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	products repo.ProductRepository
}

// DI
func NewProductUsecase(products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{products: products}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	Name     string
	Brand    string
	PartCode string
	MinPrice *int64
	MaxPrice *int64
	InStock  *bool

	CategoryID *int64

	//適合車種での絞り込み
	CarMake  string
	CarModel string
	CarYear  *int

	Sort string
}

// 一覧の1行。在庫の派生値もここで返す。
type ProductSummary struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Brand           string `json:"brand"`
	PartCode        string `json:"part_code"`
	Price           int64  `json:"price"`
	StockQuantity   int64  `json:"stock_quantity"`
	PackageQuantity int64  `json:"package_quantity"`
	InStock         bool   `json:"in_stock"`
	MainImagePath   string `json:"main_image_path,omitempty"`
}

type ProductListOutput struct {
	Items []ProductSummary `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type ProductDetailOutput struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	PartCode        string `json:"part_code"`
	Brand           string `json:"brand"`
	CountryOfOrigin string `json:"country_of_origin"`
	Warranty        string `json:"warranty"`
	Price           int64  `json:"price"`
	StockQuantity   int64  `json:"stock_quantity"`
	PackageQuantity int64  `json:"package_quantity"`

	AllowIndividualSale bool `json:"allow_individual_sale"`

	//在庫の派生値
	InStock                  bool  `json:"in_stock"`
	PackageCount             int64 `json:"package_count"`
	IndividualItemsAvailable int64 `json:"individual_items_available"`

	CategoryID     int64                `json:"category_id"`
	CompatibleCars []model.Car          `json:"compatible_cars"`
	Images         []model.ProductImage `json:"images"`
}

var productSortKeys = map[string]struct{}{
	"":             {},
	"name":         {},
	"name_asc":     {},
	"name_desc":    {},
	"price_asc":    {},
	"price_desc":   {},
	"stock_asc":    {},
	"stock_desc":   {},
	"created_asc":  {},
	"created_desc": {},
}

func validateListInput(in ListProductsInput) error {
	if in.Page < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	if _, ok := productSortKeys[strings.TrimSpace(in.Sort)]; !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	return nil
}

// ListPublicProducts は公開中（is_active=true）の商品だけを返す。
func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
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
		ActiveOnly: true,
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

// GetPublicProduct は商品詳細（画像・適合車種つき）。非公開は404。
func (u *ProductUsecase) GetPublicProduct(ctx context.Context, productID int64) (ProductDetailOutput, error) {
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
	if !p.IsActive {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return toProductDetail(p), nil
}

func toProductSummary(p model.Product) ProductSummary {
	s := ProductSummary{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		PartCode:        p.PartCode,
		Price:           p.Price,
		StockQuantity:   p.StockQuantity,
		PackageQuantity: p.PackageQuantity,
		InStock:         p.InStock(),
	}
	for _, img := range p.Images {
		if img.IsMain {
			s.MainImagePath = img.Path
			break
		}
	}
	return s
}

func toProductDetail(p model.Product) ProductDetailOutput {
	cars := p.CompatibleCars
	if cars == nil {
		cars = []model.Car{}
	}
	images := p.Images
	if images == nil {
		images = []model.ProductImage{}
	}

	return ProductDetailOutput{
		ID:                       p.ID,
		Name:                     p.Name,
		Slug:                     p.Slug,
		Description:              p.Description,
		PartCode:                 p.PartCode,
		Brand:                    p.Brand,
		CountryOfOrigin:          p.CountryOfOrigin,
		Warranty:                 p.Warranty,
		Price:                    p.Price,
		StockQuantity:            p.StockQuantity,
		PackageQuantity:          p.PackageQuantity,
		AllowIndividualSale:      p.AllowIndividualSale,
		InStock:                  p.InStock(),
		PackageCount:             p.PackageCount(),
		IndividualItemsAvailable: p.IndividualItemsAvailable(),
		CategoryID:               p.CategoryID,
		CompatibleCars:           cars,
		Images:                   images,
	}
}
