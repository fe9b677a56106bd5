package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/フィルタ/ソート/ページング付きの商品一覧。
// 適合車種の絞り込みはproduct_compatible_carsをJOINする。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.ActiveOnly {
		tx = tx.Where("products.is_active = ?", true)
	}

	// 自由検索（name/brand/part_code横断）
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("products.name ILIKE ? OR products.brand ILIKE ? OR products.part_code ILIKE ?", like, like, like)
	}

	if s := strings.TrimSpace(q.Name); s != "" {
		tx = tx.Where("products.name ILIKE ?", "%"+s+"%")
	}
	if s := strings.TrimSpace(q.Brand); s != "" {
		tx = tx.Where("products.brand ILIKE ?", "%"+s+"%")
	}
	if s := strings.TrimSpace(q.PartCode); s != "" {
		tx = tx.Where("products.part_code ILIKE ?", "%"+s+"%")
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("products.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("products.price <= ?", *q.MaxPrice)
	}

	if q.InStock != nil && *q.InStock {
		tx = tx.Where("products.stock_quantity > 0")
	}

	if q.CategoryID != nil {
		tx = tx.Where("products.category_id = ?", *q.CategoryID)
	}

	//適合車種
	if q.CarMake != "" || q.CarModel != "" || q.CarYear != nil {
		tx = tx.
			Joins("join product_compatible_cars pcc on pcc.product_id = products.id").
			Joins("join cars on cars.id = pcc.car_id").
			Distinct("products.*")

		if s := strings.TrimSpace(q.CarMake); s != "" {
			tx = tx.Where("cars.make ILIKE ?", "%"+s+"%")
		}
		if s := strings.TrimSpace(q.CarModel); s != "" {
			tx = tx.Where("cars.model ILIKE ?", "%"+s+"%")
		}
		if q.CarYear != nil {
			tx = tx.Where("cars.year = ?", *q.CarYear)
		}
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	switch q.Sort {
	case "name", "name_asc":
		tx = tx.Order("products.name asc").Order("products.id asc")
	case "name_desc":
		tx = tx.Order("products.name desc").Order("products.id desc")
	case "price_asc":
		tx = tx.Order("products.price asc").Order("products.id asc")
	case "price_desc":
		tx = tx.Order("products.price desc").Order("products.id desc")
	case "stock_asc":
		tx = tx.Order("products.stock_quantity asc").Order("products.id asc")
	case "stock_desc":
		tx = tx.Order("products.stock_quantity desc").Order("products.id desc")
	case "created_asc":
		tx = tx.Order("products.created_at asc").Order("products.id asc")
	default:
		tx = tx.Order("products.created_at desc").Order("products.id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Preload("Images").Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 画像・適合車種つきで取得
func (r *ProductGormRepository) FindByIDWithRelations(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("CompatibleCars").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Product{}, repo.ErrConflict
		}
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":                  p.Name,
		"slug":                  p.Slug,
		"description":           p.Description,
		"part_code":             p.PartCode,
		"brand":                 p.Brand,
		"country_of_origin":     p.CountryOfOrigin,
		"warranty":              p.Warranty,
		"price":                 p.Price,
		"package_quantity":      p.PackageQuantity,
		"allow_individual_sale": p.AllowIndividualSale,
		"category_id":           p.CategoryID,
		"is_active":             p.IsActive,
	})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return repo.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) SetActiveByIDs(ctx context.Context, ids []int64, isActive bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id IN ?", ids).
		Update("is_active", isActive)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *ProductGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Product{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// 適合車種を丸ごと入れ替える
func (r *ProductGormRepository) ReplaceCompatibleCars(ctx context.Context, productID int64, carIDs []int64) error {
	var cars []model.Car
	if len(carIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", carIDs).Find(&cars).Error; err != nil {
			return err
		}
	}
	p := model.Product{ID: productID}
	return r.db.WithContext(ctx).Model(&p).Association("CompatibleCars").Replace(cars)
}

func (r *ProductGormRepository) AddImage(ctx context.Context, img model.ProductImage) (model.ProductImage, error) {
	if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
		return model.ProductImage{}, err
	}
	return img, nil
}

// メイン画像を付け替える前に既存のis_mainを落とす
func (r *ProductGormRepository) ClearMainImage(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Model(&model.ProductImage{}).
		Where("product_id = ?", productID).
		Update("is_main", false).Error
}

func (r *ProductGormRepository) DeleteImage(ctx context.Context, productID int64, imageID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&model.ProductImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
