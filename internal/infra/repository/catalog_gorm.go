package repository

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// ==== Category ====

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if isNotFound(err) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{"name": c.Name, "parent_id": c.ParentID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CategoryGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Category{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ==== Car ====

type CarGormRepository struct {
	db *gorm.DB
}

func NewCarGormRepository(db *gorm.DB) *CarGormRepository {
	return &CarGormRepository{db: db}
}

func (r *CarGormRepository) List(ctx context.Context, f repo.CarListFilter) ([]model.Car, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Car{})

	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("make ILIKE ? OR model ILIKE ?", like, like)
	}
	if f.Year != nil {
		tx = tx.Where("year = ?", *f.Year)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Car{}, 0, err
	}

	var items []model.Car
	offset := (f.Page - 1) * f.Limit
	err := tx.Order("make asc").Order("model asc").Order("year desc").
		Limit(f.Limit).Offset(offset).Find(&items).Error
	if err != nil {
		return []model.Car{}, 0, err
	}

	return items, total, nil
}

func (r *CarGormRepository) FindByID(ctx context.Context, id int64) (model.Car, error) {
	var c model.Car
	err := r.db.WithContext(ctx).First(&c, id).Error
	if isNotFound(err) {
		return model.Car{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Car{}, err
	}
	return c, nil
}

func (r *CarGormRepository) Create(ctx context.Context, c model.Car) (model.Car, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		//(make, model, year)重複
		if isUniqueViolation(err) {
			return model.Car{}, repo.ErrConflict
		}
		return model.Car{}, err
	}
	return c, nil
}

func (r *CarGormRepository) Update(ctx context.Context, c model.Car) error {
	res := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{"make": c.Make, "model": c.Model, "year": c.Year})
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

func (r *CarGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Car{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CarGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Car{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ==== Banner ====

type BannerGormRepository struct {
	db *gorm.DB
}

func NewBannerGormRepository(db *gorm.DB) *BannerGormRepository {
	return &BannerGormRepository{db: db}
}

func (r *BannerGormRepository) List(ctx context.Context) ([]model.Banner, error) {
	var items []model.Banner
	if err := r.db.WithContext(ctx).Order("position asc").Order("id asc").Find(&items).Error; err != nil {
		return []model.Banner{}, err
	}
	return items, nil
}

func (r *BannerGormRepository) FindByID(ctx context.Context, id int64) (model.Banner, error) {
	var b model.Banner
	err := r.db.WithContext(ctx).First(&b, id).Error
	if isNotFound(err) {
		return model.Banner{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Banner{}, err
	}
	return b, nil
}

func (r *BannerGormRepository) Create(ctx context.Context, b model.Banner) (model.Banner, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Banner{}, err
	}
	return b, nil
}

func (r *BannerGormRepository) Update(ctx context.Context, b model.Banner) error {
	res := r.db.WithContext(ctx).Model(&model.Banner{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{"image_path": b.ImagePath, "position": b.Position})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BannerGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Banner{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BannerGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Banner{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ==== Contact ====

type ContactGormRepository struct {
	db *gorm.DB
}

func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

func (r *ContactGormRepository) List(ctx context.Context, page int, limit int) ([]model.Contact, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Contact{}).Count(&total).Error; err != nil {
		return []model.Contact{}, 0, err
	}

	var items []model.Contact
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("created_at desc").Order("id desc").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Contact{}, 0, err
	}

	return items, total, nil
}

func (r *ContactGormRepository) FindByID(ctx context.Context, id int64) (model.Contact, error) {
	var c model.Contact
	err := r.db.WithContext(ctx).First(&c, id).Error
	if isNotFound(err) {
		return model.Contact{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

func (r *ContactGormRepository) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

func (r *ContactGormRepository) Update(ctx context.Context, c model.Contact) error {
	res := r.db.WithContext(ctx).Model(&model.Contact{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"full_name": c.FullName,
			"email":     c.Email,
			"subject":   c.Subject,
			"message":   c.Message,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ContactGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Contact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ContactGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Contact{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
