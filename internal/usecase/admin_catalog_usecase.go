package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者向けのマスタ管理（カテゴリ・車種・バナー・お問い合わせ）。
type AdminCatalogUsecase struct {
	categories repo.CategoryRepository
	cars       repo.CarRepository
	banners    repo.BannerRepository
	contacts   repo.ContactRepository
}

// DI
func NewAdminCatalogUsecase(
	categories repo.CategoryRepository,
	cars repo.CarRepository,
	banners repo.BannerRepository,
	contacts repo.ContactRepository,
) *AdminCatalogUsecase {
	return &AdminCatalogUsecase{
		categories: categories,
		cars:       cars,
		banners:    banners,
		contacts:   contacts,
	}
}

// ----- カテゴリ -----

type CategoryInput struct {
	Name     string
	ParentID *int64
}

func (u *AdminCatalogUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 100 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	//親の存在チェック
	if in.ParentID != nil {
		if _, err := u.categories.FindByID(ctx, *in.ParentID); err != nil {
			if err == repo.ErrNotFound {
				return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid parent_id")
			}
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	created, err := u.categories.Create(ctx, model.Category{
		Name:     strings.TrimSpace(in.Name),
		ParentID: in.ParentID,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AdminCatalogUsecase) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 100 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return model.Category{}, NewHTTPError(http.StatusBadRequest, "category cannot be its own parent")
		}
		if _, err := u.categories.FindByID(ctx, *in.ParentID); err != nil {
			if err == repo.ErrNotFound {
				return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid parent_id")
			}
			return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	c := model.Category{ID: id, Name: strings.TrimSpace(in.Name), ParentID: in.ParentID}
	if err := u.categories.Update(ctx, c); err != nil {
		if err == repo.ErrNotFound {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *AdminCatalogUsecase) DeleteCategory(ctx context.Context, id int64) error {
	return u.deleteOne(ctx, id, u.categories.Delete)
}

func (u *AdminCatalogUsecase) BulkDeleteCategories(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	return u.bulkDelete(ctx, ids, u.categories.Delete)
}

// ----- 車種 -----

type CarInput struct {
	Make  string
	Model string
	Year  int
}

func (in CarInput) validate() error {
	if strings.TrimSpace(in.Make) == "" || len(in.Make) > 50 {
		return NewHTTPError(http.StatusBadRequest, "invalid make")
	}
	if strings.TrimSpace(in.Model) == "" || len(in.Model) > 50 {
		return NewHTTPError(http.StatusBadRequest, "invalid model")
	}
	if in.Year < 1900 || in.Year > 2100 {
		return NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	return nil
}

func (u *AdminCatalogUsecase) CreateCar(ctx context.Context, in CarInput) (model.Car, error) {
	if err := in.validate(); err != nil {
		return model.Car{}, err
	}

	created, err := u.cars.Create(ctx, model.Car{
		Make:  strings.TrimSpace(in.Make),
		Model: strings.TrimSpace(in.Model),
		Year:  in.Year,
	})
	if err == repo.ErrConflict {
		return model.Car{}, NewHTTPError(http.StatusConflict, "car already exists")
	}
	if err != nil {
		return model.Car{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AdminCatalogUsecase) UpdateCar(ctx context.Context, id int64, in CarInput) (model.Car, error) {
	if id <= 0 {
		return model.Car{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Car{}, err
	}

	c := model.Car{
		ID:    id,
		Make:  strings.TrimSpace(in.Make),
		Model: strings.TrimSpace(in.Model),
		Year:  in.Year,
	}
	if err := u.cars.Update(ctx, c); err != nil {
		if err == repo.ErrNotFound {
			return model.Car{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		if err == repo.ErrConflict {
			return model.Car{}, NewHTTPError(http.StatusConflict, "car already exists")
		}
		return model.Car{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *AdminCatalogUsecase) DeleteCar(ctx context.Context, id int64) error {
	return u.deleteOne(ctx, id, u.cars.Delete)
}

func (u *AdminCatalogUsecase) BulkDeleteCars(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	return u.bulkDelete(ctx, ids, u.cars.Delete)
}

// ----- バナー -----

type BannerInput struct {
	ImagePath string
	Position  int
}

func (u *AdminCatalogUsecase) CreateBanner(ctx context.Context, userID int64, in BannerInput) (model.Banner, error) {
	if strings.TrimSpace(in.ImagePath) == "" || len(in.ImagePath) > 255 {
		return model.Banner{}, NewHTTPError(http.StatusBadRequest, "invalid image_path")
	}
	if in.Position < 0 {
		return model.Banner{}, NewHTTPError(http.StatusBadRequest, "invalid position")
	}

	created, err := u.banners.Create(ctx, model.Banner{
		UserID:    userID,
		ImagePath: strings.TrimSpace(in.ImagePath),
		Position:  in.Position,
	})
	if err != nil {
		return model.Banner{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AdminCatalogUsecase) UpdateBanner(ctx context.Context, id int64, in BannerInput) (model.Banner, error) {
	if id <= 0 {
		return model.Banner{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.ImagePath) == "" || len(in.ImagePath) > 255 {
		return model.Banner{}, NewHTTPError(http.StatusBadRequest, "invalid image_path")
	}
	if in.Position < 0 {
		return model.Banner{}, NewHTTPError(http.StatusBadRequest, "invalid position")
	}

	current, err := u.banners.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Banner{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Banner{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	current.ImagePath = strings.TrimSpace(in.ImagePath)
	current.Position = in.Position

	if err := u.banners.Update(ctx, current); err != nil {
		return model.Banner{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return current, nil
}

func (u *AdminCatalogUsecase) DeleteBanner(ctx context.Context, id int64) error {
	return u.deleteOne(ctx, id, u.banners.Delete)
}

func (u *AdminCatalogUsecase) BulkDeleteBanners(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	return u.bulkDelete(ctx, ids, u.banners.Delete)
}

// ----- お問い合わせ -----

type ContactListOutput struct {
	Items []model.Contact `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *AdminCatalogUsecase) ListContacts(ctx context.Context, page int, limit int) (ContactListOutput, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 20
	}
	if page < 1 || limit < 1 || limit > 100 {
		return ContactListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page or limit")
	}

	items, total, err := u.contacts.List(ctx, page, limit)
	if err != nil {
		return ContactListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ContactListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *AdminCatalogUsecase) GetContact(ctx context.Context, id int64) (model.Contact, error) {
	if id <= 0 {
		return model.Contact{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	c, err := u.contacts.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Contact{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Contact{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *AdminCatalogUsecase) DeleteContact(ctx context.Context, id int64) error {
	return u.deleteOne(ctx, id, u.contacts.Delete)
}

func (u *AdminCatalogUsecase) BulkDeleteContacts(ctx context.Context, ids []int64) (BulkResultOutput, error) {
	return u.bulkDelete(ctx, ids, u.contacts.Delete)
}

// ----- 共通 -----

func (u *AdminCatalogUsecase) deleteOne(ctx context.Context, id int64, del func(context.Context, int64) error) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := del(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminCatalogUsecase) bulkDelete(ctx context.Context, ids []int64, del func(context.Context, int64) error) (BulkResultOutput, error) {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return BulkResultOutput{}, NewHTTPError(http.StatusBadRequest, "ids required")
	}

	results := make([]BulkItemResult, 0, len(ids))
	for _, id := range ids {
		err := del(ctx, id)
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
