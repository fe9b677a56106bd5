package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 公開側のカタログ情報（カテゴリ・車種・バナー・お問い合わせ）。
type CatalogUsecase struct {
	categories repo.CategoryRepository
	cars       repo.CarRepository
	banners    repo.BannerRepository
	contacts   repo.ContactRepository
}

// DI
func NewCatalogUsecase(
	categories repo.CategoryRepository,
	cars repo.CarRepository,
	banners repo.BannerRepository,
	contacts repo.ContactRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		categories: categories,
		cars:       cars,
		banners:    banners,
		contacts:   contacts,
	}
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	list, err := u.categories.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

type ListCarsInput struct {
	Page  int
	Limit int
	Q     string
	Year  *int
}

type CarListOutput struct {
	Items []model.Car `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func (u *CatalogUsecase) ListCars(ctx context.Context, in ListCarsInput) (CarListOutput, error) {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 50
	}
	if in.Page < 1 {
		return CarListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 200 {
		return CarListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.cars.List(ctx, repo.CarListFilter{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
		Year:  in.Year,
	})
	if err != nil {
		return CarListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CarListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *CatalogUsecase) ListBanners(ctx context.Context) ([]model.Banner, error) {
	list, err := u.banners.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

type ContactInput struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

// SubmitContact はお問い合わせの受付（認証不要）。
func (u *CatalogUsecase) SubmitContact(ctx context.Context, in ContactInput) (model.Contact, error) {
	if strings.TrimSpace(in.FullName) == "" || len(in.FullName) > 100 {
		return model.Contact{}, NewHTTPError(http.StatusBadRequest, "invalid full_name")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return model.Contact{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if strings.TrimSpace(in.Subject) == "" || len(in.Subject) > 100 {
		return model.Contact{}, NewHTTPError(http.StatusBadRequest, "invalid subject")
	}
	if strings.TrimSpace(in.Message) == "" {
		return model.Contact{}, NewHTTPError(http.StatusBadRequest, "message required")
	}

	created, err := u.contacts.Create(ctx, model.Contact{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Subject:  strings.TrimSpace(in.Subject),
		Message:  strings.TrimSpace(in.Message),
	})
	if err != nil {
		return model.Contact{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}
