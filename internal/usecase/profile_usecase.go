package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProfileUsecase struct {
	profiles  repo.ProfileRepository
	addresses repo.AddressRepository
}

// DI
func NewProfileUsecase(profiles repo.ProfileRepository, addresses repo.AddressRepository) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles, addresses: addresses}
}

type ProfileOutput struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Landline  string `json:"landline"`
	AddressID *int64 `json:"address_id"`
	PhotoPath string `json:"photo_path"`
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
	Landline  string
	AddressID *int64
	PhotoPath string
}

// Get はプロフィール取得（未作成なら空のプロフィールを返す）。
func (u *ProfileUsecase) Get(ctx context.Context, userID int64) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := u.profiles.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return ProfileOutput{UserID: userID}, nil
	}
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProfileOutput(p), nil
}

func (u *ProfileUsecase) Update(ctx context.Context, userID int64, in UpdateProfileInput) (ProfileOutput, error) {
	if userID <= 0 {
		return ProfileOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.FirstName) > 50 || len(in.LastName) > 50 {
		return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "name too long")
	}

	//デフォルト住所は自分のものだけ設定できる
	if in.AddressID != nil {
		owned, err := u.addresses.IsOwnedByUser(ctx, *in.AddressID, userID)
		if err != nil {
			return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !owned {
			return ProfileOutput{}, NewHTTPError(http.StatusBadRequest, "invalid address_id")
		}
	}

	saved, err := u.profiles.Upsert(ctx, model.Profile{
		UserID:    userID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Landline:  strings.TrimSpace(in.Landline),
		AddressID: in.AddressID,
		PhotoPath: in.PhotoPath,
	})
	if err != nil {
		return ProfileOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProfileOutput(saved), nil
}

func toProfileOutput(p model.Profile) ProfileOutput {
	return ProfileOutput{
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Landline:  p.Landline,
		AddressID: p.AddressID,
		PhotoPath: p.PhotoPath,
	}
}
