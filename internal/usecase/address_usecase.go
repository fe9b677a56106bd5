package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

// DI
func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type AddressInput struct {
	Province   string
	City       string
	Street     string
	PostalCode string
	Detail     string
}

func (in AddressInput) validate() error {
	if strings.TrimSpace(in.Province) == "" || len(in.Province) > 50 {
		return NewHTTPError(http.StatusBadRequest, "invalid province")
	}
	if strings.TrimSpace(in.City) == "" || len(in.City) > 50 {
		return NewHTTPError(http.StatusBadRequest, "invalid city")
	}
	if strings.TrimSpace(in.Street) == "" || len(in.Street) > 50 {
		return NewHTTPError(http.StatusBadRequest, "invalid street")
	}
	if strings.TrimSpace(in.PostalCode) == "" || len(in.PostalCode) > 10 {
		return NewHTTPError(http.StatusBadRequest, "invalid postal_code")
	}
	return nil
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	created, err := u.addresses.Create(ctx, model.Address{
		UserID:     userID,
		Province:   strings.TrimSpace(in.Province),
		City:       strings.TrimSpace(in.City),
		Street:     strings.TrimSpace(in.Street),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Detail:     strings.TrimSpace(in.Detail),
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	//他人の住所は「存在しない扱い」
	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	addr := model.Address{
		ID:         addressID,
		UserID:     userID,
		Province:   strings.TrimSpace(in.Province),
		City:       strings.TrimSpace(in.City),
		Street:     strings.TrimSpace(in.Street),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Detail:     strings.TrimSpace(in.Detail),
	}
	if err := u.addresses.Update(ctx, addr); err != nil {
		if err == repo.ErrNotFound {
			return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	saved, err := u.addresses.FindByID(ctx, addressID)
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
