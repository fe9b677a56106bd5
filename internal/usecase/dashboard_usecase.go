package usecase

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// 管理者ダッシュボードの集計。
type DashboardUsecase struct {
	dashboard repo.DashboardRepository
}

// DI
func NewDashboardUsecase(dashboard repo.DashboardRepository) *DashboardUsecase {
	return &DashboardUsecase{dashboard: dashboard}
}

type DashboardOutput struct {
	Users    repo.UserStats    `json:"users"`
	Products repo.ProductStats `json:"products"`
	Orders   repo.OrderStats   `json:"orders"`
	Revenue  repo.RevenueStats `json:"revenue"`
}

func (u *DashboardUsecase) GetDashboard(ctx context.Context) (DashboardOutput, error) {
	users, err := u.dashboard.UserStats(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	products, err := u.dashboard.ProductStats(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orders, err := u.dashboard.OrderStats(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	revenue, err := u.dashboard.RevenueStats(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		Users:    users,
		Products: products,
		Orders:   orders,
		Revenue:  revenue,
	}, nil
}
