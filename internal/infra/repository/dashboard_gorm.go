package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) UserStats(ctx context.Context) (repo.UserStats, error) {
	var s repo.UserStats

	db := r.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Where("is_active = ?", true).Count(&s.TotalUsers).Error; err != nil {
		return repo.UserStats{}, err
	}
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&s.TotalAdmins).Error; err != nil {
		return repo.UserStats{}, err
	}
	//注文を1件以上持つユーザー
	if err := db.Model(&model.Order{}).Distinct("user_id").Count(&s.TotalBuyers).Error; err != nil {
		return repo.UserStats{}, err
	}

	return s, nil
}

func (r *DashboardGormRepository) ProductStats(ctx context.Context) (repo.ProductStats, error) {
	var s repo.ProductStats

	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&s.TotalProducts).Error; err != nil {
		return repo.ProductStats{}, err
	}
	if err := db.Model(&model.Product{}).Where("is_active = ?", true).Count(&s.ActiveProducts).Error; err != nil {
		return repo.ProductStats{}, err
	}
	if err := db.Model(&model.Car{}).Count(&s.TotalCars).Error; err != nil {
		return repo.ProductStats{}, err
	}

	return s, nil
}

func (r *DashboardGormRepository) OrderStats(ctx context.Context) (repo.OrderStats, error) {
	var s repo.OrderStats

	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Order{}).Count(&s.TotalOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}
	if err := db.Model(&model.Order{}).Where("status = ?", model.OrderStatusPending).Count(&s.PendingOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}
	if err := db.Model(&model.Order{}).Where("status = ?", model.OrderStatusCancelled).Count(&s.CancelledOrders).Error; err != nil {
		return repo.OrderStats{}, err
	}

	return s, nil
}

// completedな支払いの合計を、全期間・当月・当日で集計する
func (r *DashboardGormRepository) RevenueStats(ctx context.Context) (repo.RevenueStats, error) {
	var s repo.RevenueStats

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Payment{}).
			Select("COALESCE(SUM(payments.amount), 0)").
			Joins("join orders on orders.id = payments.order_id").
			Where("payments.status = ?", model.PaymentStatusCompleted)
	}

	if err := base().Scan(&s.Total).Error; err != nil {
		return repo.RevenueStats{}, err
	}
	if err := base().Where("orders.order_date >= ?", monthStart).Scan(&s.ThisMonth).Error; err != nil {
		return repo.RevenueStats{}, err
	}
	if err := base().Where("orders.order_date >= ?", dayStart).Scan(&s.Today).Error; err != nil {
		return repo.RevenueStats{}, err
	}

	return s, nil
}
