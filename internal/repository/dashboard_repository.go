package repository

import "context"

type UserStats struct {
	TotalUsers  int64 `json:"total_users"`
	TotalAdmins int64 `json:"total_admins"`
	TotalBuyers int64 `json:"total_buyers"`
}

type ProductStats struct {
	TotalProducts  int64 `json:"total_products"`
	ActiveProducts int64 `json:"active_products"`
	TotalCars      int64 `json:"total_cars"`
}

type OrderStats struct {
	TotalOrders     int64 `json:"total_orders"`
	PendingOrders   int64 `json:"pending_orders"`
	CancelledOrders int64 `json:"cancelled_orders"`
}

// completedな支払いに対する売上集計
type RevenueStats struct {
	Total     int64 `json:"total"`
	ThisMonth int64 `json:"this_month"`
	Today     int64 `json:"today"`
}

type DashboardRepository interface {
	UserStats(ctx context.Context) (UserStats, error)
	ProductStats(ctx context.Context) (ProductStats, error)
	OrderStats(ctx context.Context) (OrderStats, error)
	RevenueStats(ctx context.Context) (RevenueStats, error)
}
