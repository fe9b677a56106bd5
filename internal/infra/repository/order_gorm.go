package repository

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

// 管理者用の注文一覧
func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Order{})

	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.UserID != nil {
		tx = tx.Where("user_id = ?", *f.UserID)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		tx = tx.Where("shipping_address ILIKE ?", "%"+s+"%")
	}
	if f.From != nil {
		tx = tx.Where("order_date >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("order_date <= ?", *f.To)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	switch f.Sort {
	case "date_asc":
		tx = tx.Order("order_date asc").Order("id asc")
	case "total_asc":
		tx = tx.Order("total_amount asc").Order("id asc")
	case "total_desc":
		tx = tx.Order("total_amount desc").Order("id desc")
	case "status":
		tx = tx.Order("status asc").Order("id desc")
	default:
		tx = tx.Order("order_date desc").Order("id desc")
	}

	var items []model.Order
	offset := (f.Page - 1) * f.Limit
	if err := tx.Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) ListByIDs(ctx context.Context, ids []int64) ([]model.Order, error) {
	var items []model.Order
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細の増減後に合計金額を取り直す
func (r *OrderGormRepository) UpdateTotalAmount(ctx context.Context, orderID int64, total int64) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Update(ctx context.Context, order model.Order) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":           order.Status,
			"shipping_address": order.ShippingAddress,
			"payment_type":     order.PaymentType,
			"total_amount":     order.TotalAmount,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Order{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
