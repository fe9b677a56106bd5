package repository

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Payment{}, repo.ErrConflict
		}
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByID(ctx context.Context, id int64) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).First(&p, id).Error
	if isNotFound(err) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if isNotFound(err) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) ListAdmin(ctx context.Context, f repo.PaymentListFilter) ([]model.Payment, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Payment{})

	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		tx = tx.Where("payment_type = ?", f.Type)
	}
	if s := strings.TrimSpace(f.Q); s != "" {
		tx = tx.Where("transaction_id ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Payment{}, 0, err
	}

	switch f.Sort {
	case "amount_asc":
		tx = tx.Order("amount asc").Order("id asc")
	case "amount_desc":
		tx = tx.Order("amount desc").Order("id desc")
	case "status":
		tx = tx.Order("status asc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	var items []model.Payment
	offset := (f.Page - 1) * f.Limit
	if err := tx.Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Payment{}, 0, err
	}

	return items, total, nil
}

// 管理者の直接編集
func (r *PaymentGormRepository) Update(ctx context.Context, p model.Payment) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"payment_type":   p.PaymentType,
			"status":         p.Status,
			"transaction_id": p.TransactionID,
			"amount":         p.Amount,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 注文ステータス変更に伴う投影
func (r *PaymentGormRepository) SyncStatusByOrderID(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PaymentGormRepository) SetStatusByIDs(ctx context.Context, ids []int64, status model.PaymentStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id IN ?", ids).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *PaymentGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Payment{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *PaymentGormRepository) DeleteByOrderIDs(ctx context.Context, orderIDs []int64) error {
	return r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Delete(&model.Payment{}).Error
}
