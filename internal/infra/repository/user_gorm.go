package repository

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		//username重複
		if isUniqueViolation(err) {
			return model.User{}, repo.ErrConflict
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if isNotFound(err) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if isNotFound(err) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id asc").First(&u).Error
	if isNotFound(err) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r *UserGormRepository) List(ctx context.Context, f repo.UserListFilter) ([]model.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.User{})

	if s := strings.TrimSpace(f.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}
	if f.Role != "" {
		tx = tx.Where("role = ?", f.Role)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.User{}, 0, err
	}

	switch f.Sort {
	case "id_asc":
		tx = tx.Order("id asc")
	case "username_asc":
		tx = tx.Order("username asc").Order("id asc")
	case "username_desc":
		tx = tx.Order("username desc").Order("id desc")
	case "created_asc":
		tx = tx.Order("created_at asc").Order("id asc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	var items []model.User
	offset := (f.Page - 1) * f.Limit
	if err := tx.Limit(f.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.User{}, 0, err
	}

	return items, total, nil
}

func (r *UserGormRepository) Update(ctx context.Context, u model.User) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":  u.Username,
			"email":     u.Email,
			"role":      u.Role,
			"is_active": u.IsActive,
		})
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

func (r *UserGormRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *UserGormRepository) SetActiveByIDs(ctx context.Context, ids []int64, isActive bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id IN ?", ids).
		Update("is_active", isActive)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *UserGormRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.User{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
