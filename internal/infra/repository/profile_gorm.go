package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if isNotFound(err) {
		return model.Profile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// user_idの一意制約に乗せたupsert
func (r *ProfileGormRepository) Upsert(ctx context.Context, p model.Profile) (model.Profile, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "phone", "landline", "address_id", "photo_path", "updated_at",
			}),
		}).
		Create(&p).Error
	if err != nil {
		return model.Profile{}, err
	}

	//IDを確実に返す
	return r.FindByUserID(ctx, p.UserID)
}
