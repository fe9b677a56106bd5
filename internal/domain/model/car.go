package model

import "time"

// 適合車種。(make, model, year)で一意。
type Car struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Make      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_cars_make_model_year" json:"make"`
	Model     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_cars_make_model_year" json:"model"`
	Year      int       `gorm:"not null;uniqueIndex:idx_cars_make_model_year" json:"year"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
