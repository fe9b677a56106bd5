package model

import "time"

// お問い合わせフォームの投稿
type Contact struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Email     string    `gorm:"type:varchar(100);not null" json:"email"`
	Subject   string    `gorm:"type:varchar(100);not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
