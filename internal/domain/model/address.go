package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//都道府県に相当する行政区分
	Province string `gorm:"type:varchar(50);not null" json:"province"`

	//市区町村
	City string `gorm:"type:varchar(50);not null" json:"city"`

	//通り・番地
	Street string `gorm:"type:varchar(50);not null" json:"street"`

	//郵便番号
	PostalCode string `gorm:"type:varchar(10);not null" json:"postal_code"`

	//詳細住所
	Detail string `gorm:"type:text;not null" json:"detail"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
