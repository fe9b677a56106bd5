package model

import "time"

// ユーザーのプロフィール（1ユーザーにつき1件）。
type Profile struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	FirstName string `gorm:"type:varchar(50)" json:"first_name"`
	LastName  string `gorm:"type:varchar(50)" json:"last_name"`

	//携帯電話
	Phone string `gorm:"type:varchar(20)" json:"phone"`

	//固定電話
	Landline string `gorm:"type:varchar(20)" json:"landline"`

	//デフォルト住所（任意）
	AddressID *int64 `json:"address_id"`

	//プロフィール写真の保存パス
	PhotoPath string `gorm:"type:varchar(255)" json:"photo_path"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
