package model

// 商品カテゴリ（親を持てる）。
type Category struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	ParentID *int64 `gorm:"index" json:"parent_id"`
}
