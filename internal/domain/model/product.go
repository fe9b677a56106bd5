package model

import "time"

// 自動車部品。価格は最小通貨単位のint64。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Slug        string `gorm:"type:varchar(200);index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	//部品コード（一意）
	PartCode string `gorm:"type:varchar(100);uniqueIndex;not null" json:"part_code"`

	Brand           string `gorm:"type:varchar(100);not null" json:"brand"`
	CountryOfOrigin string `gorm:"type:varchar(100)" json:"country_of_origin"`
	Warranty        string `gorm:"type:varchar(100)" json:"warranty"`

	Price         int64 `gorm:"not null" json:"price"`
	StockQuantity int64 `gorm:"not null;default:0" json:"stock_quantity"`

	//1パッケージあたりの個数
	PackageQuantity int64 `gorm:"not null;default:1" json:"package_quantity"`

	//falseならpackage_quantityの倍数でしか買えない
	AllowIndividualSale bool `gorm:"not null;default:true" json:"allow_individual_sale"`

	CategoryID int64 `gorm:"not null;index" json:"category_id"`

	//適合車種（many2many）
	CompatibleCars []Car `gorm:"many2many:product_compatible_cars" json:"compatible_cars,omitempty"`

	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 在庫があるか
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// 完全なパッケージがいくつ組めるか
func (p Product) PackageCount() int64 {
	if p.PackageQuantity <= 0 {
		return 0
	}
	return p.StockQuantity / p.PackageQuantity
}

// パッケージに満たない端数の個数
func (p Product) IndividualItemsAvailable() int64 {
	if p.PackageQuantity <= 0 {
		return p.StockQuantity
	}
	return p.StockQuantity % p.PackageQuantity
}
