package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProductModel mirrors the 'products' table. Tags and Images are stored as
// JSONB arrays. The check constraint backs the guarded stock decrement: the
// database itself never lets stock go negative.
type ProductModel struct {
	ID          string         `gorm:"type:uuid;primary_key"`
	ShopID      string         `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Price       int64          `gorm:"not null;check:price >= 0"`
	Stock       int64          `gorm:"not null;check:stock >= 0"`
	Category    string         `gorm:"type:varchar(32);not null;index"`
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	Images      datatypes.JSON `gorm:"type:jsonb"`
	RatingAvg   float64        `gorm:"not null;default:0"`
	ReviewCount int64          `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
