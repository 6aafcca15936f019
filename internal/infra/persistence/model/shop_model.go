package model

import (
	"time"
)

// ShopModel mirrors the 'shops' table. The unique index on OwnerID enforces
// the one-shop-per-owner invariant at the storage layer.
type ShopModel struct {
	ID          string `gorm:"type:uuid;primary_key"`
	OwnerID     string `gorm:"type:varchar(128);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Address     string `gorm:"type:text;not null"`
	UPIID       string `gorm:"column:upi_id;type:varchar(100);not null"`
	Verified    bool   `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShopModel) TableName() string {
	return "shops"
}
