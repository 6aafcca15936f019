package model

import (
	"time"

	"gorm.io/datatypes"
)

// OrderModel mirrors the 'orders' table. Items and DeliveryAddress are
// immutable snapshots stored as JSONB; after creation only Status and
// PaymentScreenshot ever change.
type OrderModel struct {
	ID                string         `gorm:"type:uuid;primary_key"`
	UserID            string         `gorm:"type:varchar(128);not null;index"`
	ShopID            string         `gorm:"type:uuid;not null;index"`
	Items             datatypes.JSON `gorm:"type:jsonb;not null"`
	Subtotal          int64          `gorm:"not null"`
	Tax               int64          `gorm:"not null;default:0"`
	DeliveryFee       int64          `gorm:"not null"`
	Total             int64          `gorm:"not null"`
	Status            string         `gorm:"type:varchar(20);not null;index"`
	DeliveryAddress   datatypes.JSON `gorm:"type:jsonb;not null"`
	PaymentScreenshot string         `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
