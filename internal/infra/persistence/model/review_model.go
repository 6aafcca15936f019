package model

import (
	"time"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index
// enforces one review per (user, order, product) at the storage layer.
type ReviewModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	ProductID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_user_order_product"`
	UserID    string `gorm:"type:varchar(128);not null;uniqueIndex:idx_reviews_user_order_product"`
	OrderID   string `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_order_product"`
	Rating    int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
