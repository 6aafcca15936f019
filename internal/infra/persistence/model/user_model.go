package model

import (
	"time"
)

// UserModel mirrors the 'users' table. The primary key is the opaque UID
// issued by the identity provider, never generated locally.
type UserModel struct {
	ID        string `gorm:"type:varchar(128);primary_key"`
	Name      string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(255);unique;not null"`
	Phone     string `gorm:"type:varchar(32)"`
	College   string `gorm:"type:varchar(100)"`
	Role      string `gorm:"type:varchar(20);not null;default:'customer'"`
	Verified  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
