package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	Name      string `gorm:"size:100"`
	Phone     string `gorm:"size:20"`
	Address   string `gorm:"size:255"`
	Role      string `gorm:"size:20;default:'customer';not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// AdminUserID is the pseudo id carried by sessions authenticated against the
// ADMIN_EMAIL/ADMIN_PASSWORD env credentials. It never exists in the users
// table; orders placed under it are stored with a NULL user id.
const AdminUserID = "admin"
