package models

import "time"

type PasswordReset struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string `gorm:"size:36;not null;index"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Token     string `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time
	Used      bool `gorm:"default:false"`
	CreatedAt time.Time
}
