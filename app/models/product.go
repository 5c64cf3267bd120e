package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           string              `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name         string              `gorm:"size:255;not null"`
	Slug         string              `gorm:"size:255;not null;uniqueIndex"`
	Description  string              `gorm:"type:text"`
	Price        decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	ComparePrice decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Category     string              `gorm:"size:100"`
	Images       []string            `gorm:"serializer:json"`
	Featured     bool                `gorm:"default:false"`
	DisplayOrder int                 `gorm:"index;default:0"`
	Variants     []ProductVariant    `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
