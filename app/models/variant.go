package models

import "time"

type ProductVariant struct {
	ID           string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID    string  `gorm:"size:36;not null;index;uniqueIndex:idx_variant_combo"`
	Size         string  `gorm:"size:50;not null;uniqueIndex:idx_variant_combo"`
	ColorID      *string `gorm:"size:36;index;uniqueIndex:idx_variant_combo"`
	Color        *Color  `gorm:"foreignKey:ColorID"`
	Stock        int     `gorm:"not null;default:0"`
	Sku          string  `gorm:"size:100"`
	DisplayOrder int     `gorm:"default:0"`
	CreatedAt    time.Time
}
