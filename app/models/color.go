package models

import "time"

// Color rows are shared by reference: variants of several products may point
// at the same row, so its image gallery is shared too. The reconciler forks a
// fresh row whenever that sharing would leak images across products.
// Value is deliberately not unique (the same swatch can exist per product).
type Color struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string   `gorm:"size:100;not null"`
	Value     string   `gorm:"size:100;not null;index"`
	Images    []string `gorm:"serializer:json"`
	CreatedAt time.Time
}
