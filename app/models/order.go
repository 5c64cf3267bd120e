package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID       *string         `gorm:"size:36;index"`
	User         *User           `gorm:"foreignKey:UserID"`
	CustomerName string          `gorm:"size:100;not null"`
	Email        string          `gorm:"size:100"`
	Phone        string          `gorm:"size:30"`
	Address      string          `gorm:"size:255"`
	Comment      string          `gorm:"type:text"`
	Total        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Items        []OrderItem     `gorm:"serializer:json"`
	SnapToken    string          `gorm:"size:255"`
	PaymentURL   string          `gorm:"size:255"`
	CreatedAt    time.Time
}

// OrderItem is a snapshot of a cart line at checkout time. The cart itself
// lives in the client; orders keep a denormalized copy so later catalog edits
// do not rewrite history.
type OrderItem struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}
