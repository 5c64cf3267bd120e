package migrations

import (
	"github.com/aveline-studio/go-storefront/app/models"
	"gorm.io/gorm"
)

// AutoMigrate is idempotent and meant to run once at process startup (or via
// the migrate CLI command), never from request handling.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.PasswordReset{}, &models.Color{}, &models.Product{}, &models.ProductVariant{}, &models.Order{})
}
