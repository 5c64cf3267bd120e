package repositories

import (
	"context"

	"github.com/aveline-studio/go-storefront/app/models"
	"gorm.io/gorm"
)

type VariantRepositoryImpl interface {
	Create(ctx context.Context, variant *models.ProductVariant) error
	DeleteByProduct(ctx context.Context, productID string) error
	ColorIDs(ctx context.Context, productID string) ([]string, error)
	ListByProduct(ctx context.Context, productID string) ([]models.ProductVariant, error)
	CountOtherProducts(ctx context.Context, colorID, excludeProductID string) (int64, error)
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepositoryImpl {
	return &variantRepository{db}
}

func (r *variantRepository) Create(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *variantRepository) DeleteByProduct(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).
		Delete(&models.ProductVariant{}).Error
}

// ColorIDs returns the non-null color ids currently attached to the product.
func (r *variantRepository) ColorIDs(ctx context.Context, productID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("product_id = ? AND color_id IS NOT NULL", productID).
		Pluck("color_id", &ids).Error
	return ids, err
}

func (r *variantRepository) ListByProduct(ctx context.Context, productID string) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).
		Joins("LEFT JOIN colors ON colors.id = product_variants.color_id").
		Where("product_variants.product_id = ?", productID).
		Order("COALESCE(product_variants.display_order, 999999), product_variants.size, colors.name").
		Preload("Color").
		Find(&variants).Error
	return variants, err
}

// CountOtherProducts reports how many products other than excludeProductID
// reference the color through their variants. Zero means the color is safe to
// mutate in place.
func (r *variantRepository) CountOtherProducts(ctx context.Context, colorID, excludeProductID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("color_id = ? AND product_id != ?", colorID, excludeProductID).
		Distinct("product_id").
		Count(&count).Error
	return count, err
}
