package repositories

import (
	"context"

	"github.com/aveline-studio/go-storefront/app/models"
	"gorm.io/gorm"
)

// ProductOrderRow is the minimal projection the reorder logic walks over.
type ProductOrderRow struct {
	ID           string
	DisplayOrder int
}

type ProductRepositoryImpl interface {
	GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	IsSlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, product *models.Product) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error

	MaxDisplayOrder(ctx context.Context) (int, error)
	ListOrderSnapshot(ctx context.Context) ([]ProductOrderRow, error)
	SetDisplayOrder(ctx context.Context, id string, order int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := p.db.WithContext(ctx).
		Order("display_order DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) IsSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return p.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (p *productRepository) MaxDisplayOrder(ctx context.Context) (int, error) {
	var max int
	err := p.db.WithContext(ctx).Model(&models.Product{}).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

func (p *productRepository) ListOrderSnapshot(ctx context.Context) ([]ProductOrderRow, error) {
	var rows []ProductOrderRow
	err := p.db.WithContext(ctx).Model(&models.Product{}).
		Select("id", "display_order").
		Order("display_order DESC, created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (p *productRepository) SetDisplayOrder(ctx context.Context, id string, order int) error {
	return p.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		Update("display_order", order).Error
}
