package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aveline-studio/go-storefront/app/helpers"
	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNoUpdateData = errors.New("no fields to update")

type CreateProductInput struct {
	Name         string
	Description  string
	Price        decimal.Decimal
	ComparePrice *decimal.Decimal
	Category     string
	Images       []string
	Featured     bool
	Variants     []VariantInput
}

// UpdateProductInput patches only the fields that are non-nil. Variants nil
// means the request did not mention variants at all and the existing set is
// left untouched; an empty non-nil slice wipes it.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	ComparePrice *decimal.NullDecimal
	Category     *string
	Images       *[]string
	Featured     *bool
	Variants     *[]VariantInput
}

// CatalogService is the write façade over products: it assigns slugs and
// display order on create, patches scalars on update, and hands the variant
// list to the reconciler. Each call runs in one transaction.
type CatalogService struct {
	db          *gorm.DB
	productRepo repositories.ProductRepositoryImpl
	reconciler  *VariantReconciler
	sequencer   *DisplayOrderSequencer
}

func NewCatalogService(db *gorm.DB, productRepo repositories.ProductRepositoryImpl, reconciler *VariantReconciler, sequencer *DisplayOrderSequencer) *CatalogService {
	return &CatalogService{
		db:          db,
		productRepo: productRepo,
		reconciler:  reconciler,
		sequencer:   sequencer,
	}
}

// uniqueSlug derives the URL slug from the product name and disambiguates
// collisions with a -1, -2, ... suffix.
func (s *CatalogService) uniqueSlug(ctx context.Context, name string) (string, error) {
	baseSlug := helpers.GenerateSlug(name)
	if baseSlug == "" {
		baseSlug = helpers.FallbackSlug()
	}

	slug := baseSlug
	counter := 1
	for {
		exists, err := s.productRepo.IsSlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		counter++
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	slug, err := s.uniqueSlug(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to derive slug: %w", err)
	}

	displayOrder, err := s.sequencer.NextDisplayOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to assign display order: %w", err)
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	comparePrice := decimal.NullDecimal{}
	if input.ComparePrice != nil {
		comparePrice = decimal.NullDecimal{Decimal: *input.ComparePrice, Valid: true}
	}

	product := &models.Product{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		Price:        input.Price,
		ComparePrice: comparePrice,
		Category:     input.Category,
		Images:       images,
		Featured:     input.Featured,
		DisplayOrder: displayOrder,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewProductRepository(tx).Create(ctx, product); err != nil {
			return err
		}
		return s.reconciler.ReconcileOnCreate(ctx, tx, product.ID, input.Variants)
	})
	if err != nil {
		log.Printf("CatalogService: failed to create product %q: %v", input.Name, err)
		return nil, err
	}

	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.ComparePrice != nil {
		fields["compare_price"] = *input.ComparePrice
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}

	// A request carrying only variants is rejected, matching the original
	// endpoint's "No data" answer.
	if len(fields) == 0 && input.Images == nil {
		return nil, ErrNoUpdateData
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := repositories.NewProductRepository(tx).UpdateFields(ctx, id, fields); err != nil {
				return err
			}
		}
		if input.Images != nil {
			// Images go through Save so the JSON serializer applies.
			images := *input.Images
			if images == nil {
				images = []string{}
			}
			var current models.Product
			if err := tx.WithContext(ctx).Where("id = ?", id).First(&current).Error; err != nil {
				return err
			}
			current.Images = images
			if err := tx.WithContext(ctx).Save(&current).Error; err != nil {
				return err
			}
		}
		if input.Variants != nil {
			return s.reconciler.ReconcileOnUpdate(ctx, tx, id, *input.Variants)
		}
		return nil
	})
	if err != nil {
		log.Printf("CatalogService: failed to update product %s: %v", id, err)
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		variantRepo := repositories.NewVariantRepository(tx)
		if err := variantRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return repositories.NewProductRepository(tx).Delete(ctx, id)
	})
}
