package services

import (
	"context"
	"strings"
	"testing"

	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) *CatalogService {
	productRepo := repositories.NewProductRepository(db)
	return NewCatalogService(db, productRepo, NewVariantReconciler(), NewDisplayOrderSequencer(productRepo))
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("slug comes from the name", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		product, err := catalog.CreateProduct(ctx, CreateProductInput{
			Name:  "Classic Denim Jacket!",
			Price: decimal.NewFromInt(80),
		})
		require.NoError(t, err)
		assert.Equal(t, "classic-denim-jacket", product.Slug)
		assert.Equal(t, 0, product.DisplayOrder)
	})

	t.Run("slug collisions get numeric suffixes", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		first, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Hoodie", Price: decimal.NewFromInt(50)})
		require.NoError(t, err)
		second, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Hoodie", Price: decimal.NewFromInt(55)})
		require.NoError(t, err)
		third, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Hoodie", Price: decimal.NewFromInt(60)})
		require.NoError(t, err)

		assert.Equal(t, "hoodie", first.Slug)
		assert.Equal(t, "hoodie-1", second.Slug)
		assert.Equal(t, "hoodie-2", third.Slug)

		// Each create also climbs the display order.
		assert.Equal(t, 0, first.DisplayOrder)
		assert.Equal(t, 1, second.DisplayOrder)
		assert.Equal(t, 2, third.DisplayOrder)
	})

	t.Run("symbol-only names fall back to a timestamp slug", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		product, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "???", Price: decimal.NewFromInt(10)})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(product.Slug, "product-"), "got slug %q", product.Slug)
	})

	t.Run("variants are created with the product", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		comparePrice := decimal.NewFromInt(100)
		product, err := catalog.CreateProduct(ctx, CreateProductInput{
			Name:         "Hoodie",
			Price:        decimal.NewFromInt(80),
			ComparePrice: &comparePrice,
			Images:       []string{"https://hoodie.jpg"},
			Variants: []VariantInput{
				{Size: "S", ColorName: "Black", ColorValue: "#000000", Stock: 2},
				{Size: "M", ColorName: "Black", ColorValue: "#000000", Stock: 4},
			},
		})
		require.NoError(t, err)
		assert.True(t, product.ComparePrice.Valid)

		variants, err := repositories.NewVariantRepository(db).ListByProduct(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, variants, 2)
		assert.Equal(t, "S", variants[0].Size)
		assert.Equal(t, "M", variants[1].Size)
	})

	t.Run("duplicate size and color descriptors roll the whole create back", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		_, err := catalog.CreateProduct(ctx, CreateProductInput{
			Name:  "Hoodie",
			Price: decimal.NewFromInt(80),
			Variants: []VariantInput{
				{Size: "M", ColorValue: "#000000"},
				{Size: "M", ColorValue: "#000000"},
			},
		})
		require.Error(t, err)

		var productCount int64
		require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
		assert.Equal(t, int64(0), productCount)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown product", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		name := "Hoodie"
		_, err := catalog.UpdateProduct(ctx, "missing", UpdateProductInput{Name: &name})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("patches only the supplied fields", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		created, err := catalog.CreateProduct(ctx, CreateProductInput{
			Name:        "Hoodie",
			Description: "Heavyweight fleece",
			Price:       decimal.NewFromInt(80),
			Category:    "outerwear",
		})
		require.NoError(t, err)

		newPrice := decimal.NewFromInt(70)
		featured := true
		updated, err := catalog.UpdateProduct(ctx, created.ID, UpdateProductInput{
			Price:    &newPrice,
			Featured: &featured,
		})
		require.NoError(t, err)

		assert.True(t, updated.Price.Equal(newPrice))
		assert.True(t, updated.Featured)
		assert.Equal(t, "Hoodie", updated.Name)
		assert.Equal(t, "Heavyweight fleece", updated.Description)
		assert.Equal(t, "outerwear", updated.Category)
		assert.Equal(t, created.Slug, updated.Slug)
	})

	t.Run("images alone are a valid patch", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		created, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Hoodie", Price: decimal.NewFromInt(80)})
		require.NoError(t, err)

		images := []string{"https://front.jpg", "https://back.jpg"}
		updated, err := catalog.UpdateProduct(ctx, created.ID, UpdateProductInput{Images: &images})
		require.NoError(t, err)
		assert.Equal(t, images, updated.Images)
	})

	t.Run("a request carrying only variants is rejected", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		created, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Hoodie", Price: decimal.NewFromInt(80)})
		require.NoError(t, err)

		variants := []VariantInput{{Size: "M", Stock: 3}}
		_, err = catalog.UpdateProduct(ctx, created.ID, UpdateProductInput{Variants: &variants})
		assert.ErrorIs(t, err, ErrNoUpdateData)
	})

	t.Run("an empty request is rejected", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		created, err := catalog.CreateProduct(ctx, CreateProductInput{Name: "Hoodie", Price: decimal.NewFromInt(80)})
		require.NoError(t, err)

		_, err = catalog.UpdateProduct(ctx, created.ID, UpdateProductInput{})
		assert.ErrorIs(t, err, ErrNoUpdateData)
	})

	t.Run("variants ride along with a field patch", func(t *testing.T) {
		db := newTestDB(t)
		catalog := newCatalogService(db)

		created, err := catalog.CreateProduct(ctx, CreateProductInput{
			Name:  "Hoodie",
			Price: decimal.NewFromInt(80),
			Variants: []VariantInput{
				{Size: "S", ColorValue: "#000000"},
			},
		})
		require.NoError(t, err)

		name := "Heavy Hoodie"
		variants := []VariantInput{
			{Size: "M", ColorValue: "#000000", Stock: 7},
			{Size: "L", ColorValue: "#000000", Stock: 1},
		}
		updated, err := catalog.UpdateProduct(ctx, created.ID, UpdateProductInput{
			Name:     &name,
			Variants: &variants,
		})
		require.NoError(t, err)
		assert.Equal(t, "Heavy Hoodie", updated.Name)

		rows, err := repositories.NewVariantRepository(db).ListByProduct(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "M", rows[0].Size)
		assert.Equal(t, "L", rows[1].Size)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	catalog := newCatalogService(db)

	created, err := catalog.CreateProduct(ctx, CreateProductInput{
		Name:  "Hoodie",
		Price: decimal.NewFromInt(80),
		Variants: []VariantInput{
			{Size: "M", ColorValue: "#000000"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteProduct(ctx, created.ID))

	product, err := repositories.NewProductRepository(db).GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, product)

	variants, err := repositories.NewVariantRepository(db).ListByProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, variants)

	// The color row outlives the product.
	var colorCount int64
	require.NoError(t, db.Model(&models.Color{}).Count(&colorCount).Error)
	assert.Equal(t, int64(1), colorCount)
}
