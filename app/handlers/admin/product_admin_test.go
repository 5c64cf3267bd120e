package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aveline-studio/go-storefront/app/models/migrations"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/aveline-studio/go-storefront/app/services"
	"github.com/aveline-studio/go-storefront/app/utils/format"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestHandler(t *testing.T) (*AdminHandler, *services.CatalogService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))

	productRepo := repositories.NewProductRepository(db)
	sequencer := services.NewDisplayOrderSequencer(productRepo)
	catalog := services.NewCatalogService(db, productRepo, services.NewVariantReconciler(), sequencer)
	handler := NewAdminHandler(render.New(), validator.New(), catalog, sequencer, format.NewPriceFormatter("$"))
	return handler, catalog, db
}

func patchProduct(t *testing.T, handler *AdminHandler, productID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/products/"+productID, bytes.NewBufferString(body))
	req = mux.SetURLVars(req, map[string]string{"id": productID})
	recorder := httptest.NewRecorder()
	handler.UpdateProduct(recorder, req)
	return recorder
}

func TestUpdateProductRequestComparePriceDecoding(t *testing.T) {
	t.Run("absent key is not set", func(t *testing.T) {
		var req UpdateProductRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name": "Hoodie"}`), &req))
		assert.False(t, req.ComparePrice.Set)
	})

	t.Run("explicit null is set but not valid", func(t *testing.T) {
		var req UpdateProductRequest
		require.NoError(t, json.Unmarshal([]byte(`{"comparePrice": null}`), &req))
		assert.True(t, req.ComparePrice.Set)
		assert.False(t, req.ComparePrice.Valid)
	})

	t.Run("number is set and valid", func(t *testing.T) {
		var req UpdateProductRequest
		require.NoError(t, json.Unmarshal([]byte(`{"comparePrice": 99.5}`), &req))
		assert.True(t, req.ComparePrice.Set)
		assert.True(t, req.ComparePrice.Valid)
		assert.Equal(t, 99.5, req.ComparePrice.Value)
	})
}

func TestUpdateProductComparePrice(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit null clears the compare-at price", func(t *testing.T) {
		handler, catalog, _ := newTestHandler(t)

		comparePrice := decimal.NewFromInt(100)
		created, err := catalog.CreateProduct(ctx, services.CreateProductInput{
			Name:         "Hoodie",
			Price:        decimal.NewFromInt(80),
			ComparePrice: &comparePrice,
		})
		require.NoError(t, err)
		require.True(t, created.ComparePrice.Valid)

		recorder := patchProduct(t, handler, created.ID, `{"comparePrice": null}`)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Nil(t, body["comparePrice"])
	})

	t.Run("absent key leaves the compare-at price alone", func(t *testing.T) {
		handler, catalog, _ := newTestHandler(t)

		comparePrice := decimal.NewFromInt(100)
		created, err := catalog.CreateProduct(ctx, services.CreateProductInput{
			Name:         "Hoodie",
			Price:        decimal.NewFromInt(80),
			ComparePrice: &comparePrice,
		})
		require.NoError(t, err)

		recorder := patchProduct(t, handler, created.ID, `{"featured": true}`)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, float64(100), body["comparePrice"])
	})

	t.Run("a new number replaces the compare-at price", func(t *testing.T) {
		handler, catalog, _ := newTestHandler(t)

		created, err := catalog.CreateProduct(ctx, services.CreateProductInput{
			Name:  "Hoodie",
			Price: decimal.NewFromInt(80),
		})
		require.NoError(t, err)

		recorder := patchProduct(t, handler, created.ID, `{"comparePrice": 120}`)
		assert.Equal(t, http.StatusOK, recorder.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, float64(120), body["comparePrice"])
	})

	t.Run("zero and negative values are rejected", func(t *testing.T) {
		handler, catalog, _ := newTestHandler(t)

		created, err := catalog.CreateProduct(ctx, services.CreateProductInput{
			Name:  "Hoodie",
			Price: decimal.NewFromInt(80),
		})
		require.NoError(t, err)

		recorder := patchProduct(t, handler, created.ID, `{"comparePrice": -5}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
