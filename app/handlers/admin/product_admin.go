package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aveline-studio/go-storefront/app/handlers"
	"github.com/aveline-studio/go-storefront/app/helpers"
	"github.com/aveline-studio/go-storefront/app/services"
	"github.com/aveline-studio/go-storefront/app/utils/format"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type VariantRequest struct {
	Size        string  `json:"size" validate:"required"`
	ColorName   string  `json:"colorName"`
	ColorValue  string  `json:"colorValue"`
	Stock       int     `json:"stock" validate:"min=0"`
	ColorID     *string `json:"colorId"`
	ColorImages *string `json:"colorImages"`
}

type CreateProductRequest struct {
	Name         string           `json:"name" validate:"required,min=2"`
	Description  string           `json:"description"`
	Price        float64          `json:"price" validate:"required,gt=0"`
	ComparePrice *float64         `json:"comparePrice" validate:"omitempty,gt=0"`
	Category     string           `json:"category"`
	Images       []string         `json:"images" validate:"omitempty,dive,url"`
	Featured     bool             `json:"featured"`
	Variants     []VariantRequest `json:"variants" validate:"omitempty,dive"`
}

// NullableFloat distinguishes an absent JSON key from an explicit null. On
// the compare-at price patch, null clears the stored value while an absent
// key leaves it untouched.
type NullableFloat struct {
	Set   bool
	Valid bool
	Value float64
}

func (n *NullableFloat) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

type UpdateProductRequest struct {
	Name         *string           `json:"name" validate:"omitempty,min=2"`
	Description  *string           `json:"description"`
	Price        *float64          `json:"price" validate:"omitempty,gt=0"`
	ComparePrice NullableFloat     `json:"comparePrice"`
	Category     *string           `json:"category"`
	Images       *[]string         `json:"images" validate:"omitempty,dive,url"`
	Featured     *bool             `json:"featured"`
	Variants     *[]VariantRequest `json:"variants" validate:"omitempty,dive"`
}

type ReorderRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type AdminHandler struct {
	render    *render.Render
	validator *validator.Validate
	catalog   *services.CatalogService
	sequencer *services.DisplayOrderSequencer
	formatter *format.PriceFormatter
}

func NewAdminHandler(renderer *render.Render, validate *validator.Validate, catalog *services.CatalogService, sequencer *services.DisplayOrderSequencer, formatter *format.PriceFormatter) *AdminHandler {
	return &AdminHandler{
		render:    renderer,
		validator: validate,
		catalog:   catalog,
		sequencer: sequencer,
		formatter: formatter,
	}
}

func variantInputs(reqs []VariantRequest) []services.VariantInput {
	inputs := make([]services.VariantInput, 0, len(reqs))
	for _, v := range reqs {
		inputs = append(inputs, services.VariantInput{
			Size:        v.Size,
			ColorName:   v.ColorName,
			ColorValue:  v.ColorValue,
			Stock:       v.Stock,
			ColorID:     v.ColorID,
			ColorImages: v.ColorImages,
		})
	}
	return inputs
}

func (h *AdminHandler) validationFailed(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": helpers.FormatValidationErrors(validationErrors),
		})
		return true
	}
	h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
	return true
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("CreateProduct: failed to decode payload: %v", err)
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if h.validationFailed(w, h.validator.Struct(&req)) {
		return
	}

	input := services.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Category:    req.Category,
		Images:      req.Images,
		Featured:    req.Featured,
		Variants:    variantInputs(req.Variants),
	}
	if req.ComparePrice != nil {
		comparePrice := decimal.NewFromFloat(*req.ComparePrice)
		input.ComparePrice = &comparePrice
	}

	product, err := h.catalog.CreateProduct(r.Context(), input)
	if err != nil {
		log.Printf("CreateProduct: failed to create product %q: %v", req.Name, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create product"})
		return
	}

	h.render.JSON(w, http.StatusCreated, handlers.NewProductResponse(product, h.formatter))
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("UpdateProduct: failed to decode payload for %s: %v", productID, err)
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if h.validationFailed(w, h.validator.Struct(&req)) {
		return
	}
	if req.ComparePrice.Set && req.ComparePrice.Valid && req.ComparePrice.Value <= 0 {
		h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": map[string]string{"compareprice": "ComparePrice must be greater than 0."},
		})
		return
	}

	input := services.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Images:      req.Images,
		Featured:    req.Featured,
	}
	if req.Price != nil {
		price := decimal.NewFromFloat(*req.Price)
		input.Price = &price
	}
	if req.ComparePrice.Set {
		if req.ComparePrice.Valid {
			input.ComparePrice = &decimal.NullDecimal{Decimal: decimal.NewFromFloat(req.ComparePrice.Value), Valid: true}
		} else {
			input.ComparePrice = &decimal.NullDecimal{}
		}
	}
	if req.Variants != nil {
		inputs := variantInputs(*req.Variants)
		input.Variants = &inputs
	}

	product, err := h.catalog.UpdateProduct(r.Context(), productID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
		case errors.Is(err, services.ErrNoUpdateData):
			h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "No data"})
		default:
			log.Printf("UpdateProduct: failed to update product %s: %v", productID, err)
			h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update product"})
		}
		return
	}

	h.render.JSON(w, http.StatusOK, handlers.NewProductResponse(product, h.formatter))
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	if err := h.catalog.DeleteProduct(r.Context(), productID); err != nil {
		log.Printf("DeleteProduct: failed to delete product %s: %v", productID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete product"})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AdminHandler) ReorderProducts(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if h.validationFailed(w, h.validator.Struct(&req)) {
		return
	}

	if err := h.sequencer.Reorder(r.Context(), req.ProductID, req.Direction); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
			return
		}
		log.Printf("ReorderProducts: failed to reorder product %s: %v", req.ProductID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to reorder products"})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
