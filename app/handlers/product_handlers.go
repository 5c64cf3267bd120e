package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/aveline-studio/go-storefront/app/utils/format"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	DisplayPrice string    `json:"displayPrice"`
	ComparePrice *float64  `json:"comparePrice"`
	Category     string    `json:"category"`
	Images       []string  `json:"images"`
	Featured     bool      `json:"featured"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewProductResponse(p *models.Product, formatter *format.PriceFormatter) ProductResponse {
	var comparePrice *float64
	if p.ComparePrice.Valid {
		v := p.ComparePrice.Decimal.InexactFloat64()
		comparePrice = &v
	}

	images := p.Images
	if images == nil {
		images = []string{}
	}

	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price.InexactFloat64(),
		DisplayPrice: formatter.Format(p.Price),
		ComparePrice: comparePrice,
		Category:     p.Category,
		Images:       images,
		Featured:     p.Featured,
		DisplayOrder: p.DisplayOrder,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type VariantResponse struct {
	ID          string   `json:"id"`
	Size        string   `json:"size"`
	ColorID     *string  `json:"colorId"`
	ColorName   *string  `json:"colorName"`
	ColorValue  *string  `json:"colorValue"`
	ColorImages []string `json:"colorImages"`
	Stock       int      `json:"stock"`
}

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
	variantRepo repositories.VariantRepositoryImpl
	formatter   *format.PriceFormatter
}

func NewProductHandler(renderer *render.Render, productRepo repositories.ProductRepositoryImpl, variantRepo repositories.VariantRepositoryImpl, formatter *format.PriceFormatter) *ProductHandler {
	return &ProductHandler{
		render:      renderer,
		productRepo: productRepo,
		variantRepo: variantRepo,
		formatter:   formatter,
	}
}

// ListProducts returns the catalog page ordered by display_order descending,
// newest first within ties.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	products, total, err := h.productRepo.GetPaginated(r.Context(), limit, offset)
	if err != nil {
		log.Printf("ListProducts: failed to fetch products: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, NewProductResponse(&products[i], h.formatter))
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"products": responses,
		"pagination": map[string]interface{}{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("GetProductBySlug: failed to fetch product %s: %v", slug, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch product"})
		return
	}
	if product == nil {
		h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
		return
	}

	h.render.JSON(w, http.StatusOK, NewProductResponse(product, h.formatter))
}

// GetProductVariants lists a product's variants with their color rows joined
// in, in stored display order.
func (h *ProductHandler) GetProductVariants(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	variants, err := h.variantRepo.ListByProduct(r.Context(), productID)
	if err != nil {
		log.Printf("GetProductVariants: failed to fetch variants for %s: %v", productID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch variants"})
		return
	}

	responses := make([]VariantResponse, 0, len(variants))
	for _, v := range variants {
		resp := VariantResponse{
			ID:          v.ID,
			Size:        v.Size,
			ColorID:     v.ColorID,
			ColorImages: []string{},
			Stock:       v.Stock,
		}
		if v.Color != nil {
			resp.ColorName = &v.Color.Name
			resp.ColorValue = &v.Color.Value
			if v.Color.Images != nil {
				resp.ColorImages = v.Color.Images
			}
		}
		responses = append(responses, resp)
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{"variants": responses})
}
