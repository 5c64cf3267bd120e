package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/aveline-studio/go-storefront/app/helpers"
	"github.com/aveline-studio/go-storefront/app/middlewares"
	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/aveline-studio/go-storefront/app/services"
	"github.com/aveline-studio/go-storefront/app/utils/format"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type OrderItemRequest struct {
	ProductID string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Image     string  `json:"image"`
}

type CreateOrderRequest struct {
	CustomerName string             `json:"customerName" validate:"required,min=2"`
	Email        string             `json:"email" validate:"omitempty,email"`
	Phone        string             `json:"phone" validate:"required,min=5"`
	Address      string             `json:"address" validate:"required,min=5"`
	Comment      string             `json:"comment"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderResponse struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customerName"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	Address      string             `json:"address"`
	Comment      string             `json:"comment,omitempty"`
	Total        float64            `json:"total"`
	DisplayTotal string             `json:"displayTotal"`
	Items        []models.OrderItem `json:"items"`
	PaymentURL   string             `json:"paymentUrl,omitempty"`
	UserEmail    string             `json:"userEmail,omitempty"`
	UserName     string             `json:"userName,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

type OrderHandler struct {
	render    *render.Render
	validator *validator.Validate
	checkout  *services.CheckoutService
	orderRepo repositories.OrderRepositoryImpl
	formatter *format.PriceFormatter
}

func NewOrderHandler(renderer *render.Render, validate *validator.Validate, checkout *services.CheckoutService, orderRepo repositories.OrderRepositoryImpl, formatter *format.PriceFormatter) *OrderHandler {
	return &OrderHandler{
		render:    renderer,
		validator: validate,
		checkout:  checkout,
		orderRepo: orderRepo,
		formatter: formatter,
	}
}

func (h *OrderHandler) newOrderResponse(o *models.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []models.OrderItem{}
	}

	resp := OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		Address:      o.Address,
		Comment:      o.Comment,
		Total:        o.Total.InexactFloat64(),
		DisplayTotal: h.formatter.Format(o.Total),
		Items:        items,
		PaymentURL:   o.PaymentURL,
		CreatedAt:    o.CreatedAt,
	}
	if o.User != nil {
		resp.UserEmail = o.User.Email
		resp.UserName = o.User.Name
	}
	return resp
}

// CreateOrder accepts guest checkouts; a session only attaches the order to
// the logged-in account.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Validation failed",
				"fields": helpers.FormatValidationErrors(validationErrors),
			})
			return
		}
		h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payload"})
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     decimal.NewFromFloat(item.Price),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	input := services.CheckoutInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		Comment:      req.Comment,
		Items:        items,
	}
	if user := middlewares.UserFromContext(r.Context()); user != nil {
		input.UserID = &user.ID
	}

	order, paymentURL, err := h.checkout.PlaceOrder(r.Context(), input)
	if err != nil {
		log.Printf("CreateOrder: failed to place order for %q: %v", req.CustomerName, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create order"})
		return
	}

	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"id":         order.ID,
		"total":      order.Total.InexactFloat64(),
		"paymentUrl": paymentURL,
	})
}

// ListOrders returns every order for admins and only the caller's own orders
// otherwise.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := middlewares.UserFromContext(r.Context())
	if user == nil {
		h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var (
		orders []models.Order
		err    error
	)
	if user.Role == models.RoleAdmin {
		orders, err = h.orderRepo.ListAll(r.Context(), 200)
	} else {
		orders, err = h.orderRepo.ListByUser(r.Context(), user.ID, 200)
	}
	if err != nil {
		log.Printf("ListOrders: failed to fetch orders for %s: %v", user.ID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
		return
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, h.newOrderResponse(&orders[i]))
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{"orders": responses})
}
