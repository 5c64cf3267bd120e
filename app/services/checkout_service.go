package services

import (
	"context"
	"fmt"
	"log"

	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CheckoutInput struct {
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Comment      string
	UserID       *string
	Items        []models.OrderItem
}

// CheckoutService turns a client cart into a stored order. The total is
// recomputed server-side from the submitted unit prices; stock is not
// decremented. When a payment gateway is configured the order additionally
// gets a hosted payment link.
type CheckoutService struct {
	orderRepo repositories.OrderRepositoryImpl
	payment   *PaymentService
}

func NewCheckoutService(orderRepo repositories.OrderRepositoryImpl, payment *PaymentService) *CheckoutService {
	return &CheckoutService{orderRepo: orderRepo, payment: payment}
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, input CheckoutInput) (*models.Order, string, error) {
	total := decimal.Zero
	for _, item := range input.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// The env-credential admin is not a row in the users table; its orders
	// are stored without an owner.
	userID := input.UserID
	if userID != nil && *userID == models.AdminUserID {
		userID = nil
	}

	order := &models.Order{
		ID:           uuid.New().String(),
		UserID:       userID,
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		Comment:      input.Comment,
		Total:        total,
		Items:        input.Items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	paymentURL := ""
	if s.payment != nil && s.payment.Enabled() {
		url, token, err := s.payment.CreateSnapTransaction(order)
		if err != nil {
			// The order is already stored; a gateway hiccup must not undo it.
			log.Printf("CheckoutService: payment link for order %s failed: %v", order.ID, err)
		} else {
			paymentURL = url
			if err := s.orderRepo.UpdatePaymentDetails(ctx, order.ID, token, url); err != nil {
				log.Printf("CheckoutService: failed to store payment details for order %s: %v", order.ID, err)
			}
		}
	}

	return order, paymentURL, nil
}
