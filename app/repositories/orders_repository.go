package repositories

import (
	"context"

	"github.com/aveline-studio/go-storefront/app/models"
	"gorm.io/gorm"
)

type OrderRepositoryImpl interface {
	Create(ctx context.Context, order *models.Order) error
	ListAll(ctx context.Context, limit int) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Order, error)
	UpdatePaymentDetails(ctx context.Context, orderID, snapToken, paymentURL string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepositoryImpl {
	return &orderRepository{db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdatePaymentDetails(ctx context.Context, orderID, snapToken, paymentURL string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"snap_token":  snapToken,
			"payment_url": paymentURL,
		}).Error
}
