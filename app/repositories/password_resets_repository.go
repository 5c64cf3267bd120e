package repositories

import (
	"context"

	"github.com/aveline-studio/go-storefront/app/models"
	"gorm.io/gorm"
)

type PasswordResetRepositoryImpl interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	FindUnusedByToken(ctx context.Context, token string) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, token string) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepositoryImpl {
	return &passwordResetRepository{db}
}

func (r *passwordResetRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

// FindUnusedByToken ignores expiry on purpose: the caller distinguishes an
// expired token from an unknown one.
func (r *passwordResetRepository) FindUnusedByToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := r.db.WithContext(ctx).Where("token = ? AND used = ?", token, false).First(&reset).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) MarkUsed(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Model(&models.PasswordReset{}).Where("token = ?", token).
		Update("used", true).Error
}
