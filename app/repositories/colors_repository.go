package repositories

import (
	"context"

	"github.com/aveline-studio/go-storefront/app/models"
	"gorm.io/gorm"
)

type ColorRepositoryImpl interface {
	Create(ctx context.Context, color *models.Color) error
	GetByID(ctx context.Context, id string) (*models.Color, error)
	FirstByValue(ctx context.Context, value string) (*models.Color, error)
	UpdateName(ctx context.Context, id, name string) error
	Update(ctx context.Context, id, name, value string, images []string) error
}

type colorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) ColorRepositoryImpl {
	return &colorRepository{db}
}

func (r *colorRepository) Create(ctx context.Context, color *models.Color) error {
	return r.db.WithContext(ctx).Create(color).Error
}

func (r *colorRepository) GetByID(ctx context.Context, id string) (*models.Color, error) {
	var color models.Color
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&color).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

// FirstByValue returns an arbitrary first match: value is not unique, several
// forked rows may carry the same swatch.
func (r *colorRepository) FirstByValue(ctx context.Context, value string) (*models.Color, error) {
	var color models.Color
	err := r.db.WithContext(ctx).Where("value = ?", value).First(&color).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &color, nil
}

func (r *colorRepository) UpdateName(ctx context.Context, id, name string) error {
	return r.db.WithContext(ctx).Model(&models.Color{}).Where("id = ?", id).
		Update("name", name).Error
}

func (r *colorRepository) Update(ctx context.Context, id, name, value string, images []string) error {
	var color models.Color
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&color).Error; err != nil {
		return err
	}
	color.Name = name
	color.Value = value
	color.Images = images
	return r.db.WithContext(ctx).Save(&color).Error
}
