package fakers

import (
	"time"

	"github.com/aveline-studio/go-storefront/app/helpers"
	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func UserFaker(db *gorm.DB) *models.User {
	return &models.User{
		ID:        uuid.New().String(),
		Email:     faker.Email(),
		Password:  helpers.HashPassword("password123"),
		Name:      faker.Name(),
		Phone:     faker.Phonenumber(),
		Address:   faker.Sentence(),
		Role:      models.RoleCustomer,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
