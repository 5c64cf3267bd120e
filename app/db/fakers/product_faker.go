package fakers

import (
	"log"
	"math/rand"
	"time"

	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var fakeCategories = []string{"tops", "bottoms", "outerwear", "accessories"}

var fakeSizes = []string{"XS", "S", "M", "L", "XL"}

var fakeColors = []struct {
	Name  string
	Value string
}{
	{"Black", "#000000"},
	{"White", "#ffffff"},
	{"Navy", "#001f3f"},
	{"Olive", "#3d9970"},
}

func ProductFaker(db *gorm.DB, displayOrder int) *models.Product {
	name := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()

	picked := fakeColors[rand.Intn(len(fakeColors))]
	color := &models.Color{
		ID:        uuid.New().String(),
		Name:      picked.Name,
		Value:     picked.Value,
		Images:    []string{"/images/products/placeholder.jpg"},
		CreatedAt: time.Now(),
	}
	if err := db.FirstOrCreate(color, "value = ?", color.Value).Error; err != nil {
		log.Fatal("Failed to create/find color:", err)
	}

	numSizes := rand.Intn(3) + 2
	variants := make([]models.ProductVariant, 0, numSizes)
	for i := 0; i < numSizes && i < len(fakeSizes); i++ {
		variants = append(variants, models.ProductVariant{
			ID:           uuid.New().String(),
			ProductID:    productID,
			Size:         fakeSizes[i],
			ColorID:      &color.ID,
			Stock:        rand.Intn(20) + 1,
			DisplayOrder: i,
			CreatedAt:    time.Now(),
		})
	}

	price := float64(rand.Intn(190)+10) + 0.99

	return &models.Product{
		ID:           productID,
		Name:         name,
		Slug:         slug.Make(name + "-" + uuid.NewString()[:6]),
		Description:  faker.Paragraph(),
		Price:        decimal.NewFromFloat(price),
		Category:     fakeCategories[rand.Intn(len(fakeCategories))],
		Images:       []string{"/images/products/placeholder.jpg"},
		Featured:     rand.Intn(4) == 0,
		DisplayOrder: displayOrder,
		Variants:     variants,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}
