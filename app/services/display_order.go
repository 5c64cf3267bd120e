package services

import (
	"context"
	"errors"

	"github.com/aveline-studio/go-storefront/app/repositories"
)

var ErrProductNotFound = errors.New("product not found")

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// DisplayOrderSequencer owns the integer ordering of the product list: higher
// display_order sorts first, ties broken by created_at descending. Moves are
// adjacent swaps of two rows' values, not a renumbering of the whole list.
type DisplayOrderSequencer struct {
	productRepo repositories.ProductRepositoryImpl
}

func NewDisplayOrderSequencer(productRepo repositories.ProductRepositoryImpl) *DisplayOrderSequencer {
	return &DisplayOrderSequencer{productRepo: productRepo}
}

// NextDisplayOrder returns max+1 so a freshly created product sorts to the
// top. An empty table yields 0.
func (s *DisplayOrderSequencer) NextDisplayOrder(ctx context.Context) (int, error) {
	max, err := s.productRepo.MaxDisplayOrder(ctx)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Reorder moves the product one step up or down in canonical display order by
// swapping its display_order with the adjacent product's. Moving the first
// product up or the last one down is a silent no-op. The snapshot read and
// the two writes are not atomic as a unit; concurrent reorders can race.
func (s *DisplayOrderSequencer) Reorder(ctx context.Context, productID, direction string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	rows, err := s.productRepo.ListOrderSnapshot(ctx)
	if err != nil {
		return err
	}

	currentIndex := -1
	for i, row := range rows {
		if row.ID == productID {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		return ErrProductNotFound
	}

	var targetIndex int
	if direction == DirectionUp {
		targetIndex = currentIndex - 1
		if targetIndex < 0 {
			return nil
		}
	} else {
		targetIndex = currentIndex + 1
		if targetIndex >= len(rows) {
			return nil
		}
	}

	target := rows[targetIndex]

	if err := s.productRepo.SetDisplayOrder(ctx, productID, target.DisplayOrder); err != nil {
		return err
	}
	return s.productRepo.SetDisplayOrder(ctx, target.ID, rows[currentIndex].DisplayOrder)
}
