package services

import (
	"context"
	"log"
	"strings"

	"github.com/aveline-studio/go-storefront/app/models"
	"github.com/aveline-studio/go-storefront/app/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VariantInput is one submitted (size, color, stock) descriptor. ColorImages
// is the raw textarea content: newline-separated URLs; nil means the form
// sent no images field at all.
type VariantInput struct {
	Size        string
	ColorName   string
	ColorValue  string
	Stock       int
	ColorID     *string
	ColorImages *string
}

type colorActionKind int

const (
	// colorNone: the variant is colorless.
	colorNone colorActionKind = iota
	// colorReuse: point the variant at an existing row, leave it untouched.
	colorReuse
	// colorRename: reuse an existing row, overwriting only its name.
	colorRename
	// colorRefresh: reuse an existing row, rewriting name, value and images.
	colorRefresh
	// colorFork: create a brand-new row so no other product shares it.
	colorFork
)

type colorDecision struct {
	Kind    colorActionKind
	ColorID string
	Name    string
	Value   string
	Images  []string
}

// splitImageLines turns textarea content into a URL list: one per line,
// trimmed, blank lines dropped. Always returns a non-nil slice so empty
// galleries serialize as [] rather than null.
func splitImageLines(raw *string) []string {
	images := []string{}
	if raw == nil {
		return images
	}
	for _, line := range strings.Split(*raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			images = append(images, line)
		}
	}
	return images
}

func colorNameOrValue(v VariantInput) string {
	if v.ColorName != "" {
		return v.ColorName
	}
	return v.ColorValue
}

func colorValueOrName(v VariantInput) string {
	if v.ColorValue != "" {
		return v.ColorValue
	}
	return v.ColorName
}

// resolveColorOnCreate decides the color action for one descriptor of a brand
// new product. byID is the row matching the descriptor's ColorID (nil when
// absent or deleted), byValue the first row matching ColorValue (nil when the
// lookup was skipped or found nothing).
//
// An explicit ColorID wins: the picked row is rewritten in place, or recreated
// if it vanished. Otherwise a by-value match is only reused when the
// submission carries no images; any images mean a fork, because galleries live
// on the color row and would bleed into whichever products already use it.
func resolveColorOnCreate(v VariantInput, byID *models.Color, byValue *models.Color) colorDecision {
	name := colorNameOrValue(v)
	value := colorValueOrName(v)

	if v.ColorID != nil && *v.ColorID != "" && v.ColorValue != "" {
		if byID != nil {
			return colorDecision{Kind: colorRefresh, ColorID: *v.ColorID, Name: name, Value: value, Images: splitImageLines(v.ColorImages)}
		}
		return colorDecision{Kind: colorFork, Name: name, Value: value, Images: splitImageLines(v.ColorImages)}
	}

	if v.ColorValue == "" {
		return colorDecision{Kind: colorNone}
	}

	if byValue == nil {
		return colorDecision{Kind: colorFork, Name: name, Value: value, Images: splitImageLines(v.ColorImages)}
	}

	// Note the asymmetry with the update path: here a whitespace-only images
	// field still counts as "images supplied" and forces a fork.
	if v.ColorImages != nil && *v.ColorImages != "" {
		return colorDecision{Kind: colorFork, Name: name, Value: value, Images: splitImageLines(v.ColorImages)}
	}

	if v.ColorName != "" {
		return colorDecision{Kind: colorRename, ColorID: byValue.ID, Name: v.ColorName}
	}
	return colorDecision{Kind: colorReuse, ColorID: byValue.ID}
}

// resolveColorOnUpdate decides the color action for one descriptor while
// editing an existing product. otherProducts is the number of products other
// than the one being edited that reference byValue through their variants;
// anything above zero makes the row unsafe to mutate, so it is forked instead.
func resolveColorOnUpdate(v VariantInput, byValue *models.Color, otherProducts int64) colorDecision {
	if v.ColorValue == "" {
		return colorDecision{Kind: colorNone}
	}

	name := colorNameOrValue(v)
	value := colorValueOrName(v)

	if v.ColorImages != nil && strings.TrimSpace(*v.ColorImages) != "" {
		return colorDecision{Kind: colorFork, Name: name, Value: value, Images: splitImageLines(v.ColorImages)}
	}

	if byValue != nil {
		if otherProducts == 0 {
			if v.ColorName != "" {
				return colorDecision{Kind: colorRename, ColorID: byValue.ID, Name: v.ColorName}
			}
			return colorDecision{Kind: colorReuse, ColorID: byValue.ID}
		}
		return colorDecision{Kind: colorFork, Name: name, Value: value, Images: []string{}}
	}

	return colorDecision{Kind: colorFork, Name: name, Value: value, Images: []string{}}
}

// VariantReconciler rewrites a product's variant set from submitted
// descriptors, resolving each descriptor's color against the colors table
// first. Duplicate (size, color) descriptors in one submission are not
// deduplicated; the unique index rejects them and the transaction rolls back.
// Colors left without referencing variants are never cleaned up.
type VariantReconciler struct{}

func NewVariantReconciler() *VariantReconciler {
	return &VariantReconciler{}
}

// ReconcileOnCreate inserts the variant rows for a product that was just
// created, tagging each with its submitted position as display order.
func (s *VariantReconciler) ReconcileOnCreate(ctx context.Context, tx *gorm.DB, productID string, variants []VariantInput) error {
	colorRepo := repositories.NewColorRepository(tx)
	variantRepo := repositories.NewVariantRepository(tx)

	for i, v := range variants {
		var byID, byValue *models.Color
		var err error

		if v.ColorID != nil && *v.ColorID != "" && v.ColorValue != "" {
			byID, err = colorRepo.GetByID(ctx, *v.ColorID)
			if err != nil {
				return err
			}
		} else if v.ColorValue != "" {
			byValue, err = colorRepo.FirstByValue(ctx, v.ColorValue)
			if err != nil {
				return err
			}
		}

		decision := resolveColorOnCreate(v, byID, byValue)
		colorID, err := s.applyColorDecision(ctx, colorRepo, decision)
		if err != nil {
			return err
		}

		if err := s.insertVariant(ctx, variantRepo, productID, v, colorID, i); err != nil {
			return err
		}
	}
	return nil
}

// ReconcileOnUpdate replaces all of the product's variants with the submitted
// set. The previously attached color ids are captured before the delete; rows
// orphaned by the rewrite stay behind.
func (s *VariantReconciler) ReconcileOnUpdate(ctx context.Context, tx *gorm.DB, productID string, variants []VariantInput) error {
	colorRepo := repositories.NewColorRepository(tx)
	variantRepo := repositories.NewVariantRepository(tx)

	priorColorIDs, err := variantRepo.ColorIDs(ctx, productID)
	if err != nil {
		return err
	}
	log.Printf("VariantReconciler: product %s had %d color reference(s) before rewrite", productID, len(priorColorIDs))

	if err := variantRepo.DeleteByProduct(ctx, productID); err != nil {
		return err
	}

	for i, v := range variants {
		var byValue *models.Color
		var otherProducts int64

		imagesSupplied := v.ColorImages != nil && strings.TrimSpace(*v.ColorImages) != ""
		if v.ColorValue != "" && !imagesSupplied {
			byValue, err = colorRepo.FirstByValue(ctx, v.ColorValue)
			if err != nil {
				return err
			}
			if byValue != nil {
				otherProducts, err = variantRepo.CountOtherProducts(ctx, byValue.ID, productID)
				if err != nil {
					return err
				}
			}
		}

		decision := resolveColorOnUpdate(v, byValue, otherProducts)
		colorID, err := s.applyColorDecision(ctx, colorRepo, decision)
		if err != nil {
			return err
		}

		if err := s.insertVariant(ctx, variantRepo, productID, v, colorID, i); err != nil {
			return err
		}
	}
	return nil
}

func (s *VariantReconciler) applyColorDecision(ctx context.Context, colorRepo repositories.ColorRepositoryImpl, d colorDecision) (*string, error) {
	switch d.Kind {
	case colorNone:
		return nil, nil
	case colorReuse:
		id := d.ColorID
		return &id, nil
	case colorRename:
		if err := colorRepo.UpdateName(ctx, d.ColorID, d.Name); err != nil {
			return nil, err
		}
		id := d.ColorID
		return &id, nil
	case colorRefresh:
		if err := colorRepo.Update(ctx, d.ColorID, d.Name, d.Value, d.Images); err != nil {
			return nil, err
		}
		id := d.ColorID
		return &id, nil
	case colorFork:
		color := &models.Color{
			ID:     uuid.New().String(),
			Name:   d.Name,
			Value:  d.Value,
			Images: d.Images,
		}
		if err := colorRepo.Create(ctx, color); err != nil {
			return nil, err
		}
		return &color.ID, nil
	}
	return nil, nil
}

func (s *VariantReconciler) insertVariant(ctx context.Context, variantRepo repositories.VariantRepositoryImpl, productID string, v VariantInput, colorID *string, position int) error {
	return variantRepo.Create(ctx, &models.ProductVariant{
		ID:           uuid.New().String(),
		ProductID:    productID,
		Size:         v.Size,
		ColorID:      colorID,
		Stock:        v.Stock,
		DisplayOrder: position,
	})
}
