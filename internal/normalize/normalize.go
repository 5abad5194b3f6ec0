package normalize

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/categorize"
	"pantry-sync-backend/internal/model"
)

// UnknownProductName is used when the product database has no name.
const UnknownProductName = "Unknown Product"

// Normalizer turns oracle results into pantry items.
type Normalizer struct {
	newID func() string
}

// New creates a Normalizer that assigns random UUIDs.
func New() *Normalizer {
	return &Normalizer{newID: func() string { return uuid.NewString() }}
}

// NewWithIDs creates a Normalizer with a custom id generator.
func NewWithIDs(newID func() string) *Normalizer {
	return &Normalizer{newID: newID}
}

// FromProduct normalizes a product found by barcode lookup. The barcode used for
// the lookup is kept, not product.Code. Only a nil product is an error.
func (n *Normalizer) FromProduct(product *model.ExternalProduct, sourceBarcode string) (model.PantryItem, error) {
	if product == nil {
		return model.PantryItem{}, fmt.Errorf("barcode %s: %w", sourceBarcode, apperr.ErrProductNotFound)
	}

	barcode := sourceBarcode
	item := model.PantryItem{
		ID:       n.newID(),
		Name:     orDefault(product.ProductName, UnknownProductName),
		Quantity: orDefault(product.Quantity, model.DefaultQuantity),
		Category: categorize.Categorize(product.Categories),
		ImageRef: firstPresent(product.ImageFrontURL, product.ImageURL),
		Barcode:  &barcode,
	}
	if product.Nutriments != nil {
		item.Nutrition = NutritionFrom(product.Nutriments, product.Brands)
	}
	return item, nil
}

// FromLabel normalizes a camera scan candidate that carries no barcode.
// confidence is accepted for callers that rank candidates; it does not affect the item.
func (n *Normalizer) FromLabel(label string, confidence *float64, imageRef *string) model.PantryItem {
	return model.PantryItem{
		ID:       n.newID(),
		Name:     label,
		Quantity: model.DefaultQuantity,
		Category: categorize.SuggestFromLabel(label),
		ImageRef: imageRef,
	}
}

// FromScan normalizes every detection of one capture, in detection order.
// Detections with an empty label are skipped.
func (n *Normalizer) FromScan(result model.ScanResult) []model.PantryItem {
	items := make([]model.PantryItem, 0, len(result.Detections))
	for _, d := range result.Detections {
		if d.Label == "" {
			continue
		}
		items = append(items, n.FromLabel(d.Label, d.Confidence, result.ImageRef))
	}
	return items
}

// NutritionFrom builds a nutrition summary. Ingredients are intentionally left empty.
func NutritionFrom(n *model.Nutriments, brand *string) *model.NutritionInfo {
	if n == nil {
		return nil
	}
	return &model.NutritionInfo{
		Calories: format(n.EnergyKcal100g, 0, "kcal"),
		Protein:  format(n.Proteins100g, 1, "g"),
		Carbs:    format(n.Carbohydrates100g, 1, "g"),
		Fat:      format(n.Fat100g, 1, "g"),
		Brand:    firstPresent(brand),
	}
}

// format rounds half away from zero, so 52.5 kcal reads "53 kcal".
func format(v *float64, decimals int, unit string) *string {
	if v == nil {
		return nil
	}
	p := math.Pow10(decimals)
	s := fmt.Sprintf("%.*f %s", decimals, math.Round(*v*p)/p, unit)
	return &s
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func firstPresent(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil && *c != "" {
			v := *c
			return &v
		}
	}
	return nil
}
