package normalize

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
)

func strPtr(s string) *string { return &s }
func f64Ptr(f float64) *float64 { return &f }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestFromProduct_Defaults(t *testing.T) {
	n := NewWithIDs(sequentialIDs())

	item, err := n.FromProduct(&model.ExternalProduct{Code: "999"}, "5000112548167")
	require.NoError(t, err)

	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, "Unknown Product", item.Name)
	assert.Equal(t, "1", item.Quantity)
	assert.Equal(t, model.CategoryOther, item.Category)
	assert.Nil(t, item.Nutrition)
	assert.Nil(t, item.ImageRef)
	assert.Nil(t, item.ExpiryDate)
	assert.False(t, item.IsInList)
	require.NotNil(t, item.Barcode)
	assert.Equal(t, "5000112548167", *item.Barcode, "the lookup barcode wins over product.code")
}

func TestFromProduct_Fields(t *testing.T) {
	n := NewWithIDs(sequentialIDs())
	product := &model.ExternalProduct{
		Code:          "3017620422003",
		ProductName:   strPtr("Nutella"),
		Brands:        strPtr("Ferrero"),
		Categories:    strPtr("Spreads, Sweet spreads, Cocoa and hazelnuts spreads"),
		ImageURL:      strPtr("https://img/generic.jpg"),
		ImageFrontURL: strPtr("https://img/front.jpg"),
		Quantity:      strPtr("400 g"),
		Nutriments: &model.Nutriments{
			EnergyKcal100g:    f64Ptr(539),
			Proteins100g:      f64Ptr(6.3),
			Carbohydrates100g: f64Ptr(57.5),
			Fat100g:           f64Ptr(30.9),
		},
		IngredientsText: strPtr("Sugar, palm oil, hazelnuts"),
	}

	item, err := n.FromProduct(product, "3017620422003")
	require.NoError(t, err)

	assert.Equal(t, "Nutella", item.Name)
	assert.Equal(t, "400 g", item.Quantity)
	assert.Equal(t, model.CategoryPantry, item.Category)
	assert.Equal(t, "https://img/front.jpg", *item.ImageRef)
	require.NotNil(t, item.Nutrition)
	assert.Equal(t, "539 kcal", *item.Nutrition.Calories)
	assert.Equal(t, "6.3 g", *item.Nutrition.Protein)
	assert.Equal(t, "57.5 g", *item.Nutrition.Carbs)
	assert.Equal(t, "30.9 g", *item.Nutrition.Fat)
	assert.Equal(t, "Ferrero", *item.Nutrition.Brand)
	assert.Nil(t, item.Nutrition.Ingredients, "ingredients are never carried into the summary")
}

func TestFromProduct_GenericImageFallback(t *testing.T) {
	item, err := New().FromProduct(&model.ExternalProduct{ImageURL: strPtr("https://img/generic.jpg")}, "1")
	require.NoError(t, err)
	assert.Equal(t, "https://img/generic.jpg", *item.ImageRef)
	assert.NotEmpty(t, item.ID)
}

func TestFromProduct_NilIsNotFound(t *testing.T) {
	_, err := New().FromProduct(nil, "123")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.True(t, errors.Is(err, apperr.ErrProductNotFound))
}

func TestNutritionFrom_PartialValues(t *testing.T) {
	info := NutritionFrom(&model.Nutriments{EnergyKcal100g: f64Ptr(52.4), Proteins100g: f64Ptr(0.3)}, nil)
	require.NotNil(t, info)
	assert.Equal(t, "52 kcal", *info.Calories)
	assert.Equal(t, "0.3 g", *info.Protein)
	assert.Nil(t, info.Carbs)
	assert.Nil(t, info.Fat)
	assert.Nil(t, info.Brand)
	assert.Nil(t, NutritionFrom(nil, nil))
}

func TestNutritionFrom_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		name    string
		in      *model.Nutriments
		kcal    string
		protein string
	}{
		{"half kcal", &model.Nutriments{EnergyKcal100g: f64Ptr(52.5), Proteins100g: f64Ptr(6.25)}, "53 kcal", "6.3 g"},
		{"even half", &model.Nutriments{EnergyKcal100g: f64Ptr(0.5), Proteins100g: f64Ptr(0.05)}, "1 kcal", "0.1 g"},
		{"below half", &model.Nutriments{EnergyKcal100g: f64Ptr(52.49), Proteins100g: f64Ptr(6.24)}, "52 kcal", "6.2 g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NutritionFrom(tt.in, nil)
			require.NotNil(t, info)
			assert.Equal(t, tt.kcal, *info.Calories)
			assert.Equal(t, tt.protein, *info.Protein)
		})
	}
}

func TestNutritionFrom_CopiesBrand(t *testing.T) {
	brand := "Ferrero"
	info := NutritionFrom(&model.Nutriments{}, &brand)
	brand = "Other"
	require.NotNil(t, info.Brand)
	assert.Equal(t, "Ferrero", *info.Brand)
}

func TestFromLabel(t *testing.T) {
	n := NewWithIDs(sequentialIDs())
	img := strPtr("photo:abc")

	item := n.FromLabel("Chicken Breast", f64Ptr(0.92), img)

	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, "Chicken Breast", item.Name)
	assert.Equal(t, "1", item.Quantity)
	assert.Equal(t, model.CategoryMeat, item.Category)
	assert.Equal(t, img, item.ImageRef)
	assert.Nil(t, item.Nutrition)
	assert.Nil(t, item.Barcode)
}

func TestFromScan(t *testing.T) {
	n := NewWithIDs(sequentialIDs())
	result := model.ScanResult{
		Detections: []model.Detection{{Label: "Milk"}, {Label: ""}, {Label: "Gadget", Confidence: f64Ptr(0.1)}},
		ImageRef:   strPtr("photo:1"),
	}

	items := n.FromScan(result)

	require.Len(t, items, 2)
	assert.Equal(t, model.CategoryDairy, items[0].Category)
	assert.Equal(t, model.CategoryOther, items[1].Category)
	assert.Equal(t, "photo:1", *items[1].ImageRef)
	assert.Empty(t, n.FromScan(model.ScanResult{}))
}
