package openfoodfacts

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/normalize"
)

type fakeFinder struct {
	products map[string]*model.ExternalProduct
	page     *SearchPage
	calls    int
}

func (f *fakeFinder) GetProduct(ctx context.Context, barcode string) (*model.ExternalProduct, error) {
	f.calls++
	p, ok := f.products[barcode]
	if !ok {
		return nil, fmt.Errorf("barcode %s: %w", barcode, apperr.ErrNotFound)
	}
	return p, nil
}

func (f *fakeFinder) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	return []byte("image:" + imageURL), nil
}

func (f *fakeFinder) Search(ctx context.Context, query string, page int) (*SearchPage, error) {
	return f.page, nil
}

func strPtr(s string) *string { return &s }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestLookup_Preview(t *testing.T) {
	kcal := 42.0
	finder := &fakeFinder{products: map[string]*model.ExternalProduct{
		"5449000000996": {
			Code:        "05449000000996",
			ProductName: strPtr("Coca-Cola"),
			Categories:  strPtr("Beverages, Sodas"),
			Brands:      strPtr("Coca-Cola"),
			Nutriments:  &model.Nutriments{EnergyKcal100g: &kcal},
		},
	}}
	lookup := NewLookup(finder, normalize.NewWithIDs(sequentialIDs()), time.Minute)

	item, err := lookup.Preview(context.Background(), "5449000000996")
	require.NoError(t, err)
	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, model.CategoryBeverages, item.Category)
	require.NotNil(t, item.Barcode)
	assert.Equal(t, "5449000000996", *item.Barcode)

	info, err := lookup.Nutrition(context.Background(), "5449000000996")
	require.NoError(t, err)
	require.NotNil(t, info.Calories)
	assert.Equal(t, "42 kcal", *info.Calories)
	assert.Nil(t, info.Ingredients)

	_, err = lookup.Preview(context.Background(), "00000000")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLookup_Image(t *testing.T) {
	finder := &fakeFinder{products: map[string]*model.ExternalProduct{
		"11111111": {ImageURL: strPtr("https://img.example/main.jpg"), ImageFrontURL: strPtr("https://img.example/front.jpg")},
		"22222222": {ImageURL: strPtr("https://img.example/main.jpg")},
		"33333333": {},
	}}
	lookup := NewLookup(finder, normalize.New(), time.Minute)
	ctx := context.Background()

	data, err := lookup.Image(ctx, "11111111")
	require.NoError(t, err)
	assert.Equal(t, "image:https://img.example/front.jpg", string(data))

	data, err = lookup.Image(ctx, "22222222")
	require.NoError(t, err)
	assert.Equal(t, "image:https://img.example/main.jpg", string(data))

	_, err = lookup.Image(ctx, "33333333")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLookup_Search(t *testing.T) {
	finder := &fakeFinder{page: &SearchPage{Products: []model.ExternalProduct{
		{Code: "111", ProductName: strPtr("Whole Milk"), Categories: strPtr("Dairies, Milks")},
		{ProductName: strPtr("Loose Apples")},
	}}}
	lookup := NewLookup(finder, normalize.NewWithIDs(sequentialIDs()), time.Minute)

	items, err := lookup.Search(context.Background(), "milk", 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Whole Milk", items[0].Name)
	assert.Equal(t, model.CategoryDairy, items[0].Category)
	assert.Equal(t, "111", *items[0].Barcode)
	assert.Nil(t, items[1].Barcode)
	assert.Equal(t, model.CategoryOther, items[1].Category)
}

func TestLookup_CachesProductNotPreview(t *testing.T) {
	finder := &fakeFinder{products: map[string]*model.ExternalProduct{
		"5449000000996": {ProductName: strPtr("Coca-Cola"), Brands: strPtr("Coca-Cola")},
	}}
	lookup := NewLookup(finder, normalize.NewWithIDs(sequentialIDs()), time.Minute)
	ctx := context.Background()

	first, err := lookup.Preview(ctx, "5449000000996")
	require.NoError(t, err)
	second, err := lookup.Preview(ctx, " 5449000000996 ")
	require.NoError(t, err)
	_, err = lookup.Nutrition(ctx, "5449000000996")
	require.NoError(t, err)

	assert.Equal(t, 1, finder.calls)
	assert.Equal(t, "id-1", first.ID)
	assert.Equal(t, "id-2", second.ID)

	// misses are not cached
	for i := 0; i < 2; i++ {
		_, err = lookup.Preview(ctx, "00000000")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	}
	assert.Equal(t, 3, finder.calls)
}

func TestLookup_ZeroTTLDisablesCache(t *testing.T) {
	finder := &fakeFinder{products: map[string]*model.ExternalProduct{
		"5449000000996": {ProductName: strPtr("Coca-Cola")},
	}}
	lookup := NewLookup(finder, normalize.New(), 0)

	for i := 0; i < 2; i++ {
		_, err := lookup.Preview(context.Background(), "5449000000996")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, finder.calls)
}
