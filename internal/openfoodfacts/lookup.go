package openfoodfacts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/normalize"
)

// ProductFinder is the subset of Client used by Lookup.
type ProductFinder interface {
	GetProduct(ctx context.Context, barcode string) (*model.ExternalProduct, error)
	Search(ctx context.Context, query string, page int) (*SearchPage, error)
	DownloadImage(ctx context.Context, imageURL string) ([]byte, error)
}

// Lookup turns product database results into pantry item previews.
// Nothing is persisted here; the caller adds a preview to the pantry once confirmed.
// Upstream products are cached by barcode, but every preview is normalized anew
// so each one gets its own id.
type Lookup struct {
	finder     ProductFinder
	normalizer *normalize.Normalizer
	products   *cache.Cache
}

// NewLookup creates a Lookup that keeps found products for ttl. A ttl of zero
// disables the product cache.
func NewLookup(finder ProductFinder, normalizer *normalize.Normalizer, ttl time.Duration) *Lookup {
	l := &Lookup{finder: finder, normalizer: normalizer}
	if ttl > 0 {
		l.products = cache.New(ttl, 2*ttl)
	}
	return l
}

// product returns the upstream record for barcode, from cache when possible.
// Only found products are cached.
func (l *Lookup) product(ctx context.Context, barcode string) (*model.ExternalProduct, error) {
	key := strings.TrimSpace(barcode)
	if l.products != nil {
		if v, found := l.products.Get(key); found {
			return v.(*model.ExternalProduct), nil
		}
	}

	product, err := l.finder.GetProduct(ctx, key)
	if err != nil {
		return nil, err
	}
	if l.products != nil {
		l.products.SetDefault(key, product)
	}
	return product, nil
}

// Preview looks up a barcode and returns the normalized item.
func (l *Lookup) Preview(ctx context.Context, barcode string) (model.PantryItem, error) {
	product, err := l.product(ctx, barcode)
	if err != nil {
		return model.PantryItem{}, err
	}
	return l.normalizer.FromProduct(product, strings.TrimSpace(barcode))
}

// Nutrition returns the nutrition summary for a barcode, or nil if the product has none.
func (l *Lookup) Nutrition(ctx context.Context, barcode string) (*model.NutritionInfo, error) {
	product, err := l.product(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return normalize.NutritionFrom(product.Nutriments, product.Brands), nil
}

// Search returns normalized previews for one page of search results. Each preview
// carries the product's own code as its barcode.
func (l *Lookup) Search(ctx context.Context, query string, page int) ([]model.PantryItem, error) {
	result, err := l.finder.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}

	items := make([]model.PantryItem, 0, len(result.Products))
	for i := range result.Products {
		p := &result.Products[i]
		item, err := l.normalizer.FromProduct(p, p.Code)
		if err != nil {
			continue
		}
		if p.Code == "" {
			item.Barcode = nil
		}
		items = append(items, item)
	}
	return items, nil
}

// Image downloads the front image of a product, falling back to its main image.
func (l *Lookup) Image(ctx context.Context, barcode string) ([]byte, error) {
	product, err := l.product(ctx, barcode)
	if err != nil {
		return nil, err
	}
	for _, u := range []*string{product.ImageFrontURL, product.ImageURL} {
		if u != nil && *u != "" {
			return l.finder.DownloadImage(ctx, *u)
		}
	}
	return nil, fmt.Errorf("barcode %s has no image: %w", barcode, apperr.ErrNotFound)
}
