package skylight

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
)

// ListFetcher is the subset of Client used by ListCache.
type ListFetcher interface {
	FetchLists(ctx context.Context, creds model.Credentials) ([]model.ShoppingList, error)
	FetchListDetail(ctx context.Context, creds model.Credentials, listID string) (model.ListDetail, error)
}

// ListCache holds the last fetched copy of each list between sync points.
// Local edits are applied to the cached copy only and are lost on the next Refresh.
type ListCache struct {
	fetcher ListFetcher
	lists   *cache.Cache
	newID   func() string

	mu     sync.Mutex
	active string
}

// NewListCache creates a cache whose entries expire after ttl.
func NewListCache(fetcher ListFetcher, ttl time.Duration) *ListCache {
	return &ListCache{
		fetcher: fetcher,
		lists:   cache.New(ttl, 2*ttl),
		newID:   func() string { return uuid.NewString() },
	}
}

// Lists fetches the list index. The first default grocery list becomes the
// active list if none is set yet.
func (lc *ListCache) Lists(ctx context.Context, creds model.Credentials) ([]model.ShoppingList, error) {
	lists, err := lc.fetcher.FetchLists(ctx, creds)
	if err != nil {
		return nil, err
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if lc.active == "" {
		for _, l := range lists {
			if l.Attributes.DefaultGroceryList != nil && *l.Attributes.DefaultGroceryList {
				lc.active = l.ID
				break
			}
		}
	}
	return lists, nil
}

// Refresh replaces the cached copy of a list with the remote one and makes it active.
func (lc *ListCache) Refresh(ctx context.Context, creds model.Credentials, listID string) (model.ListDetail, error) {
	detail, err := lc.fetcher.FetchListDetail(ctx, creds, listID)
	if err != nil {
		return model.ListDetail{}, err
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if previous, ok := lc.get(listID); ok {
		if n := countUnsynced(previous.Items); n > 0 {
			log.Printf("skylight: refresh of list %s discards %d unsynced local items", listID, n)
		}
	}
	lc.lists.SetDefault(listID, cloneDetail(detail))
	lc.active = listID
	return detail, nil
}

// Get returns the cached copy of a list.
func (lc *ListCache) Get(listID string) (model.ListDetail, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	detail, ok := lc.get(listID)
	if !ok {
		return model.ListDetail{}, false
	}
	return cloneDetail(detail), true
}

// Active returns the list new items are pushed to.
func (lc *ListCache) Active() (string, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.active, lc.active != ""
}

// AppendLocal adds a pending item with a temporary id at the end of a cached list.
func (lc *ListCache) AppendLocal(listID, label string, section *string) (model.ListItem, error) {
	if label == "" {
		return model.ListItem{}, fmt.Errorf("empty label: %w", apperr.ErrInvalidInput)
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	detail, ok := lc.get(listID)
	if !ok {
		return model.ListItem{}, fmt.Errorf("list %s not cached: %w", listID, apperr.ErrNotFound)
	}

	position := len(detail.Items)
	createdAt := time.Now().UTC().Format(time.RFC3339)
	item := model.ListItem{
		Type: "list_item",
		ID:   model.TempIDPrefix + lc.newID(),
		Attributes: model.ListItemAttributes{
			Label:     label,
			Status:    model.StatusPending,
			Section:   section,
			Position:  &position,
			CreatedAt: &createdAt,
		},
	}
	detail.Items = append(detail.Items, item)
	lc.lists.SetDefault(listID, detail)
	return item, nil
}

// ToggleStatus flips an item between pending and completed in the cached list.
func (lc *ListCache) ToggleStatus(listID, itemID string) (model.ListItem, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	detail, ok := lc.get(listID)
	if !ok {
		return model.ListItem{}, fmt.Errorf("list %s not cached: %w", listID, apperr.ErrNotFound)
	}

	for i := range detail.Items {
		if detail.Items[i].ID != itemID {
			continue
		}
		if detail.Items[i].IsCompleted() {
			detail.Items[i].Attributes.Status = model.StatusPending
		} else {
			detail.Items[i].Attributes.Status = model.StatusCompleted
		}
		lc.lists.SetDefault(listID, detail)
		return detail.Items[i], nil
	}
	return model.ListItem{}, fmt.Errorf("list item %s: %w", itemID, apperr.ErrNotFound)
}

// get returns a private copy of the cached detail. Callers hold mu.
func (lc *ListCache) get(listID string) (model.ListDetail, bool) {
	v, ok := lc.lists.Get(listID)
	if !ok {
		return model.ListDetail{}, false
	}
	return cloneDetail(v.(model.ListDetail)), true
}

func cloneDetail(d model.ListDetail) model.ListDetail {
	items := make([]model.ListItem, len(d.Items))
	copy(items, d.Items)
	d.Items = items
	return d
}

func countUnsynced(items []model.ListItem) int {
	n := 0
	for _, it := range items {
		if it.IsUnsynced() {
			n++
		}
	}
	return n
}
