package pantry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/store"
)

// Reconciler owns the locally persisted pantry. The whole sequence is stored as
// one JSON document and rewritten on every change.
//
// Add does not reject duplicate ids; Remove deletes every entry with the id.
type Reconciler struct {
	store store.Store

	mu     sync.Mutex
	items  []model.PantryItem
	loaded bool
}

// NewReconciler creates a reconciler over the given store.
func NewReconciler(s store.Store) *Reconciler {
	return &Reconciler{store: s}
}

// List returns a copy of the pantry in insertion order.
func (r *Reconciler) List(ctx context.Context) ([]model.PantryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return clone(r.items), nil
}

// Get returns the first item with the given id.
func (r *Reconciler) Get(ctx context.Context, id string) (model.PantryItem, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return model.PantryItem{}, false, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, true, nil
		}
	}
	return model.PantryItem{}, false, nil
}

// Save replaces the whole pantry.
func (r *Reconciler) Save(ctx context.Context, items []model.PantryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persist(ctx, clone(items))
}

// Add appends item to the end of the pantry.
func (r *Reconciler) Add(ctx context.Context, item model.PantryItem) error {
	return r.mutate(ctx, func(items []model.PantryItem) []model.PantryItem {
		return append(items, cloneItem(item))
	})
}

// Update replaces the first entry whose id matches. Unknown ids are a no-op.
func (r *Reconciler) Update(ctx context.Context, item model.PantryItem) error {
	return r.mutate(ctx, func(items []model.PantryItem) []model.PantryItem {
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = cloneItem(item)
				break
			}
		}
		return items
	})
}

// Remove deletes every entry whose id matches.
func (r *Reconciler) Remove(ctx context.Context, id string) error {
	return r.mutate(ctx, func(items []model.PantryItem) []model.PantryItem {
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		return kept
	})
}

// ToggleInList flips IsInList on the matching entry. Unknown ids are a no-op.
func (r *Reconciler) ToggleInList(ctx context.Context, id string) error {
	return r.updateWhere(ctx, id, func(item *model.PantryItem) {
		item.IsInList = !item.IsInList
	})
}

// SetInList sets IsInList on the matching entry. Unknown ids are a no-op.
func (r *Reconciler) SetInList(ctx context.Context, id string, inList bool) error {
	return r.updateWhere(ctx, id, func(item *model.PantryItem) {
		item.IsInList = inList
	})
}

// updateWhere applies fn to the first entry with id, like Update, under one lock.
func (r *Reconciler) updateWhere(ctx context.Context, id string, fn func(*model.PantryItem)) error {
	return r.mutate(ctx, func(items []model.PantryItem) []model.PantryItem {
		for i := range items {
			if items[i].ID == id {
				fn(&items[i])
				break
			}
		}
		return items
	})
}

// Clear empties the pantry.
func (r *Reconciler) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.persist(ctx, []model.PantryItem{})
}

func (r *Reconciler) mutate(ctx context.Context, fn func([]model.PantryItem) []model.PantryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(ctx); err != nil {
		return err
	}
	return r.persist(ctx, fn(clone(r.items)))
}

// load reads the pantry from storage once. A corrupt document is replaced by an
// empty pantry; only storage access failures are returned.
func (r *Reconciler) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	raw, ok, err := r.store.Get(ctx, store.KeyPantryItems)
	if err != nil {
		return fmt.Errorf("failed to load pantry: %w", err)
	}

	items := []model.PantryItem{}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			log.Printf("Warning: %v: %v. Starting with an empty pantry.", apperr.ErrStorageCorrupt, err)
			items = []model.PantryItem{}
		}
	}

	r.items = items
	r.loaded = true
	return nil
}

func (r *Reconciler) persist(ctx context.Context, items []model.PantryItem) error {
	if items == nil {
		items = []model.PantryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal pantry: %w", err)
	}
	if err := r.store.Put(ctx, store.KeyPantryItems, data); err != nil {
		return fmt.Errorf("failed to save pantry: %w", err)
	}
	r.items = items
	r.loaded = true
	return nil
}

func clone(items []model.PantryItem) []model.PantryItem {
	out := make([]model.PantryItem, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}

// cloneItem copies it so that no pointer field is shared with the original.
func cloneItem(it model.PantryItem) model.PantryItem {
	if it.ExpiryDate != nil {
		d := *it.ExpiryDate
		it.ExpiryDate = &d
	}
	it.ImageRef = cloneString(it.ImageRef)
	it.Barcode = cloneString(it.Barcode)
	if it.Nutrition != nil {
		n := *it.Nutrition
		n.Calories = cloneString(n.Calories)
		n.Protein = cloneString(n.Protein)
		n.Carbs = cloneString(n.Carbs)
		n.Fat = cloneString(n.Fat)
		n.Brand = cloneString(n.Brand)
		n.Ingredients = cloneString(n.Ingredients)
		it.Nutrition = &n
	}
	return it
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// GroupByCategory partitions items by category. Groups are ordered by label and
// items keep their relative order. The input is not modified.
func GroupByCategory(items []model.PantryItem) []model.CategoryGroup {
	index := make(map[model.ItemCategory]int)
	var groups []model.CategoryGroup
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, model.CategoryGroup{
				Category: it.Category,
				Label:    it.Category.Label(),
				Icon:     it.Category.Icon(),
			})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Label < groups[b].Label
	})
	return groups
}

// Filter returns the items whose name contains query (case-insensitive) and,
// when category is set, whose category matches.
func Filter(items []model.PantryItem, query string, category *model.ItemCategory) []model.PantryItem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.PantryItem, 0, len(items))
	for _, it := range items {
		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}
		if category != nil && it.Category != *category {
			continue
		}
		out = append(out, it)
	}
	return out
}
