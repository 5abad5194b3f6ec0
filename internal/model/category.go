package model

import (
	"encoding/json"
	"strings"
)

// ItemCategory is one of the fixed pantry categories.
type ItemCategory string

const (
	CategoryProduce   ItemCategory = "PRODUCE"
	CategoryDairy     ItemCategory = "DAIRY"
	CategoryMeat      ItemCategory = "MEAT"
	CategoryPantry    ItemCategory = "PANTRY"
	CategoryFrozen    ItemCategory = "FROZEN"
	CategoryBeverages ItemCategory = "BEVERAGES"
	CategoryBakery    ItemCategory = "BAKERY"
	CategorySnacks    ItemCategory = "SNACKS"
	CategoryOther     ItemCategory = "OTHER"
)

type categoryMeta struct {
	label string
	icon  string
}

var categoryTable = map[ItemCategory]categoryMeta{
	CategoryProduce:   {"Produce", "🥕"},
	CategoryDairy:     {"Dairy", "🥛"},
	CategoryMeat:      {"Meat & Seafood", "🥩"},
	CategoryPantry:    {"Pantry", "🥫"},
	CategoryFrozen:    {"Frozen", "🧊"},
	CategoryBeverages: {"Beverages", "🥤"},
	CategoryBakery:    {"Bakery", "🥖"},
	CategorySnacks:    {"Snacks", "🍿"},
	CategoryOther:     {"Other", "📦"},
}

// Categories returns every category in declaration order.
func Categories() []ItemCategory {
	return []ItemCategory{
		CategoryProduce, CategoryDairy, CategoryMeat, CategoryPantry, CategoryFrozen,
		CategoryBeverages, CategoryBakery, CategorySnacks, CategoryOther,
	}
}

// ParseCategory resolves a category by name or display label, case-insensitively.
// Unknown input yields OTHER and false.
func ParseCategory(s string) (ItemCategory, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, categoryTable[c].label) {
			return c, true
		}
	}
	return CategoryOther, false
}

// Valid reports whether c is a member of the enumeration.
func (c ItemCategory) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Label is the human readable name, e.g. "Meat & Seafood".
func (c ItemCategory) Label() string {
	if m, ok := categoryTable[c]; ok {
		return m.label
	}
	return categoryTable[CategoryOther].label
}

// Icon is the emoji glyph shown next to the label.
func (c ItemCategory) Icon() string {
	if m, ok := categoryTable[c]; ok {
		return m.icon
	}
	return categoryTable[CategoryOther].icon
}

// UnmarshalJSON never produces a value outside the enumeration.
func (c *ItemCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c, _ = ParseCategory(s)
	return nil
}
