package model

import "time"

// DefaultQuantity is used whenever no quantity is known.
const DefaultQuantity = "1"

// PantryItem is one thing the user is tracking in their local pantry.
type PantryItem struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Quantity   string         `json:"quantity"`
	Category   ItemCategory   `json:"category"`
	ExpiryDate *time.Time     `json:"expiryDate,omitempty"`
	ImageRef   *string        `json:"imageReference,omitempty"`
	Barcode    *string        `json:"barcode,omitempty"`
	IsInList   bool           `json:"isInList"`
	Nutrition  *NutritionInfo `json:"nutrition,omitempty"`
}

// NutritionInfo is a per-100g nutrition summary. It is replaced wholesale, never merged.
type NutritionInfo struct {
	Calories    *string `json:"calories,omitempty"`
	Protein     *string `json:"protein,omitempty"`
	Carbs       *string `json:"carbs,omitempty"`
	Fat         *string `json:"fat,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Ingredients *string `json:"ingredients,omitempty"`
}

// CategoryGroup is a display partition of pantry items sharing one category.
type CategoryGroup struct {
	Category ItemCategory `json:"category"`
	Label    string       `json:"label"`
	Icon     string       `json:"icon"`
	Items    []PantryItem `json:"items"`
}
