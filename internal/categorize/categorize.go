package categorize

import (
	"sort"
	"strings"

	"pantry-sync-backend/internal/model"
)

// rule maps a category to the substrings that select it. Rules are tried in order.
type rule struct {
	category model.ItemCategory
	keywords []string
}

// taxonomyRules classify OpenFoodFacts category strings ("en:dairies, en:milks, ...").
var taxonomyRules = []rule{
	{model.CategoryProduce, []string{"fruit", "vegetable"}},
	{model.CategoryDairy, []string{"dairy", "milk", "cheese", "yogurt", "butter"}},
	{model.CategoryMeat, []string{"meat", "fish", "poultry"}},
	{model.CategoryBeverages, []string{"beverage", "drink"}},
	{model.CategoryBakery, []string{"bakery", "bread"}},
	{model.CategorySnacks, []string{"snack"}},
	{model.CategoryFrozen, []string{"frozen"}},
}

// labelRules classify a single scanned grocery name such as "Chicken Breast".
var labelRules = []rule{
	{model.CategoryDairy, []string{"milk", "cheese", "yogurt", "butter"}},
	{model.CategoryProduce, []string{"apple", "banana", "orange", "lettuce", "tomato", "carrot"}},
	{model.CategoryMeat, []string{"chicken", "beef", "pork", "fish"}},
	{model.CategoryBakery, []string{"bread", "bagel"}},
	{model.CategoryFrozen, []string{"ice cream", "frozen"}},
	{model.CategoryBeverages, []string{"juice", "soda", "water", "coffee"}},
	{model.CategorySnacks, []string{"chips", "cookies", "crackers"}},
	{model.CategoryPantry, []string{"rice", "pasta", "flour", "sugar"}},
}

// foodKeywords is the vocabulary recognized in raw OCR text.
var foodKeywords = []string{
	"milk", "eggs", "bread", "cheese", "butter", "yogurt",
	"chicken", "beef", "pork", "fish", "salmon", "turkey",
	"apple", "banana", "orange", "lettuce", "tomato", "carrot",
	"potato", "onion", "garlic", "pepper", "broccoli", "spinach",
	"rice", "pasta", "flour", "sugar", "salt", "oil",
	"juice", "soda", "water", "coffee", "tea",
	"cereal", "oatmeal", "crackers", "chips", "cookies",
}

func match(rules []rule, text string) (model.ItemCategory, bool) {
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.category, true
			}
		}
	}
	return "", false
}

// Categorize maps a free-text category taxonomy to a pantry category.
// No text yields OTHER; text that matches nothing yields PANTRY.
func Categorize(raw *string) model.ItemCategory {
	if raw == nil || *raw == "" {
		return model.CategoryOther
	}
	if c, ok := match(taxonomyRules, strings.ToLower(*raw)); ok {
		return c
	}
	return model.CategoryPantry
}

// SuggestFromLabel guesses a category from a plain item name, defaulting to OTHER.
func SuggestFromLabel(name string) model.ItemCategory {
	if c, ok := match(labelRules, strings.ToLower(name)); ok {
		return c
	}
	return model.CategoryOther
}

// FilterFoodLabels picks the known food words out of recognized text lines.
// The result is title-cased, de-duplicated and sorted.
func FilterFoodLabels(texts []string) []string {
	seen := make(map[string]struct{})
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, kw := range foodKeywords {
			if strings.Contains(lower, kw) {
				seen[titleCase(kw)] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
