package model

// ExternalProduct is a product record as returned by OpenFoodFacts.
type ExternalProduct struct {
	Code                string      `json:"code"`
	ProductName         *string     `json:"product_name"`
	Brands              *string     `json:"brands"`
	Categories          *string     `json:"categories"`
	ImageURL            *string     `json:"image_url"`
	ImageFrontURL       *string     `json:"image_front_url"`
	ImageIngredientsURL *string     `json:"image_ingredients_url"`
	ImageNutritionURL   *string     `json:"image_nutrition_url"`
	Quantity            *string     `json:"quantity"`
	ServingSize         *string     `json:"serving_size"`
	IngredientsText     *string     `json:"ingredients_text"`
	Allergens           *string     `json:"allergens"`
	Traces              *string     `json:"traces"`
	Labels              *string     `json:"labels"`
	Stores              *string     `json:"stores"`
	Countries           *string     `json:"countries"`
	ManufacturingPlaces *string     `json:"manufacturing_places"`
	Nutriments          *Nutriments `json:"nutriments"`
	NutriscoreGrade     *string     `json:"nutriscore_grade"`
	NovaGroup           *int        `json:"nova_group"`
	EcoscoreGrade       *string     `json:"ecoscore_grade"`
}

// Nutriments holds per-100g nutrition values.
type Nutriments struct {
	EnergyKcal100g    *float64 `json:"energy-kcal_100g"`
	Energy100g        *float64 `json:"energy_100g"`
	Fat100g           *float64 `json:"fat_100g"`
	SaturatedFat100g  *float64 `json:"saturated-fat_100g"`
	Carbohydrates100g *float64 `json:"carbohydrates_100g"`
	Sugars100g        *float64 `json:"sugars_100g"`
	Fiber100g         *float64 `json:"fiber_100g"`
	Proteins100g      *float64 `json:"proteins_100g"`
	Salt100g          *float64 `json:"salt_100g"`
	Sodium100g        *float64 `json:"sodium_100g"`
}
