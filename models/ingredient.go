package models

// Ingredient is a catalog entry; NutritionPerUnit is always per 100 g,
// Unit is display only.
type Ingredient struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	Category         string         `json:"category"`
	NutritionPerUnit NutritionFacts `json:"nutrition_per_unit"`
	Unit             string         `json:"unit"`
}

// CookingMethod scales the calorie component only.
type CookingMethod struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	CalorieMultiplier float64 `json:"calorie_multiplier"`
	Description       string  `json:"description"`
}

type PremadeMeal struct {
	ID             uint                  `json:"id"`
	Name           string                `json:"name"`
	Category       string                `json:"category"`
	Ingredients    []MealIngredientUsage `json:"ingredients"`
	TotalNutrition NutritionTotal        `json:"total_nutrition"`
}
