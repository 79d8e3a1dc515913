package models

// NutritionFacts is the calorie/macro tuple shared by catalog entries and meal totals.
// Catalog values are per 100 g; meal totals are absolute.
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionTotal is the aggregate of a list of usage entries.
// Calories is a whole number, macros carry one decimal.
type NutritionTotal struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealIngredientUsage is one (ingredient, grams, cooking method) entry.
// A nil CookingMethodID means no multiplier.
type MealIngredientUsage struct {
	IngredientID    uint    `json:"ingredient_id"`
	Quantity        float64 `json:"quantity" binding:"gte=0"`
	CookingMethodID *uint   `json:"cooking_method_id,omitempty"`
}
