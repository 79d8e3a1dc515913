package models

import (
	"time"

	"gorm.io/datatypes"
)

// MealIngredientLine is the display snapshot of one ingredient of a logged meal.
type MealIngredientLine struct {
	Name          string `json:"name"`
	Quantity      string `json:"quantity"` // e.g. "150g", "1 slice"
	Calories      int    `json:"calories"`
	CookingMethod string `json:"cooking_method,omitempty"`
}

// UserMeal is one logged meal. TotalNutrition is computed once when the meal
// is created and stored as-is afterwards.
type UserMeal struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Name     string `gorm:"not null" json:"name"`
	MealType string `gorm:"size:32" json:"meal_type"` // "Breakfast"|"Lunch"|…
	Time     string `gorm:"size:16" json:"time"`
	Date     string `gorm:"size:10;index" json:"date"` // YYYY-MM-DD

	Ingredients    datatypes.JSONSlice[MealIngredientLine] `json:"ingredients"`
	TotalNutrition NutritionTotal                          `gorm:"embedded;embeddedPrefix:total_" json:"total_nutrition"`
	PhotoURL       string                                  `json:"photo_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
