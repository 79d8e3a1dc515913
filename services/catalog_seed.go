package services

import "nutritrack/models"

// CatalogSeed is the raw reference data a CatalogService is built from.
// Pre-made meal totals in a seed are informational; the catalog derives its
// own totals from the ingredient lists.
type CatalogSeed struct {
	Ingredients    []models.Ingredient
	CookingMethods []models.CookingMethod
	PremadeMeals   []models.PremadeMeal
}

func methodID(id uint) *uint { return &id }

func ingredient(id uint, name, category string, cal, protein, carbs, fat float64) models.Ingredient {
	return models.Ingredient{
		ID:       id,
		Name:     name,
		Category: category,
		NutritionPerUnit: models.NutritionFacts{
			Calories: cal,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
		},
		Unit: "100g",
	}
}

// DefaultCatalogSeed returns the stock reference tables.
func DefaultCatalogSeed() CatalogSeed {
	return CatalogSeed{
		CookingMethods: []models.CookingMethod{
			{ID: 1, Name: "Raw", CalorieMultiplier: 1.0, Description: "Uncooked, natural state"},
			{ID: 2, Name: "Boiled", CalorieMultiplier: 0.95, Description: "Cooked in boiling water"},
			{ID: 3, Name: "Steamed", CalorieMultiplier: 0.98, Description: "Cooked with steam"},
			{ID: 4, Name: "Baked", CalorieMultiplier: 1.05, Description: "Cooked in an oven"},
			{ID: 5, Name: "Grilled", CalorieMultiplier: 1.02, Description: "Cooked over direct heat"},
			{ID: 6, Name: "Fried", CalorieMultiplier: 1.5, Description: "Cooked in oil"},
			{ID: 7, Name: "Roasted", CalorieMultiplier: 1.1, Description: "Cooked in an oven, typically with oil"},
			{ID: 8, Name: "Sautéed", CalorieMultiplier: 1.3, Description: "Cooked quickly in a small amount of oil"},
		},
		Ingredients: []models.Ingredient{
			ingredient(1, "Chicken Breast", "Protein", 165, 31, 0, 3.6),
			ingredient(2, "Brown Rice", "Grain", 112, 2.6, 23.5, 0.9),
			ingredient(3, "Broccoli", "Vegetable", 34, 2.8, 6.6, 0.4),
			ingredient(4, "Salmon", "Protein", 208, 20, 0, 13),
			ingredient(5, "Avocado", "Fruit", 160, 2, 8.5, 14.7),
			ingredient(6, "Eggs", "Protein", 155, 13, 1.1, 11),
			ingredient(7, "Spinach", "Vegetable", 23, 2.9, 3.6, 0.4),
			ingredient(8, "Sweet Potato", "Vegetable", 86, 1.6, 20.1, 0.1),
			ingredient(9, "Olive Oil", "Oil", 884, 0, 0, 100),
			ingredient(10, "Quinoa", "Grain", 120, 4.4, 21.3, 1.9),
			ingredient(11, "Tomato", "Vegetable", 18, 0.9, 3.9, 0.2),
			ingredient(12, "Beef (lean)", "Protein", 250, 26, 0, 17),
			ingredient(13, "Pasta", "Grain", 131, 5, 25, 1.1),
			ingredient(14, "Cheese (cheddar)", "Dairy", 402, 25, 1.3, 33),
			ingredient(15, "Pizza Dough", "Grain", 230, 8, 45, 2),
		},
		PremadeMeals: []models.PremadeMeal{
			{
				ID:       1,
				Name:     "Grilled Chicken with Brown Rice and Broccoli",
				Category: "Healthy",
				Ingredients: []models.MealIngredientUsage{
					{IngredientID: 1, Quantity: 150, CookingMethodID: methodID(5)},
					{IngredientID: 2, Quantity: 100, CookingMethodID: methodID(2)},
					{IngredientID: 3, Quantity: 100, CookingMethodID: methodID(3)},
				},
				TotalNutrition: models.NutritionTotal{Calories: 410, Protein: 51.8, Carbs: 30.1, Fat: 7.3},
			},
			{
				ID:       2,
				Name:     "Salmon with Sweet Potato",
				Category: "Healthy",
				Ingredients: []models.MealIngredientUsage{
					{IngredientID: 4, Quantity: 150, CookingMethodID: methodID(4)},
					{IngredientID: 8, Quantity: 200, CookingMethodID: methodID(4)},
					{IngredientID: 9, Quantity: 10},
				},
				TotalNutrition: models.NutritionTotal{Calories: 496, Protein: 30, Carbs: 40.2, Fat: 22.5},
			},
			{
				ID:       3,
				Name:     "Vegetable Omelette",
				Category: "Breakfast",
				Ingredients: []models.MealIngredientUsage{
					{IngredientID: 6, Quantity: 150, CookingMethodID: methodID(8)},
					{IngredientID: 7, Quantity: 50, CookingMethodID: methodID(8)},
					{IngredientID: 11, Quantity: 50, CookingMethodID: methodID(1)},
					{IngredientID: 9, Quantity: 10},
				},
				TotalNutrition: models.NutritionTotal{Calories: 358, Protein: 21.9, Carbs: 3.6, Fat: 27},
			},
			{
				ID:       4,
				Name:     "Beef Pasta",
				Category: "Dinner",
				Ingredients: []models.MealIngredientUsage{
					{IngredientID: 12, Quantity: 120, CookingMethodID: methodID(8)},
					{IngredientID: 13, Quantity: 150, CookingMethodID: methodID(2)},
					{IngredientID: 11, Quantity: 80, CookingMethodID: methodID(8)},
					{IngredientID: 9, Quantity: 15},
				},
				TotalNutrition: models.NutritionTotal{Calories: 584, Protein: 45.5, Carbs: 39.6, Fat: 25.1},
			},
			{
				ID:       5,
				Name:     "Cheese Pizza",
				Category: "Fast Food",
				Ingredients: []models.MealIngredientUsage{
					{IngredientID: 15, Quantity: 200, CookingMethodID: methodID(4)},
					{IngredientID: 14, Quantity: 100, CookingMethodID: methodID(4)},
					{IngredientID: 11, Quantity: 50, CookingMethodID: methodID(4)},
				},
				TotalNutrition: models.NutritionTotal{Calories: 871, Protein: 41.9, Carbs: 93.9, Fat: 36.1},
			},
		},
	}
}
