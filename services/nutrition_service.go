package services

import (
	"nutritrack/models"
	"nutritrack/utils"
)

// NutritionLookup resolves the catalog references of usage entries.
type NutritionLookup interface {
	FindIngredient(id uint) (models.Ingredient, bool)
	FindCookingMethod(id uint) (models.CookingMethod, bool)
}

// NutritionLine is the unrounded contribution of one resolved usage entry.
type NutritionLine struct {
	Usage         models.MealIngredientUsage `json:"usage"`
	Ingredient    models.Ingredient          `json:"ingredient"`
	CookingMethod *models.CookingMethod      `json:"cooking_method,omitempty"`
	Calories      float64                    `json:"calories"`
	Protein       float64                    `json:"protein"`
	Carbs         float64                    `json:"carbs"`
	Fat           float64                    `json:"fat"`
}

type NutritionBreakdown struct {
	Total models.NutritionTotal `json:"total"`
	Lines []NutritionLine       `json:"lines"`
	// Ingredient ids that did not resolve and were left out of Total.
	Unresolved []uint `json:"unresolved_ingredient_ids"`
}

// AggregateNutrition reduces usage entries to a single total.
//
// Catalog values are per 100 g. The cooking-method multiplier applies to
// calories only. Entries whose ingredient id does not resolve are skipped
// without error and contribute nothing; an unknown cooking method id counts
// as multiplier 1. Calories are rounded to a whole number and macros to one
// decimal only after all entries are summed.
func AggregateNutrition(lookup NutritionLookup, usages []models.MealIngredientUsage) models.NutritionTotal {
	return AggregateNutritionDetailed(lookup, usages).Total
}

// AggregateNutritionDetailed is AggregateNutrition plus the per-entry lines
// and the ids that were skipped. Total is identical to AggregateNutrition.
func AggregateNutritionDetailed(lookup NutritionLookup, usages []models.MealIngredientUsage) NutritionBreakdown {
	var out NutritionBreakdown
	var cals, protein, carbs, fat float64
	out.Lines = make([]NutritionLine, 0, len(usages))
	out.Unresolved = []uint{}

	for _, u := range usages {
		ing, ok := lookup.FindIngredient(u.IngredientID)
		if !ok {
			out.Unresolved = append(out.Unresolved, u.IngredientID)
			continue
		}

		line := NutritionLine{Usage: u, Ingredient: ing}
		multiplier := 1.0
		if u.CookingMethodID != nil {
			if m, ok := lookup.FindCookingMethod(*u.CookingMethodID); ok {
				multiplier = m.CalorieMultiplier
				line.CookingMethod = &m
			}
		}

		quantityFactor := u.Quantity / 100.0
		per := ing.NutritionPerUnit
		line.Calories = per.Calories * quantityFactor * multiplier
		line.Protein = per.Protein * quantityFactor
		line.Carbs = per.Carbs * quantityFactor
		line.Fat = per.Fat * quantityFactor

		cals += line.Calories
		protein += line.Protein
		carbs += line.Carbs
		fat += line.Fat
		out.Lines = append(out.Lines, line)
	}

	out.Total = models.NutritionTotal{
		Calories: int(utils.RoundHalfUp(cals)),
		Protein:  utils.Round1(protein),
		Carbs:    utils.Round1(carbs),
		Fat:      utils.Round1(fat),
	}
	return out
}
