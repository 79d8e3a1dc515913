package services

import (
	"strings"

	"nutritrack/models"
)

// similarityThreshold is the share of a pre-made meal's ingredients that must
// match typed names for the meal to be suggested.
const similarityThreshold = 0.5

// MatcherService suggests a pre-made meal while a user is typing ingredients
// by hand. Suggestions are advisory; nothing is ever applied automatically.
type MatcherService struct {
	catalog *CatalogService
}

func NewMatcherService(catalog *CatalogService) *MatcherService {
	return &MatcherService{catalog: catalog}
}

// SuggestPremadeMeal returns the first pre-made meal, in catalog order, for
// which at least half of its ingredients match one of the typed names by
// substring in either direction.
func (s *MatcherService) SuggestPremadeMeal(mealName string, typedNames []string) (models.PremadeMeal, bool) {
	meals := s.catalog.SearchPremadeMeals("")
	if mealName == "" || len(typedNames) < 2 || len(meals) == 0 {
		return models.PremadeMeal{}, false
	}

	names := make([]string, 0, len(typedNames))
	for _, n := range typedNames {
		if n = strings.ToLower(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) < 2 {
		return models.PremadeMeal{}, false
	}

	for _, meal := range meals {
		if len(meal.Ingredients) == 0 {
			continue
		}
		matches := 0
		for _, u := range meal.Ingredients {
			ing, ok := s.catalog.FindIngredient(u.IngredientID)
			if !ok {
				continue
			}
			if anyOverlap(strings.ToLower(ing.Name), names) {
				matches++
			}
		}
		if float64(matches)/float64(len(meal.Ingredients)) >= similarityThreshold {
			return meal, true
		}
	}
	return models.PremadeMeal{}, false
}

func anyOverlap(catalogName string, typed []string) bool {
	for _, t := range typed {
		if strings.Contains(catalogName, t) || strings.Contains(t, catalogName) {
			return true
		}
	}
	return false
}
