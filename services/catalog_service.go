package services

import (
	"fmt"
	"slices"
	"strings"

	"nutritrack/models"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultSearchCacheSize = 256

// CatalogDrift records a pre-made meal whose seeded total disagreed with the
// total derived from its ingredients.
type CatalogDrift struct {
	MealID  uint                  `json:"meal_id"`
	Name    string                `json:"name"`
	Seeded  models.NutritionTotal `json:"seeded"`
	Derived models.NutritionTotal `json:"derived"`
}

// CatalogService is the read-only reference catalog of ingredients, cooking
// methods and pre-made meals. It is never mutated after construction and is
// safe for concurrent use.
type CatalogService struct {
	ingredients []models.Ingredient
	methods     []models.CookingMethod
	premade     []models.PremadeMeal

	ingredientIdx map[uint]int
	methodIdx     map[uint]int
	premadeIdx    map[uint]int

	drift []CatalogDrift

	ingredientSearch *lru.Cache[string, []models.Ingredient]
	premadeSearch    *lru.Cache[string, []models.PremadeMeal]
}

// NewCatalogService indexes the seed and derives every pre-made meal total
// from its ingredient list.
func NewCatalogService(seed CatalogSeed, cacheSize int) (*CatalogService, error) {
	if cacheSize <= 0 {
		cacheSize = defaultSearchCacheSize
	}

	c := &CatalogService{
		ingredients:   slices.Clone(seed.Ingredients),
		methods:       slices.Clone(seed.CookingMethods),
		ingredientIdx: make(map[uint]int, len(seed.Ingredients)),
		methodIdx:     make(map[uint]int, len(seed.CookingMethods)),
		premadeIdx:    make(map[uint]int, len(seed.PremadeMeals)),
	}

	for i, ing := range c.ingredients {
		if _, dup := c.ingredientIdx[ing.ID]; dup {
			return nil, fmt.Errorf("duplicate ingredient id %d", ing.ID)
		}
		c.ingredientIdx[ing.ID] = i
	}
	for i, m := range c.methods {
		if _, dup := c.methodIdx[m.ID]; dup {
			return nil, fmt.Errorf("duplicate cooking method id %d", m.ID)
		}
		if m.CalorieMultiplier <= 0 {
			return nil, fmt.Errorf("cooking method %d: calorie multiplier must be positive", m.ID)
		}
		c.methodIdx[m.ID] = i
	}

	// Ingredients and methods are indexed, so the aggregator can run against
	// the partially built catalog.
	for _, seeded := range seed.PremadeMeals {
		if _, dup := c.premadeIdx[seeded.ID]; dup {
			return nil, fmt.Errorf("duplicate pre-made meal id %d", seeded.ID)
		}
		meal := clonePremadeMeal(seeded)
		meal.TotalNutrition = AggregateNutrition(c, meal.Ingredients)
		if seeded.TotalNutrition != (models.NutritionTotal{}) && seeded.TotalNutrition != meal.TotalNutrition {
			c.drift = append(c.drift, CatalogDrift{
				MealID:  meal.ID,
				Name:    meal.Name,
				Seeded:  seeded.TotalNutrition,
				Derived: meal.TotalNutrition,
			})
		}
		c.premadeIdx[meal.ID] = len(c.premade)
		c.premade = append(c.premade, meal)
	}

	var err error
	if c.ingredientSearch, err = lru.New[string, []models.Ingredient](cacheSize); err != nil {
		return nil, err
	}
	if c.premadeSearch, err = lru.New[string, []models.PremadeMeal](cacheSize); err != nil {
		return nil, err
	}
	return c, nil
}

// Drift lists the pre-made meals whose seeded totals were replaced.
func (c *CatalogService) Drift() []CatalogDrift { return slices.Clone(c.drift) }

func (c *CatalogService) FindIngredient(id uint) (models.Ingredient, bool) {
	i, ok := c.ingredientIdx[id]
	if !ok {
		return models.Ingredient{}, false
	}
	return c.ingredients[i], true
}

// SearchIngredients matches query case-insensitively against name or
// category. An empty query returns the whole catalog in insertion order.
func (c *CatalogService) SearchIngredients(query string) []models.Ingredient {
	if query == "" {
		return slices.Clone(c.ingredients)
	}
	q := strings.ToLower(query)
	if hit, ok := c.ingredientSearch.Get(q); ok {
		return slices.Clone(hit)
	}

	out := []models.Ingredient{}
	for _, ing := range c.ingredients {
		if strings.Contains(strings.ToLower(ing.Name), q) || strings.Contains(strings.ToLower(ing.Category), q) {
			out = append(out, ing)
		}
	}
	c.ingredientSearch.Add(q, out)
	return slices.Clone(out)
}

func (c *CatalogService) ListCookingMethods() []models.CookingMethod {
	return slices.Clone(c.methods)
}

func (c *CatalogService) FindCookingMethod(id uint) (models.CookingMethod, bool) {
	i, ok := c.methodIdx[id]
	if !ok {
		return models.CookingMethod{}, false
	}
	return c.methods[i], true
}

func (c *CatalogService) FindPremadeMeal(id uint) (models.PremadeMeal, bool) {
	i, ok := c.premadeIdx[id]
	if !ok {
		return models.PremadeMeal{}, false
	}
	return clonePremadeMeal(c.premade[i]), true
}

// SearchPremadeMeals has the same matching rules as SearchIngredients.
func (c *CatalogService) SearchPremadeMeals(query string) []models.PremadeMeal {
	if query == "" {
		return clonePremadeMeals(c.premade)
	}
	q := strings.ToLower(query)
	if hit, ok := c.premadeSearch.Get(q); ok {
		return clonePremadeMeals(hit)
	}

	out := []models.PremadeMeal{}
	for _, m := range c.premade {
		if strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.Category), q) {
			out = append(out, m)
		}
	}
	c.premadeSearch.Add(q, out)
	return clonePremadeMeals(out)
}

// ComputeNutrition runs the aggregator against this catalog.
func (c *CatalogService) ComputeNutrition(usages []models.MealIngredientUsage) models.NutritionTotal {
	return AggregateNutrition(c, usages)
}

func (c *CatalogService) ComputeNutritionDetailed(usages []models.MealIngredientUsage) NutritionBreakdown {
	return AggregateNutritionDetailed(c, usages)
}

func clonePremadeMeal(m models.PremadeMeal) models.PremadeMeal {
	out := m
	out.Ingredients = make([]models.MealIngredientUsage, len(m.Ingredients))
	for i, u := range m.Ingredients {
		if u.CookingMethodID != nil {
			id := *u.CookingMethodID
			u.CookingMethodID = &id
		}
		out.Ingredients[i] = u
	}
	return out
}

func clonePremadeMeals(in []models.PremadeMeal) []models.PremadeMeal {
	out := make([]models.PremadeMeal, len(in))
	for i, m := range in {
		out[i] = clonePremadeMeal(m)
	}
	return out
}
