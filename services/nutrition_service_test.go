package services

import (
	"math/rand"
	"testing"

	"nutritrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	c, err := NewCatalogService(DefaultCatalogSeed(), 16)
	require.NoError(t, err)
	return c
}

func usage(ingredientID uint, qty float64, method ...uint) models.MealIngredientUsage {
	u := models.MealIngredientUsage{IngredientID: ingredientID, Quantity: qty}
	if len(method) > 0 {
		u.CookingMethodID = methodID(method[0])
	}
	return u
}

func TestAggregateNutrition_GrilledChicken(t *testing.T) {
	c := newTestCatalog(t)

	got := c.ComputeNutrition([]models.MealIngredientUsage{usage(1, 150, 5)})

	assert.Equal(t, models.NutritionTotal{Calories: 252, Protein: 46.5, Carbs: 0, Fat: 5.4}, got)
}

func TestAggregateNutrition_UnknownIngredientIsZero(t *testing.T) {
	c := newTestCatalog(t)

	got := c.ComputeNutrition([]models.MealIngredientUsage{usage(999, 100)})

	assert.Equal(t, models.NutritionTotal{}, got)
}

func TestAggregateNutrition_EmptyInput(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t, models.NutritionTotal{}, c.ComputeNutrition(nil))
	assert.Equal(t, models.NutritionTotal{}, c.ComputeNutrition([]models.MealIngredientUsage{}))
}

func TestAggregateNutrition_HundredGramsEqualsPerUnit(t *testing.T) {
	c := newTestCatalog(t)

	for _, ing := range c.SearchIngredients("") {
		got := c.ComputeNutrition([]models.MealIngredientUsage{usage(ing.ID, 100)})
		per := ing.NutritionPerUnit
		assert.Equal(t, models.NutritionTotal{
			Calories: int(per.Calories),
			Protein:  per.Protein,
			Carbs:    per.Carbs,
			Fat:      per.Fat,
		}, got, ing.Name)
	}
}

func TestAggregateNutrition_MultiplierScalesCaloriesOnly(t *testing.T) {
	c := newTestCatalog(t)
	raw := c.ComputeNutrition([]models.MealIngredientUsage{usage(4, 150)})

	for _, m := range c.ListCookingMethods() {
		cooked := c.ComputeNutrition([]models.MealIngredientUsage{usage(4, 150, m.ID)})
		assert.Equal(t, raw.Protein, cooked.Protein, m.Name)
		assert.Equal(t, raw.Carbs, cooked.Carbs, m.Name)
		assert.Equal(t, raw.Fat, cooked.Fat, m.Name)
	}

	fried := c.ComputeNutrition([]models.MealIngredientUsage{usage(4, 150, 6)})
	assert.Equal(t, 468, fried.Calories) // 208 * 1.5 * 1.5
	assert.Equal(t, 312, raw.Calories)
}

func TestAggregateNutrition_UnknownCookingMethodIsNeutral(t *testing.T) {
	c := newTestCatalog(t)

	plain := c.ComputeNutrition([]models.MealIngredientUsage{usage(1, 150)})
	unknown := c.ComputeNutrition([]models.MealIngredientUsage{usage(1, 150, 42)})

	assert.Equal(t, plain, unknown)
	assert.Equal(t, 248, unknown.Calories)
}

func TestAggregateNutrition_Idempotent(t *testing.T) {
	c := newTestCatalog(t)
	in := []models.MealIngredientUsage{usage(12, 120, 8), usage(13, 150, 2), usage(9, 15)}

	first := c.ComputeNutrition(in)
	second := c.ComputeNutrition(in)

	assert.Equal(t, first, second)
	assert.Equal(t, []models.MealIngredientUsage{usage(12, 120, 8), usage(13, 150, 2), usage(9, 15)}, in)
}

func TestAggregateNutrition_OrderIndependent(t *testing.T) {
	c := newTestCatalog(t)
	rng := rand.New(rand.NewSource(7))

	for _, meal := range c.SearchPremadeMeals("") {
		want := c.ComputeNutrition(meal.Ingredients)
		for i := 0; i < 10; i++ {
			shuffled := append([]models.MealIngredientUsage(nil), meal.Ingredients...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
			assert.Equal(t, want, c.ComputeNutrition(shuffled), meal.Name)
		}
	}
}

func TestAggregateNutrition_SkipOnMissLeavesOthersUnchanged(t *testing.T) {
	c := newTestCatalog(t)
	base := []models.MealIngredientUsage{usage(1, 200, 6), usage(2, 150)}

	withMiss := append([]models.MealIngredientUsage{usage(777, 500, 6)}, base...)

	assert.Equal(t, models.NutritionTotal{Calories: 663, Protein: 65.9, Carbs: 35.3, Fat: 8.6}, c.ComputeNutrition(base))
	assert.Equal(t, c.ComputeNutrition(base), c.ComputeNutrition(withMiss))
}

func TestAggregateNutrition_NegativeQuantityDoesNotPanic(t *testing.T) {
	c := newTestCatalog(t)

	got := c.ComputeNutrition([]models.MealIngredientUsage{usage(1, -100)})

	assert.Equal(t, models.NutritionTotal{Calories: -165, Protein: -31, Carbs: 0, Fat: -3.6}, got)
}

func TestAggregateNutritionDetailed(t *testing.T) {
	c := newTestCatalog(t)
	in := []models.MealIngredientUsage{usage(1, 150, 5), usage(404, 10), usage(3, 100, 99)}

	b := c.ComputeNutritionDetailed(in)

	assert.Equal(t, c.ComputeNutrition(in), b.Total)
	assert.Equal(t, []uint{404}, b.Unresolved)
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "Chicken Breast", b.Lines[0].Ingredient.Name)
	require.NotNil(t, b.Lines[0].CookingMethod)
	assert.Equal(t, "Grilled", b.Lines[0].CookingMethod.Name)
	assert.InDelta(t, 252.45, b.Lines[0].Calories, 1e-9)
	assert.Nil(t, b.Lines[1].CookingMethod, "unknown method is not reported")
	assert.InDelta(t, 34.0, b.Lines[1].Calories, 1e-9)
}

type stubLookup struct {
	ingredients map[uint]models.Ingredient
	methods     map[uint]models.CookingMethod
}

func (s stubLookup) FindIngredient(id uint) (models.Ingredient, bool) {
	i, ok := s.ingredients[id]
	return i, ok
}

func (s stubLookup) FindCookingMethod(id uint) (models.CookingMethod, bool) {
	m, ok := s.methods[id]
	return m, ok
}

func TestAggregateNutrition_RoundsHalfUpAfterSumming(t *testing.T) {
	lookup := stubLookup{
		ingredients: map[uint]models.Ingredient{
			1: {ID: 1, NutritionPerUnit: models.NutritionFacts{Calories: 0.5, Protein: 0.25, Carbs: 0.05}},
		},
	}

	// each entry alone is 0.25 kcal; the sum 0.5 rounds up to 1
	got := AggregateNutrition(lookup, []models.MealIngredientUsage{usage(1, 50), usage(1, 50)})
	assert.Equal(t, 1, got.Calories)
	assert.Equal(t, 0.3, got.Protein)
	assert.Equal(t, 0.1, got.Carbs)
}
