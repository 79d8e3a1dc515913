package services

import (
	"testing"

	"nutritrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestPremadeMeal_ChickenRice(t *testing.T) {
	m := NewMatcherService(newTestCatalog(t))

	meal, ok := m.SuggestPremadeMeal("dinner", []string{"chicken", "rice"})

	require.True(t, ok)
	assert.Equal(t, uint(1), meal.ID)
}

func TestSuggestPremadeMeal_SingleNameNeverMatches(t *testing.T) {
	m := NewMatcherService(newTestCatalog(t))

	_, ok := m.SuggestPremadeMeal("dinner", []string{"x"})
	assert.False(t, ok)

	_, ok = m.SuggestPremadeMeal("dinner", []string{"chicken", ""})
	assert.False(t, ok, "empty names do not count")
}

func TestSuggestPremadeMeal_Preconditions(t *testing.T) {
	m := NewMatcherService(newTestCatalog(t))

	_, ok := m.SuggestPremadeMeal("", []string{"chicken", "rice"})
	assert.False(t, ok)

	_, ok = m.SuggestPremadeMeal("dinner", nil)
	assert.False(t, ok)
}

func TestSuggestPremadeMeal_SubstringEitherDirection(t *testing.T) {
	m := NewMatcherService(newTestCatalog(t))

	// "sweet potato fries" contains "sweet potato"; "salmon" equals the name
	meal, ok := m.SuggestPremadeMeal("lunch", []string{"Salmon", "sweet potato fries"})
	require.True(t, ok)
	assert.Equal(t, uint(2), meal.ID)
}

func TestSuggestPremadeMeal_BelowThreshold(t *testing.T) {
	m := NewMatcherService(newTestCatalog(t))

	// one of four omelette ingredients
	_, ok := m.SuggestPremadeMeal("breakfast", []string{"spinach", "kale"})
	assert.False(t, ok)
}

func TestSuggestPremadeMeal_FirstQualifyingInCatalogOrder(t *testing.T) {
	// tomato + olive oil: 2/4 of the omelette (id 3) and 2/4 of beef pasta (id 4)
	m := NewMatcherService(newTestCatalog(t))

	meal, ok := m.SuggestPremadeMeal("snack", []string{"tomato", "olive oil"})
	require.True(t, ok)
	assert.Equal(t, uint(3), meal.ID)
}

func TestSuggestPremadeMeal_SkipsMealsWithoutIngredients(t *testing.T) {
	seed := DefaultCatalogSeed()
	seed.PremadeMeals = append([]models.PremadeMeal{{ID: 99, Name: "Empty"}}, seed.PremadeMeals...)
	c, err := NewCatalogService(seed, 8)
	require.NoError(t, err)

	meal, ok := NewMatcherService(c).SuggestPremadeMeal("dinner", []string{"chicken", "rice"})
	require.True(t, ok)
	assert.Equal(t, uint(1), meal.ID)
}

func TestSuggestPremadeMeal_EmptyCatalog(t *testing.T) {
	c, err := NewCatalogService(CatalogSeed{}, 8)
	require.NoError(t, err)

	_, ok := NewMatcherService(c).SuggestPremadeMeal("dinner", []string{"chicken", "rice"})
	assert.False(t, ok)
}
