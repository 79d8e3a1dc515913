package services

import (
	"context"
	"testing"
	"time"

	"nutritrack/models"
	"nutritrack/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAdminData(t *testing.T) (*AdminService, string) {
	t.Helper()
	repo := store.NewMemoryStore()
	ctx := context.Background()
	today := time.Now().Format("2006-01-02")

	alice, err := repo.CreateUser(ctx, models.User{Username: "alice", Email: "alice@example.com", Password: "x"})
	require.NoError(t, err)
	bob, err := repo.CreateUser(ctx, models.User{Username: "bob", Email: "bob@example.com", Password: "x"})
	require.NoError(t, err)

	_, err = repo.CreateMeal(ctx, models.UserMeal{
		UserID: alice.ID, Name: "lunch", MealType: "Lunch", Date: today,
		Ingredients: []models.MealIngredientLine{
			{Name: "Chicken Breast", Quantity: "150g", Calories: 252, CookingMethod: "Grilled"},
			{Name: "Brown Rice", Quantity: "100g", Calories: 106, CookingMethod: "Boiled"},
		},
		TotalNutrition: models.NutritionTotal{Calories: 401},
	})
	require.NoError(t, err)
	_, err = repo.CreateMeal(ctx, models.UserMeal{
		UserID: alice.ID, Name: "old", MealType: "Dinner", Date: "2024-01-01",
		Ingredients: []models.MealIngredientLine{
			{Name: "Chicken Breast", Quantity: "100g", Calories: 168, CookingMethod: "Grilled"},
		},
		TotalNutrition: models.NutritionTotal{Calories: 200},
	})
	require.NoError(t, err)

	for _, h := range []models.Habit{
		{UserID: alice.ID, Name: "water", Type: "diet", Status: "active"},
		{UserID: alice.ID, Name: "run", Type: "exercise", Status: "paused"},
		{UserID: bob.ID, Name: "veg", Type: "diet", Status: "active"},
	} {
		_, err := repo.CreateHabit(ctx, h)
		require.NoError(t, err)
	}
	return NewAdminService(repo, repo, repo), today
}

func TestAdminListUsers(t *testing.T) {
	admin, today := seedAdminData(t)

	users, err := admin.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, 2, users[0].MealCount)
	assert.Equal(t, 2, users[0].HabitCount)
	assert.Equal(t, 301, users[0].CalorieAverage)
	assert.Equal(t, today, users[0].LastActive)

	assert.Equal(t, "bob", users[1].Username)
	assert.Zero(t, users[1].MealCount)
	assert.Zero(t, users[1].CalorieAverage)
	assert.Empty(t, users[1].LastActive)
}

func TestAdminAnalytics(t *testing.T) {
	admin, _ := seedAdminData(t)

	a, err := admin.Analytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, a.UserStats.Total)
	assert.Equal(t, 1, a.UserStats.ActiveThisWeek)
	assert.Equal(t, 2, a.UserStats.NewThisMonth)

	assert.Equal(t, 2, a.NutritionStats.MealLogsTotal)
	assert.Equal(t, 1.0, a.NutritionStats.AvgMealsPerUser)
	assert.Equal(t, 301, a.NutritionStats.AvgCaloriesPerMeal)
	assert.Equal(t, []NameCount{{"Chicken Breast", 2}, {"Brown Rice", 1}}, a.NutritionStats.PopularIngredients)
	assert.Equal(t, []NameCount{{"Grilled", 2}, {"Boiled", 1}}, a.NutritionStats.PopularCookingMethods)

	assert.Equal(t, 3, a.HabitStats.TotalHabits)
	assert.Equal(t, 1.5, a.HabitStats.AvgHabitsPerUser)
	assert.Equal(t, 0.67, a.HabitStats.ActiveRate)
	assert.Equal(t, []NameCount{{"diet", 2}, {"exercise", 1}}, a.HabitStats.PopularHabitTypes)
}

func TestTopCounts(t *testing.T) {
	got := topCounts(map[string]int{"b": 2, "a": 2, "c": 5, "d": 1}, 3)
	assert.Equal(t, []NameCount{{"c", 5}, {"a", 2}, {"b", 2}}, got)
	assert.Empty(t, topCounts(nil, 3))
}
