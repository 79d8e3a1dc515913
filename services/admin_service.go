package services

import (
	"context"
	"sort"
	"time"

	"nutritrack/utils"
)

// AdminService computes the admin dashboard from stored data.
type AdminService struct {
	users  UserRepository
	meals  MealRepository
	habits HabitRepository
}

func NewAdminService(users UserRepository, meals MealRepository, habits HabitRepository) *AdminService {
	return &AdminService{users: users, meals: meals, habits: habits}
}

type AdminUser struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	JoinedDate     time.Time `json:"joined_date"`
	LastActive     string    `json:"last_active,omitempty"` // date of the latest logged meal
	MealCount      int       `json:"meal_count"`
	HabitCount     int       `json:"habit_count"`
	CalorieAverage int       `json:"calorie_average"` // per logged meal
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AdminAnalytics struct {
	UserStats struct {
		Total          int `json:"total"`
		ActiveThisWeek int `json:"active_this_week"`
		NewThisMonth   int `json:"new_this_month"`
	} `json:"user_stats"`
	NutritionStats struct {
		MealLogsTotal         int         `json:"meal_logs_total"`
		AvgMealsPerUser       float64     `json:"avg_meals_per_user"`
		AvgCaloriesPerMeal    int         `json:"avg_calories_per_meal"`
		PopularIngredients    []NameCount `json:"popular_ingredients"`
		PopularCookingMethods []NameCount `json:"popular_cooking_methods"`
	} `json:"nutrition_stats"`
	HabitStats struct {
		TotalHabits       int         `json:"total_habits"`
		AvgHabitsPerUser  float64     `json:"avg_habits_per_user"`
		ActiveRate        float64     `json:"active_rate"`
		PopularHabitTypes []NameCount `json:"popular_habit_types"`
	} `json:"habit_stats"`
}

func (s *AdminService) ListUsers(ctx context.Context) ([]AdminUser, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		meals, err := s.meals.ListMeals(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		habits, err := s.habits.ListHabits(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		row := AdminUser{
			ID:         u.ID,
			Username:   u.Username,
			Email:      u.Email,
			JoinedDate: u.CreatedAt,
			MealCount:  len(meals),
			HabitCount: len(habits),
		}
		cals := 0
		for _, m := range meals {
			cals += m.TotalNutrition.Calories
			if m.Date > row.LastActive {
				row.LastActive = m.Date
			}
		}
		if len(meals) > 0 {
			row.CalorieAverage = int(utils.RoundHalfUp(float64(cals) / float64(len(meals))))
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *AdminService) Analytics(ctx context.Context) (*AdminAnalytics, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	weekAgo := dayStart(now).AddDate(0, 0, -6).Format("2006-01-02")
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := &AdminAnalytics{}
	ingredients := map[string]int{}
	methods := map[string]int{}
	habitTypes := map[string]int{}
	var mealCount, calories, habitCount, activeHabits int

	for _, u := range users {
		if !u.CreatedAt.Before(monthStart) {
			out.UserStats.NewThisMonth++
		}
		meals, err := s.meals.ListMeals(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		active := false
		for _, m := range meals {
			mealCount++
			calories += m.TotalNutrition.Calories
			if m.Date >= weekAgo {
				active = true
			}
			for _, l := range m.Ingredients {
				ingredients[l.Name]++
				if l.CookingMethod != "" {
					methods[l.CookingMethod]++
				}
			}
		}
		if active {
			out.UserStats.ActiveThisWeek++
		}

		habits, err := s.habits.ListHabits(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		for _, h := range habits {
			habitCount++
			habitTypes[h.Type]++
			if h.Status == "active" {
				activeHabits++
			}
		}
	}

	out.UserStats.Total = len(users)
	out.NutritionStats.MealLogsTotal = mealCount
	out.NutritionStats.PopularIngredients = topCounts(ingredients, 5)
	out.NutritionStats.PopularCookingMethods = topCounts(methods, 5)
	out.HabitStats.TotalHabits = habitCount
	out.HabitStats.PopularHabitTypes = topCounts(habitTypes, 5)
	if len(users) > 0 {
		out.NutritionStats.AvgMealsPerUser = utils.Round2(float64(mealCount) / float64(len(users)))
		out.HabitStats.AvgHabitsPerUser = utils.Round2(float64(habitCount) / float64(len(users)))
	}
	if mealCount > 0 {
		out.NutritionStats.AvgCaloriesPerMeal = int(utils.RoundHalfUp(float64(calories) / float64(mealCount)))
	}
	if habitCount > 0 {
		out.HabitStats.ActiveRate = utils.Round2(float64(activeHabits) / float64(habitCount))
	}
	return out, nil
}

// topCounts sorts by count descending, then name, and keeps the first n.
func topCounts(m map[string]int, n int) []NameCount {
	out := make([]NameCount, 0, len(m))
	for k, v := range m {
		out = append(out, NameCount{Name: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
