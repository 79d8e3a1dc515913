package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"nutritrack/models"
	"nutritrack/utils"
)

// AssistantService answers the in-app assistant with canned, keyword driven
// replies. Analysis and insights are filled in from the user's stored meals
// and goals; there is no model inference behind it.
type AssistantService struct {
	meals    MealRepository
	settings *SettingsService
	now      func() time.Time
}

func NewAssistantService(meals MealRepository, settings *SettingsService) *AssistantService {
	return &AssistantService{meals: meals, settings: settings, now: time.Now}
}

type AssistantReply struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type MealAnalysis struct {
	Name         string                `json:"name"`
	Date         string                `json:"date"`
	Calories     int                   `json:"calories"`
	Nutrients    models.NutritionTotal `json:"nutrients"`
	Improvements []string              `json:"improvements"`
}

type NutritionalAnalysis struct {
	Meals       []MealAnalysis `json:"meals"`
	Suggestions []string       `json:"suggestions"`
}

type Exercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  int    `json:"reps"`
	Notes string `json:"notes"`
}

type WorkoutRecommendation struct {
	Type      string     `json:"type"`
	Duration  string     `json:"duration"`
	Exercises []Exercise `json:"exercises"`
	Tips      string     `json:"tips"`
}

type CalorieWeek struct {
	Average    int `json:"average"`
	Goal       int `json:"goal"`
	Difference int `json:"difference"`
}

type ActiveDays struct {
	Current    int `json:"current"`
	Previous   int `json:"previous"`
	Difference int `json:"difference"`
}

type Insight struct {
	Type    string `json:"type"`
	Insight string `json:"insight"`
}

type HealthInsights struct {
	WeeklySummary struct {
		Calories   CalorieWeek `json:"calories"`
		LoggedDays ActiveDays  `json:"logged_days"`
	} `json:"weekly_summary"`
	Patterns []Insight `json:"patterns"`
}

func (s *AssistantService) GenerateResponse(ctx context.Context, userID uint, message string) (*AssistantReply, error) {
	msg := strings.ToLower(message)
	var reply string

	switch {
	case containsAny(msg, "meal", "food", "eat"):
		avg, days, err := s.dailyCalorieAverage(ctx, userID, 7)
		if err != nil {
			return nil, err
		}
		if days == 0 {
			reply = "You haven't logged any meals this week yet. Log a few meals and I can look at your calorie and macro balance."
		} else {
			reply = fmt.Sprintf("Based on your meal history, you've been eating about %d calories a day over the %d days you logged this week. Would you like me to suggest a balanced meal plan for tomorrow?", avg, days)
		}
	case containsAny(msg, "workout", "exercise"):
		reply = "For your goals, I recommend adding one more strength training session this week. Would you like me to create a workout that targets your specific goals?"
	case containsAny(msg, "sleep", "tired"):
		reply = "For optimal health, aim for 7-8 hours of sleep. Try establishing a consistent bedtime routine and limiting screen time before bed."
	default:
		reply = "Thank you for your message. Keep logging your meals and habits and I can give you more specific insights. Is there anything about your health journey you'd like to know?"
	}

	return &AssistantReply{Message: reply, Timestamp: s.now().UTC().Format(time.RFC3339)}, nil
}

// NutritionalAnalysis reviews the user's most recent meals (up to five)
// against the per-meal share of the daily goals.
func (s *AssistantService) NutritionalAnalysis(ctx context.Context, userID uint) (*NutritionalAnalysis, error) {
	meals, err := s.meals.ListMeals(ctx, userID)
	if err != nil {
		return nil, err
	}
	st, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(meals, func(i, j int) bool {
		if meals[i].Date != meals[j].Date {
			return meals[i].Date > meals[j].Date
		}
		return meals[i].ID > meals[j].ID
	})
	if len(meals) > 5 {
		meals = meals[:5]
	}

	out := &NutritionalAnalysis{Meals: []MealAnalysis{}, Suggestions: []string{}}
	var protein, fat float64
	for _, m := range meals {
		t := m.TotalNutrition
		protein += t.Protein
		fat += t.Fat
		out.Meals = append(out.Meals, MealAnalysis{
			Name:         m.Name,
			Date:         m.Date,
			Calories:     t.Calories,
			Nutrients:    t,
			Improvements: mealImprovements(t, st),
		})
	}

	if len(meals) == 0 {
		out.Suggestions = append(out.Suggestions, "Log your meals to receive a personalised nutritional analysis")
		return out, nil
	}
	n := float64(len(meals))
	if protein/n < st.ProteinGoal/3 {
		out.Suggestions = append(out.Suggestions, "Your protein per meal is below a third of your daily goal; add a lean protein source to each meal")
	} else {
		out.Suggestions = append(out.Suggestions, "Your protein intake is good; keep spacing it evenly throughout the day")
	}
	if fat/n > st.FatGoal/3 {
		out.Suggestions = append(out.Suggestions, "Your meals are high in fat; try grilling or steaming instead of frying")
	}
	out.Suggestions = append(out.Suggestions, "Include more fiber-rich foods such as vegetables and whole grains")
	return out, nil
}

func mealImprovements(t models.NutritionTotal, st models.UserSettings) []string {
	var tips []string
	if st.ProteinGoal > 0 && t.Protein < st.ProteinGoal/4 {
		tips = append(tips, "Consider adding more protein to keep you fuller longer")
	}
	if st.CarbsGoal > 0 && t.Carbs > st.CarbsGoal/2 {
		tips = append(tips, "This meal is carb heavy; balance it with vegetables")
	}
	if st.FatGoal > 0 && t.Fat > st.FatGoal/2 {
		tips = append(tips, "Try a lighter cooking method to reduce fat")
	}
	if st.CalorieGoal > 0 && float64(t.Calories) > st.CalorieGoal/2 {
		tips = append(tips, "This meal covers more than half of your daily calories")
	}
	if len(tips) == 0 {
		tips = append(tips, "Well balanced meal")
	}
	return tips
}

func (s *AssistantService) WorkoutRecommendations(_ context.Context, _ uint) *WorkoutRecommendation {
	return &WorkoutRecommendation{
		Type:     "Strength Training",
		Duration: "45 minutes",
		Exercises: []Exercise{
			{Name: "Squats", Sets: 3, Reps: 12, Notes: "Focus on form and depth"},
			{Name: "Push-ups", Sets: 3, Reps: 15, Notes: "Modify with knees if needed"},
			{Name: "Dumbbell Rows", Sets: 3, Reps: 12, Notes: "Use appropriate weight"},
		},
		Tips: "Rest 60-90 seconds between sets. Stay hydrated throughout.",
	}
}

// HealthInsights compares this week's logging with the week before.
func (s *AssistantService) HealthInsights(ctx context.Context, userID uint) (*HealthInsights, error) {
	meals, err := s.meals.ListMeals(ctx, userID)
	if err != nil {
		return nil, err
	}
	st, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := dayStart(s.now())
	thisWeek := daysWithMeals(meals, today.AddDate(0, 0, -6), today)
	lastWeek := daysWithMeals(meals, today.AddDate(0, 0, -13), today.AddDate(0, 0, -7))
	avg, _ := calorieAverage(meals, today.AddDate(0, 0, -6), today)

	out := &HealthInsights{}
	goal := int(utils.RoundHalfUp(st.CalorieGoal))
	out.WeeklySummary.Calories = CalorieWeek{Average: avg, Goal: goal, Difference: avg - goal}
	out.WeeklySummary.LoggedDays = ActiveDays{
		Current:    len(thisWeek),
		Previous:   len(lastWeek),
		Difference: len(thisWeek) - len(lastWeek),
	}

	switch {
	case len(thisWeek) == 0:
		out.Patterns = append(out.Patterns, Insight{Type: "Logging", Insight: "No meals logged this week. Regular logging makes these insights more accurate."})
	case len(thisWeek) >= len(lastWeek):
		out.Patterns = append(out.Patterns, Insight{Type: "Logging", Insight: "You're logging as consistently as last week or better. Keep it up."})
	default:
		out.Patterns = append(out.Patterns, Insight{Type: "Logging", Insight: "You logged fewer days than last week. Try setting a reminder after meals."})
	}
	if len(thisWeek) > 0 {
		if avg > goal {
			out.Patterns = append(out.Patterns, Insight{Type: "Nutrition", Insight: fmt.Sprintf("Your average intake is %d kcal above your goal on logged days.", avg-goal)})
		} else {
			out.Patterns = append(out.Patterns, Insight{Type: "Nutrition", Insight: "Your average intake is within your calorie goal on logged days."})
		}
	}
	return out, nil
}

func (s *AssistantService) dailyCalorieAverage(ctx context.Context, userID uint, days int) (int, int, error) {
	meals, err := s.meals.ListMeals(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	today := dayStart(s.now())
	avg, n := calorieAverage(meals, today.AddDate(0, 0, -(days-1)), today)
	return avg, n, nil
}

// calorieAverage is the mean daily calories over the days in [from, to]
// that have at least one meal, and the number of such days.
func calorieAverage(meals []models.UserMeal, from, to time.Time) (int, int) {
	perDay := map[string]int{}
	for _, m := range meals {
		if inRange(m.Date, from, to) {
			perDay[m.Date] += m.TotalNutrition.Calories
		}
	}
	if len(perDay) == 0 {
		return 0, 0
	}
	sum := 0
	for _, c := range perDay {
		sum += c
	}
	return int(utils.RoundHalfUp(float64(sum) / float64(len(perDay)))), len(perDay)
}

func daysWithMeals(meals []models.UserMeal, from, to time.Time) map[string]bool {
	days := map[string]bool{}
	for _, m := range meals {
		if inRange(m.Date, from, to) {
			days[m.Date] = true
		}
	}
	return days
}

func inRange(date string, from, to time.Time) bool {
	d, err := time.ParseInLocation("2006-01-02", date, from.Location())
	if err != nil {
		return false
	}
	return !d.Before(from) && !d.After(to)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
