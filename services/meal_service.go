package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"nutritrack/models"
	"nutritrack/utils"
)

var ErrInvalidMeal = errors.New("invalid meal")

type MealService struct {
	repo     MealRepository
	catalog  *CatalogService
	settings *SettingsService
	alerts   *AlertBus
	rt       *RealtimeHub
}

func NewMealService(repo MealRepository, catalog *CatalogService, settings *SettingsService, alerts *AlertBus, rt *RealtimeHub) *MealService {
	return &MealService{repo: repo, catalog: catalog, settings: settings, alerts: alerts, rt: rt}
}

// MealInput describes a meal being logged. Exactly one nutrition source is
// used, in this order: Usages (computed by the aggregator), PremadeMealID
// (the catalog total), or Lines plus an explicit Total for free-form entry.
type MealInput struct {
	Name          string                       `json:"name" binding:"required"`
	MealType      string                       `json:"meal_type" binding:"required"`
	Time          string                       `json:"time"`
	Date          string                       `json:"date"`
	Usages        []models.MealIngredientUsage `json:"usages" binding:"omitempty,dive"`
	PremadeMealID *uint                        `json:"premade_meal_id"`
	Lines         []models.MealIngredientLine  `json:"ingredients"`
	Total         *models.NutritionTotal       `json:"total_nutrition"`
}

// MealPatch replaces only the fields that are set. Supplying Usages or
// PremadeMealID recomputes the snapshot and total; nothing else does.
type MealPatch struct {
	Name          *string                      `json:"name"`
	MealType      *string                      `json:"meal_type"`
	Time          *string                      `json:"time"`
	Date          *string                      `json:"date"`
	Usages        []models.MealIngredientUsage `json:"usages" binding:"omitempty,dive"`
	PremadeMealID *uint                        `json:"premade_meal_id"`
	Lines         []models.MealIngredientLine  `json:"ingredients"`
	Total         *models.NutritionTotal       `json:"total_nutrition"`
}

// MealResult is a stored meal plus the usage entries that were skipped while
// computing it.
type MealResult struct {
	Meal       models.UserMeal `json:"meal"`
	Unresolved []uint          `json:"unresolved_ingredient_ids"`
}

// nutritionSnapshot is the (lines, total) pair stored on a meal.
type nutritionSnapshot struct {
	lines      []models.MealIngredientLine
	total      models.NutritionTotal
	unresolved []uint
}

func (s *MealService) snapshotFromUsages(usages []models.MealIngredientUsage) nutritionSnapshot {
	b := s.catalog.ComputeNutritionDetailed(usages)
	lines := make([]models.MealIngredientLine, 0, len(b.Lines))
	for _, l := range b.Lines {
		line := models.MealIngredientLine{
			Name:     l.Ingredient.Name,
			Quantity: strconv.FormatFloat(l.Usage.Quantity, 'f', -1, 64) + "g",
			Calories: int(utils.RoundHalfUp(l.Calories)),
		}
		if l.CookingMethod != nil {
			line.CookingMethod = l.CookingMethod.Name
		}
		lines = append(lines, line)
	}
	return nutritionSnapshot{lines: lines, total: b.Total, unresolved: b.Unresolved}
}

func (s *MealService) snapshotFromPremade(id uint) (nutritionSnapshot, error) {
	meal, ok := s.catalog.FindPremadeMeal(id)
	if !ok {
		return nutritionSnapshot{}, fmt.Errorf("%w: pre-made meal %d not found", ErrInvalidMeal, id)
	}
	snap := s.snapshotFromUsages(meal.Ingredients)
	snap.total = meal.TotalNutrition
	return snap, nil
}

func (s *MealService) resolveSnapshot(usages []models.MealIngredientUsage, premadeID *uint, lines []models.MealIngredientLine, total *models.NutritionTotal) (nutritionSnapshot, bool, error) {
	switch {
	case len(usages) > 0:
		return s.snapshotFromUsages(usages), true, nil
	case premadeID != nil:
		snap, err := s.snapshotFromPremade(*premadeID)
		return snap, true, err
	case total != nil:
		return nutritionSnapshot{lines: lines, total: *total, unresolved: []uint{}}, true, nil
	}
	return nutritionSnapshot{unresolved: []uint{}}, false, nil
}

func validDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil
}

func (s *MealService) CreateMeal(ctx context.Context, userID uint, in MealInput) (*MealResult, error) {
	if in.Date == "" {
		in.Date = time.Now().Format("2006-01-02")
	}
	if !validDate(in.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidMeal)
	}
	if in.Time == "" {
		in.Time = time.Now().Format("15:04")
	}

	snap, ok, err := s.resolveSnapshot(in.Usages, in.PremadeMealID, in.Lines, in.Total)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: one of usages, premade_meal_id or total_nutrition is required", ErrInvalidMeal)
	}

	meal, err := s.repo.CreateMeal(ctx, models.UserMeal{
		UserID:         userID,
		Name:           in.Name,
		MealType:       in.MealType,
		Time:           in.Time,
		Date:           in.Date,
		Ingredients:    snap.lines,
		TotalNutrition: snap.total,
	})
	if err != nil {
		return nil, err
	}

	s.publish(userID, "meal.created", meal)
	s.checkCalorieGoal(ctx, userID, meal.Date)
	return &MealResult{Meal: meal, Unresolved: snap.unresolved}, nil
}

func (s *MealService) ListMeals(ctx context.Context, userID uint, date string) ([]models.UserMeal, error) {
	meals, err := s.repo.ListMeals(ctx, userID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return meals, nil
	}
	out := make([]models.UserMeal, 0, len(meals))
	for _, m := range meals {
		if m.Date == date {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MealService) GetMeal(ctx context.Context, userID, mealID uint) (models.UserMeal, error) {
	return s.repo.GetMeal(ctx, userID, mealID)
}

func (s *MealService) UpdateMeal(ctx context.Context, userID, mealID uint, p MealPatch) (*MealResult, error) {
	if p.Date != nil && !validDate(*p.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidMeal)
	}
	snap, recompute, err := s.resolveSnapshot(p.Usages, p.PremadeMealID, p.Lines, p.Total)
	if err != nil {
		return nil, err
	}

	meal, err := s.repo.UpdateMeal(ctx, userID, mealID, func(m *models.UserMeal) error {
		if p.Name != nil {
			m.Name = *p.Name
		}
		if p.MealType != nil {
			m.MealType = *p.MealType
		}
		if p.Time != nil {
			m.Time = *p.Time
		}
		if p.Date != nil {
			m.Date = *p.Date
		}
		if recompute {
			m.TotalNutrition = snap.total
			// a manual total without lines keeps the existing snapshot
			if snap.lines != nil {
				m.Ingredients = snap.lines
			}
		} else if p.Lines != nil {
			// display-only edit, the stored total stays as it was
			m.Ingredients = p.Lines
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(userID, "meal.updated", meal)
	if recompute {
		s.checkCalorieGoal(ctx, userID, meal.Date)
	}
	return &MealResult{Meal: meal, Unresolved: snap.unresolved}, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uint) (bool, error) {
	ok, err := s.repo.DeleteMeal(ctx, userID, mealID)
	if err == nil && ok {
		s.publish(userID, "meal.deleted", map[string]any{"id": mealID})
	}
	return ok, err
}

// AttachPhoto stores the photo URL on a meal.
func (s *MealService) AttachPhoto(ctx context.Context, userID, mealID uint, url string) (models.UserMeal, error) {
	meal, err := s.repo.UpdateMeal(ctx, userID, mealID, func(m *models.UserMeal) error {
		m.PhotoURL = url
		return nil
	})
	if err == nil {
		s.publish(userID, "meal.updated", meal)
	}
	return meal, err
}

// ---------- daily summary ----------

type MacroProgress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
}

type DailySummary struct {
	Date      string                   `json:"date"`
	MealCount int                      `json:"meal_count"`
	Total     models.NutritionTotal    `json:"total"`
	Progress  map[string]MacroProgress `json:"progress"`
}

func progressPct(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := consumed / target
	if p > 1 {
		return 1
	}
	return utils.Round2(p)
}

// DailySummary adds up the stored totals of the day's meals and compares them
// with the user's goals from settings.
func (s *MealService) DailySummary(ctx context.Context, userID uint, date string) (*DailySummary, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidMeal)
	}
	meals, err := s.ListMeals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	st, err := s.settings.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	var cals int
	var protein, carbs, fat float64
	for _, m := range meals {
		cals += m.TotalNutrition.Calories
		protein += m.TotalNutrition.Protein
		carbs += m.TotalNutrition.Carbs
		fat += m.TotalNutrition.Fat
	}
	total := models.NutritionTotal{
		Calories: cals,
		Protein:  utils.Round1(protein),
		Carbs:    utils.Round1(carbs),
		Fat:      utils.Round1(fat),
	}

	return &DailySummary{
		Date:      date,
		MealCount: len(meals),
		Total:     total,
		Progress: map[string]MacroProgress{
			"calories": {Consumed: float64(total.Calories), Goal: st.CalorieGoal, Percent: progressPct(float64(total.Calories), st.CalorieGoal)},
			"protein":  {Consumed: total.Protein, Goal: st.ProteinGoal, Percent: progressPct(total.Protein, st.ProteinGoal)},
			"carbs":    {Consumed: total.Carbs, Goal: st.CarbsGoal, Percent: progressPct(total.Carbs, st.CarbsGoal)},
			"fat":      {Consumed: total.Fat, Goal: st.FatGoal, Percent: progressPct(total.Fat, st.FatGoal)},
		},
	}, nil
}

func (s *MealService) checkCalorieGoal(ctx context.Context, userID uint, date string) {
	if s.alerts == nil || s.settings == nil {
		return
	}
	sum, err := s.DailySummary(ctx, userID, date)
	if err != nil {
		log.Printf("calorie goal check user=%d date=%s: %v", userID, date, err)
		return
	}
	cal := sum.Progress["calories"]
	if cal.Goal > 0 && cal.Consumed > cal.Goal {
		s.alerts.Emit(ctx, userID, "warning", fmt.Sprintf(
			"You have eaten %.0f kcal on %s, above your %.0f kcal goal.", cal.Consumed, date, cal.Goal))
	}
}

func (s *MealService) publish(userID uint, kind string, payload any) {
	if s.rt == nil {
		return
	}
	s.rt.Broadcast(userID, map[string]any{"kind": kind, "data": payload})
}
