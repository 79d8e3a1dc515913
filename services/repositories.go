package services

import (
	"context"

	"nutritrack/models"
)

// Update* methods load the record, apply mutate and persist the result as one
// atomic step per user key. A non-nil error from mutate aborts the write.

type MealRepository interface {
	ListMeals(ctx context.Context, userID uint) ([]models.UserMeal, error)
	GetMeal(ctx context.Context, userID, mealID uint) (models.UserMeal, error)
	CreateMeal(ctx context.Context, meal models.UserMeal) (models.UserMeal, error)
	UpdateMeal(ctx context.Context, userID, mealID uint, mutate func(*models.UserMeal) error) (models.UserMeal, error)
	DeleteMeal(ctx context.Context, userID, mealID uint) (bool, error)
}

type HabitRepository interface {
	ListHabits(ctx context.Context, userID uint) ([]models.Habit, error)
	CreateHabit(ctx context.Context, habit models.Habit) (models.Habit, error)
	UpdateHabit(ctx context.Context, userID, habitID uint, mutate func(*models.Habit) error) (models.Habit, error)
	DeleteHabit(ctx context.Context, userID, habitID uint) (bool, error)
}

type GoalRepository interface {
	ListGoals(ctx context.Context, userID uint) ([]models.Goal, error)
	CreateGoals(ctx context.Context, userID uint, goals []models.Goal) error
	UpdateGoal(ctx context.Context, userID, goalID uint, mutate func(*models.Goal) error) (models.Goal, error)
	ListChallenges(ctx context.Context, userID uint) ([]models.Challenge, error)
	CreateChallenges(ctx context.Context, userID uint, challenges []models.Challenge) error
}

type SettingsRepository interface {
	// GetSettings returns models.ErrNotFound when the user has none yet.
	GetSettings(ctx context.Context, userID uint) (models.UserSettings, error)
	// UpdateSettings starts from defaults when the user has none yet.
	UpdateSettings(ctx context.Context, userID uint, defaults models.UserSettings, mutate func(*models.UserSettings)) (models.UserSettings, error)
}

type UserRepository interface {
	// CreateUser returns models.ErrConflict when email or username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id uint) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByResetToken(ctx context.Context, token string) (models.User, error)
	UpdateUser(ctx context.Context, id uint, mutate func(*models.User) error) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AlertRepository interface {
	CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error)
	ListAlerts(ctx context.Context, userID uint) ([]models.Alert, error)
}

type DeviceRepository interface {
	// UpsertDevice matches on (user, token hash).
	UpsertDevice(ctx context.Context, device models.UserDevice) (models.UserDevice, error)
	ListEnabledDevices(ctx context.Context, userID uint) ([]models.UserDevice, error)
	SetDevicesEnabled(ctx context.Context, userID uint, enabled bool) error
}
