package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutritrack/models"

	"gorm.io/gorm"
)

// GormStore persists the per-user collections in postgres. Read-modify-write
// operations run in a transaction while holding the user's lock from locker,
// which may be shared across replicas (see RedisLocker).
type GormStore struct {
	db     *gorm.DB
	locker Locker
}

func NewGormStore(db *gorm.DB, locker Locker) *GormStore {
	if locker == nil {
		locker = NewLocalLocker()
	}
	return &GormStore{db: db, locker: locker}
}

func userKey(userID uint) string { return fmt.Sprintf("user:%d", userID) }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

// withUser runs fn in a transaction while holding the user's lock.
func (s *GormStore) withUser(ctx context.Context, userID uint, fn func(tx *gorm.DB) error) error {
	release, err := s.locker.Acquire(ctx, userKey(userID))
	if err != nil {
		return err
	}
	defer release()
	return s.db.WithContext(ctx).Transaction(fn)
}

// ---------- meals ----------

func (s *GormStore) ListMeals(ctx context.Context, userID uint) ([]models.UserMeal, error) {
	meals := []models.UserMeal{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&meals).Error
	return meals, err
}

func (s *GormStore) GetMeal(ctx context.Context, userID, mealID uint) (models.UserMeal, error) {
	var meal models.UserMeal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	return meal, notFound(err)
}

func (s *GormStore) CreateMeal(ctx context.Context, meal models.UserMeal) (models.UserMeal, error) {
	meal.ID = 0
	err := s.withUser(ctx, meal.UserID, func(tx *gorm.DB) error {
		return tx.Create(&meal).Error
	})
	return meal, err
}

func (s *GormStore) UpdateMeal(ctx context.Context, userID, mealID uint, mutate func(*models.UserMeal) error) (models.UserMeal, error) {
	var meal models.UserMeal
	err := s.withUser(ctx, userID, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
			return notFound(err)
		}
		if err := mutate(&meal); err != nil {
			return err
		}
		meal.ID, meal.UserID = mealID, userID
		return tx.Save(&meal).Error
	})
	return meal, err
}

func (s *GormStore) DeleteMeal(ctx context.Context, userID, mealID uint) (bool, error) {
	var deleted bool
	err := s.withUser(ctx, userID, func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", mealID, userID).Delete(&models.UserMeal{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// ---------- habits ----------

func (s *GormStore) ListHabits(ctx context.Context, userID uint) ([]models.Habit, error) {
	habits := []models.Habit{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&habits).Error
	return habits, err
}

func (s *GormStore) CreateHabit(ctx context.Context, habit models.Habit) (models.Habit, error) {
	habit.ID = 0
	err := s.withUser(ctx, habit.UserID, func(tx *gorm.DB) error {
		return tx.Create(&habit).Error
	})
	return habit, err
}

func (s *GormStore) UpdateHabit(ctx context.Context, userID, habitID uint, mutate func(*models.Habit) error) (models.Habit, error) {
	var habit models.Habit
	err := s.withUser(ctx, userID, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
			return notFound(err)
		}
		if err := mutate(&habit); err != nil {
			return err
		}
		habit.ID, habit.UserID = habitID, userID
		return tx.Save(&habit).Error
	})
	return habit, err
}

func (s *GormStore) DeleteHabit(ctx context.Context, userID, habitID uint) (bool, error) {
	var deleted bool
	err := s.withUser(ctx, userID, func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", habitID, userID).Delete(&models.Habit{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// ---------- goals & challenges ----------

func (s *GormStore) ListGoals(ctx context.Context, userID uint) ([]models.Goal, error) {
	goals := []models.Goal{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&goals).Error
	return goals, err
}

func (s *GormStore) CreateGoals(ctx context.Context, userID uint, goals []models.Goal) error {
	if len(goals) == 0 {
		return nil
	}
	rows := make([]models.Goal, len(goals))
	for i, g := range goals {
		g.ID, g.UserID = 0, userID
		rows[i] = g
	}
	return s.withUser(ctx, userID, func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

func (s *GormStore) UpdateGoal(ctx context.Context, userID, goalID uint, mutate func(*models.Goal) error) (models.Goal, error) {
	var goal models.Goal
	err := s.withUser(ctx, userID, func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			return notFound(err)
		}
		if err := mutate(&goal); err != nil {
			return err
		}
		goal.ID, goal.UserID = goalID, userID
		return tx.Save(&goal).Error
	})
	return goal, err
}

func (s *GormStore) ListChallenges(ctx context.Context, userID uint) ([]models.Challenge, error) {
	challenges := []models.Challenge{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&challenges).Error
	return challenges, err
}

func (s *GormStore) CreateChallenges(ctx context.Context, userID uint, challenges []models.Challenge) error {
	if len(challenges) == 0 {
		return nil
	}
	rows := make([]models.Challenge, len(challenges))
	for i, c := range challenges {
		c.ID, c.UserID = 0, userID
		rows[i] = c
	}
	return s.withUser(ctx, userID, func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
}

// ---------- settings ----------

func (s *GormStore) GetSettings(ctx context.Context, userID uint) (models.UserSettings, error) {
	var st models.UserSettings
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error
	return st, notFound(err)
}

func (s *GormStore) UpdateSettings(ctx context.Context, userID uint, defaults models.UserSettings, mutate func(*models.UserSettings)) (models.UserSettings, error) {
	var st models.UserSettings
	err := s.withUser(ctx, userID, func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&st).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			st = defaults
		} else if err != nil {
			return err
		}
		mutate(&st)
		st.UserID = userID
		return tx.Save(&st).Error
	})
	return st, err
}

// ---------- users ----------

func (s *GormStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	user.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).
			Where("LOWER(email) = ? OR LOWER(username) = ?", strings.ToLower(user.Email), strings.ToLower(user.Username)).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return models.ErrConflict
		}
		return tx.Create(&user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.User{}, models.ErrConflict
	}
	return user, err
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	return u, notFound(err)
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error
	return u, notFound(err)
}

func (s *GormStore) FindUserByResetToken(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, models.ErrNotFound
	}
	var u models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&u).Error
	return u, notFound(err)
}

func (s *GormStore) UpdateUser(ctx context.Context, id uint, mutate func(*models.User) error) (models.User, error) {
	var u models.User
	err := s.withUser(ctx, id, func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			return notFound(err)
		}
		if err := mutate(&u); err != nil {
			return err
		}
		u.ID = id
		return tx.Save(&u).Error
	})
	return u, err
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

// ---------- alerts ----------

func (s *GormStore) CreateAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	alert.ID = 0
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	err := s.db.WithContext(ctx).Create(&alert).Error
	return alert, err
}

func (s *GormStore) ListAlerts(ctx context.Context, userID uint) ([]models.Alert, error) {
	alerts := []models.Alert{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&alerts).Error
	return alerts, err
}

// ---------- devices ----------

func (s *GormStore) UpsertDevice(ctx context.Context, device models.UserDevice) (models.UserDevice, error) {
	var out models.UserDevice
	err := s.withUser(ctx, device.UserID, func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND token_hash = ?", device.UserID, device.TokenHash).First(&out).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			device.ID = 0
			device.Enabled = true
			out = device
			return tx.Create(&out).Error
		}
		if err != nil {
			return err
		}
		out.EndpointARN = device.EndpointARN
		out.Platform = device.Platform
		out.UpdatedAt = time.Now()
		return tx.Save(&out).Error
	})
	return out, err
}

func (s *GormStore) ListEnabledDevices(ctx context.Context, userID uint) ([]models.UserDevice, error) {
	devices := []models.UserDevice{}
	err := s.db.WithContext(ctx).Where("user_id = ? AND enabled = ?", userID, true).Find(&devices).Error
	return devices, err
}

func (s *GormStore) SetDevicesEnabled(ctx context.Context, userID uint, enabled bool) error {
	return s.db.WithContext(ctx).
		Model(&models.UserDevice{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled).Error
}
