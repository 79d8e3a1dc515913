package services

import (
	"context"
	"errors"

	"nutritrack/models"
)

type SettingsService struct {
	repo SettingsRepository
	push *PushService
}

func NewSettingsService(repo SettingsRepository, push *PushService) *SettingsService {
	return &SettingsService{repo: repo, push: push}
}

// SettingsPatch is the user-writable subset of settings. IsAdmin is not settable
// here; it is granted at registration.
type SettingsPatch struct {
	Theme           *string  `json:"theme"`
	AccentColor     *string  `json:"accent_color"`
	CalorieGoal     *float64 `json:"calorie_goal" binding:"omitempty,gte=0"`
	ProteinGoal     *float64 `json:"protein_goal" binding:"omitempty,gte=0"`
	CarbsGoal       *float64 `json:"carbs_goal" binding:"omitempty,gte=0"`
	FatGoal         *float64 `json:"fat_goal" binding:"omitempty,gte=0"`
	MeasurementUnit *string  `json:"measurement_unit"`
	Notifications   *bool    `json:"notifications"`
	Language        *string  `json:"language"`
}

// GetSettings returns the stored settings or the defaults when none exist yet.
func (s *SettingsService) GetSettings(ctx context.Context, userID uint) (models.UserSettings, error) {
	st, err := s.repo.GetSettings(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return models.DefaultSettings(userID), nil
	}
	return st, err
}

func (s *SettingsService) UpdateSettings(ctx context.Context, userID uint, p SettingsPatch) (models.UserSettings, error) {
	st, err := s.repo.UpdateSettings(ctx, userID, models.DefaultSettings(userID), func(st *models.UserSettings) {
		if p.Theme != nil {
			st.Theme = *p.Theme
		}
		if p.AccentColor != nil {
			st.AccentColor = *p.AccentColor
		}
		if p.CalorieGoal != nil {
			st.CalorieGoal = *p.CalorieGoal
		}
		if p.ProteinGoal != nil {
			st.ProteinGoal = *p.ProteinGoal
		}
		if p.CarbsGoal != nil {
			st.CarbsGoal = *p.CarbsGoal
		}
		if p.FatGoal != nil {
			st.FatGoal = *p.FatGoal
		}
		if p.MeasurementUnit != nil {
			st.MeasurementUnit = *p.MeasurementUnit
		}
		if p.Notifications != nil {
			st.Notifications = *p.Notifications
		}
		if p.Language != nil {
			st.Language = *p.Language
		}
	})
	if err != nil {
		return st, err
	}
	if p.Notifications != nil && s.push != nil {
		if err := s.push.SetEnabled(ctx, userID, *p.Notifications); err != nil {
			return st, err
		}
	}
	return st, nil
}

// initSettings writes the defaults for a new account.
func (s *SettingsService) initSettings(ctx context.Context, userID uint, admin bool) error {
	_, err := s.repo.UpdateSettings(ctx, userID, models.DefaultSettings(userID), func(st *models.UserSettings) {
		st.IsAdmin = admin
	})
	return err
}

func (s *SettingsService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	st, err := s.GetSettings(ctx, userID)
	if err != nil {
		return false, err
	}
	return st.IsAdmin, nil
}
