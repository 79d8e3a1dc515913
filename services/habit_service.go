package services

import (
	"context"
	"errors"
	"time"

	"nutritrack/models"
)

var ErrInvalidHabitStatus = errors.New("status must be active or paused")

var habitStatuses = map[string]bool{"active": true, "paused": true}

type HabitService struct {
	repo HabitRepository
}

func NewHabitService(repo HabitRepository) *HabitService { return &HabitService{repo: repo} }

type HabitInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	Frequency       string `json:"frequency"`
	TimeOfDay       string `json:"time_of_day"`
	BackgroundColor string `json:"background_color"`
}

type HabitPatch struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Type            *string `json:"type"`
	Frequency       *string `json:"frequency"`
	TimeOfDay       *string `json:"time_of_day"`
	Status          *string `json:"status"`
	StreakDays      *int    `json:"streak_days" binding:"omitempty,gte=0"`
	BackgroundColor *string `json:"background_color"`
}

func (s *HabitService) ListHabits(ctx context.Context, userID uint) ([]models.Habit, error) {
	return s.repo.ListHabits(ctx, userID)
}

func (s *HabitService) CreateHabit(ctx context.Context, userID uint, in HabitInput) (models.Habit, error) {
	h := models.Habit{
		UserID:          userID,
		Name:            in.Name,
		Description:     in.Description,
		Type:            in.Type,
		Frequency:       in.Frequency,
		TimeOfDay:       in.TimeOfDay,
		StartDate:       time.Now(),
		Status:          "active",
		BackgroundColor: in.BackgroundColor,
	}
	if h.Type == "" {
		h.Type = "diet"
	}
	if h.Frequency == "" {
		h.Frequency = "daily"
	}
	if h.BackgroundColor == "" {
		h.BackgroundColor = "blue"
	}
	return s.repo.CreateHabit(ctx, h)
}

func (s *HabitService) UpdateHabit(ctx context.Context, userID, habitID uint, p HabitPatch) (models.Habit, error) {
	if p.Status != nil && !habitStatuses[*p.Status] {
		return models.Habit{}, ErrInvalidHabitStatus
	}
	return s.repo.UpdateHabit(ctx, userID, habitID, func(h *models.Habit) error {
		if p.Name != nil {
			h.Name = *p.Name
		}
		if p.Description != nil {
			h.Description = *p.Description
		}
		if p.Type != nil {
			h.Type = *p.Type
		}
		if p.Frequency != nil {
			h.Frequency = *p.Frequency
		}
		if p.TimeOfDay != nil {
			h.TimeOfDay = *p.TimeOfDay
		}
		if p.Status != nil {
			h.Status = *p.Status
		}
		if p.StreakDays != nil {
			h.StreakDays = *p.StreakDays
		}
		if p.BackgroundColor != nil {
			h.BackgroundColor = *p.BackgroundColor
		}
		return nil
	})
}

func (s *HabitService) DeleteHabit(ctx context.Context, userID, habitID uint) (bool, error) {
	return s.repo.DeleteHabit(ctx, userID, habitID)
}
