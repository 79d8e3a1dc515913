package models

import "time"

type Habit struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description"`
	Type            string    `gorm:"size:32;default:diet" json:"type"`
	Frequency       string    `gorm:"size:32" json:"frequency"`
	TimeOfDay       string    `gorm:"size:32" json:"time_of_day"`
	StartDate       time.Time `gorm:"not null" json:"start_date"`
	Status          string    `gorm:"size:16;default:active" json:"status"` // "active" | "paused"
	StreakDays      int       `json:"streak_days"`
	BackgroundColor string    `gorm:"size:32;default:blue" json:"background_color"`
}
