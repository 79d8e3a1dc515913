package models

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	ResetToken    string    `gorm:"size:16;index" json:"-"`
	ResetTokenExp time.Time `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
