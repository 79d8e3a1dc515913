package models

// UserSettings holds display preferences and the daily macro targets.
type UserSettings struct {
	UserID          uint    `gorm:"primaryKey" json:"-"`
	Theme           string  `gorm:"size:16" json:"theme"`
	AccentColor     string  `gorm:"size:16" json:"accent_color"`
	CalorieGoal     float64 `json:"calorie_goal"`  // kcal
	ProteinGoal     float64 `json:"protein_goal"`  // g
	CarbsGoal       float64 `json:"carbs_goal"`    // g
	FatGoal         float64 `json:"fat_goal"`      // g
	MeasurementUnit string  `gorm:"size:16" json:"measurement_unit"`
	Notifications   bool    `json:"notifications"`
	Language        string  `gorm:"size:16" json:"language"`
	IsAdmin         bool    `json:"is_admin"`
}

func DefaultSettings(userID uint) UserSettings {
	return UserSettings{
		UserID:          userID,
		Theme:           "light",
		AccentColor:     "blue",
		CalorieGoal:     2000,
		ProteinGoal:     150,
		CarbsGoal:       200,
		FatGoal:         65,
		MeasurementUnit: "metric",
		Notifications:   true,
		Language:        "english",
	}
}
