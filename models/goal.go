package models

type Goal struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	Name      string  `json:"name"`
	Current   float64 `json:"current"`
	Target    float64 `json:"target"`
	Unit      string  `gorm:"size:16" json:"unit"`
	Color     string  `gorm:"size:32" json:"color"`
	Completed bool    `json:"completed"`
}

type Challenge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Current     int    `json:"current"`
	Target      int    `json:"target"`
	BgColor     string `gorm:"size:64" json:"bg_color"`
}
