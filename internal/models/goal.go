package models

// Goal is a savings target. Completed flips to true once CurrentAmount
// reaches TargetAmount and is never cleared automatically.
type Goal struct {
	Base
	Name          string  `gorm:"size:255;not null" json:"name"`
	TargetAmount  float64 `gorm:"not null" json:"target_amount"`
	CurrentAmount float64 `gorm:"not null" json:"current_amount"`
	Deadline      Date    `gorm:"type:date;not null" json:"deadline"`
	Completed     bool    `gorm:"not null" json:"completed"`
}
