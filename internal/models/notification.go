package models

// Notification is a message addressed to a single user.
type Notification struct {
	Base
	Title   string `gorm:"size:255;not null" json:"title"`
	Message string `gorm:"size:1000;not null" json:"message"`
	Read    bool   `gorm:"not null" json:"read"`
}
