package models

import "time"

// Base contains the columns shared by every row a user owns.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedModels lists the tables whose rows are deleted together with their user.
// Order matters only for readability; nothing references these rows.
func OwnedModels() []interface{} {
	return []interface{}{
		&Transaction{},
		&Budget{},
		&Goal{},
		&Notification{},
		&AuditLog{},
	}
}
