package models

import (
	"time"

	"fintrack/internal/uuid"

	"gorm.io/gorm"
)

// Role values carried in user records and token claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultCurrency is assigned to new users.
const DefaultCurrency = "USD"

// User represents an account holder. Its ledger rows reference it by UserID.
type User struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName       string    `gorm:"size:255;not null" json:"full_name"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	Role           string    `gorm:"size:50;not null" json:"role"`
	Currency       string    `gorm:"size:3;not null" json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 and fills defaults for new users
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Currency == "" {
		u.Currency = DefaultCurrency
	}
	return nil
}
