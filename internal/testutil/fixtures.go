package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/security"

	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Hasher returns a password hasher with a low work factor for fast tests.
func Hasher() *security.PasswordHasher {
	return &security.PasswordHasher{Iterations: 1000}
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := Hasher().Hash(TestPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          email,
		FullName:       "Test User",
		HashedPassword: hash,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates a user with the admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote test user: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

// CreateTestTransaction creates a transaction in the given category on date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64, category string, date models.Date) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Base:     models.Base{UserID: userID},
		Amount:   amount,
		Type:     txType,
		Category: category,
		Method:   models.DefaultPaymentMethod,
		Date:     date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a monthly budget for category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, category string, limit float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Base:        models.Base{UserID: userID},
		Category:    category,
		LimitAmount: limit,
		Period:      models.BudgetPeriodMonthly,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates a goal due 90 days from now.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, current float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Base:          models.Base{UserID: userID},
		Name:          fmt.Sprintf("Goal %d", nextID()),
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      models.DateOf(time.Now().AddDate(0, 0, 90)),
		Completed:     current >= target,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestNotification creates an unread notification.
func CreateTestNotification(t *testing.T, db *gorm.DB, userID string) *models.Notification {
	t.Helper()

	n := &models.Notification{
		Base:    models.Base{UserID: userID},
		Title:   fmt.Sprintf("Notice %d", nextID()),
		Message: "Something happened",
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}

// MustDate parses a YYYY-MM-DD literal.
func MustDate(t *testing.T, s string) models.Date {
	t.Helper()

	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("invalid date %q: %v", s, err)
	}
	return d
}
