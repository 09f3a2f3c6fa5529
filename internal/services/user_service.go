package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/security"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

var _ PasswordHasher = (*security.PasswordHasher)(nil)

// userService handles user-related business logic.
type userService struct {
	db     *gorm.DB
	hasher PasswordHasher
	// dummyHash is verified against when a login names an unknown email so
	// both failure paths do the same amount of work.
	dummyHash string
}

// fallbackDummyHash is a well-formed stored hash that matches no password.
var fallbackDummyHash = fmt.Sprintf("%d$%s$%s",
	security.DefaultIterations, strings.Repeat("00", 16), strings.Repeat("00", 32))

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, hasher PasswordHasher) UserServicer {
	dummy, err := hasher.Hash("fintrack-dummy-password")
	if err != nil {
		logger.Get().Warnw("dummy password hash failed, using fallback", "error", err)
		dummy = fallbackDummyHash
	}
	return &userService{db: db, hasher: hasher, dummyHash: dummy}
}

// CreateUser registers a new user
func (s *userService) CreateUser(email, fullName, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:          email,
		FullName:       strings.TrimSpace(fullName),
		HashedPassword: hashed,
	}

	if err := s.db.Create(user).Error; err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// AttemptLogin returns the user whose email and password match. Unknown
// emails and wrong passwords produce the same error.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// ListUsers returns users in registration order.
func (s *userService) ListUsers(page pagination.PageRequest) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.Order("created_at ASC, id ASC").Scopes(pagination.Paginate(page)).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// UpdateUser applies the fields present in p.
func (s *userService) UpdateUser(id string, p UserPatch) (*models.User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	changed := p.FullName.Apply(&user.FullName)
	if p.Currency.Apply(&user.Currency) {
		user.Currency = strings.ToUpper(user.Currency)
		changed = true
	}

	if changed {
		if err := s.db.Save(user).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return user, nil
}

// DeleteUser removes the user and every row they own in one transaction.
func (s *userService) DeleteUser(id string) error {
	if _, err := s.GetUserByID(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range models.OwnedModels() {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// The audit table is emptied with the user, so the deletion is only logged.
	logger.Get().Infow("user deleted", "user_id", id)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
