package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// notificationService handles user notifications.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// CreateNotification stores an unread notification for the user.
func (s *notificationService) CreateNotification(userID, title, message string) (*models.Notification, error) {
	n := &models.Notification{
		Base:    models.Base{UserID: userID},
		Title:   title,
		Message: message,
	}
	if err := s.db.Create(n).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return n, nil
}

// GetNotificationByID returns a notification if it belongs to the user.
func (s *notificationService) GetNotificationByID(userID string, notificationID uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &n, nil
}

// ListNotifications returns a page of the user's notifications, newest first.
func (s *notificationService) ListNotifications(userID string, page pagination.PageRequest) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read. Marking it again is a no-op.
func (s *notificationService) MarkRead(userID string, notificationID uint) (*models.Notification, error) {
	n, err := s.GetNotificationByID(userID, notificationID)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}

	if err := s.db.Model(n).Update("read", true).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	n.Read = true
	return n, nil
}

// DeleteNotification removes a notification.
func (s *notificationService) DeleteNotification(userID string, notificationID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", notificationID, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
