package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// NotificationHandler handles notification requests.
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// CreateNotificationRequest represents the request payload for creating a notification.
type CreateNotificationRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Message string `json:"message" binding:"required,min=1,max=1000"`
}

// CreateNotification stores a notification for the current user.
// @Summary     Create a notification
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateNotificationRequest true "Notification"
// @Success     201 {object} models.Notification "Notification created"
// @Failure     422 {object} ErrorResponse "Validation error"
// @Router      /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateNotificationRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	notification, err := h.notificationService.CreateNotification(userID, req.Title, req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// ListNotifications returns the user's notifications, newest first.
// @Summary     List notifications
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       skip  query int false "Rows to skip (default 0)"
// @Param       limit query int false "Maximum rows (default 100, max 1000)"
// @Success     200 {array}  models.Notification "Notifications"
// @Router      /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := bindQuery(c, &page); err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.notificationService.ListNotifications(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// GetNotificationByID returns one notification.
// @Summary     Get a notification
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Notification ID"
// @Success     200 {object} models.Notification "Notification"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id} [get]
func (h *NotificationHandler) GetNotificationByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notificationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notification, err := h.notificationService.GetNotificationByID(userID, notificationID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

// MarkRead flags a notification as read.
// @Summary     Mark a notification read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Notification ID"
// @Success     200 {object} models.Notification "Notification"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notificationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notification, err := h.notificationService.MarkRead(userID, notificationID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

// DeleteNotification removes a notification.
// @Summary     Delete a notification
// @Tags        notifications
// @Security    BearerAuth
// @Param       id path int true "Notification ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	notificationID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.DeleteNotification(userID, notificationID); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
