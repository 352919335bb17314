package services

import (
	"context"
	"time"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/google/uuid"
)

// NotificationService stores in-app notifications.
type NotificationService struct {
	Notifications NotificationStore
}

// Create stores a notification for the user.
func (s *NotificationService) Create(ctx context.Context, userID, title, message, notificationType string) error {
	now := time.Now().UTC()
	n := models.Notification{
		UserID:         userID,
		NotificationID: uuid.NewString(),
		Title:          title,
		Message:        message,
		Type:           notificationType,
		CreatedAt:      now.Format(time.RFC3339),
	}
	n.SortKey = now.Format(time.RFC3339Nano) + "#" + n.NotificationID[:8]
	return s.Notifications.Insert(ctx, n)
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.Notifications.ListForUser(ctx, userID)
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	found, err := s.Notifications.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return &models.NotFoundError{Resource: "notification", ID: notificationID}
	}
	return nil
}
