package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NotificationRepo persists per-user notification feeds.
type NotificationRepo struct {
	Dynamo *Dynamo
}

// Insert stores a notification.
func (r *NotificationRepo) Insert(ctx context.Context, notification models.Notification) error {
	return r.Dynamo.PutItem(ctx, models.NotificationsTable, notification)
}

// ListForUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	items, err := r.Dynamo.QueryItems(ctx, models.NotificationsTable,
		"userId = :user",
		map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].SortKey > notifications[j].SortKey
	})
	return notifications, nil
}

// MarkRead flips isRead on one notification owned by userID. Returns nil
// together with a false found flag when the id is unknown for this user.
func (r *NotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	notifications, err := r.ListForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, n := range notifications {
		if n.NotificationID != notificationID {
			continue
		}
		_, err := r.Dynamo.UpdateItem(ctx, models.NotificationsTable,
			"SET isRead = :read",
			map[string]types.AttributeValue{
				"userId": &types.AttributeValueMemberS{Value: userID},
				"sk":     &types.AttributeValueMemberS{Value: n.SortKey},
			},
			map[string]types.AttributeValue{
				":read": &types.AttributeValueMemberBOOL{Value: true},
			}, nil)
		if err != nil {
			return false, fmt.Errorf("failed to mark notification read: %w", err)
		}
		return true, nil
	}
	return false, nil
}
