package models

// ✅ Notification kinds
const (
	NotificationTypeMatch     = "match"
	NotificationTypeMessage   = "message"
	NotificationTypeSystem    = "system"
	NotificationTypePromotion = "promotion"
)

// Notification is a persistent entry in a user's notification feed. Only
// IsRead is ever mutated after creation.
type Notification struct {
	UserID         string `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	SortKey        string `dynamodbav:"sk" json:"-"`          // ✅ Sort Key: createdAt + "#" + id
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	Title          string `dynamodbav:"title" json:"title"`
	Message        string `dynamodbav:"message" json:"message"`
	Type           string `dynamodbav:"type" json:"type"`
	IsRead         bool   `dynamodbav:"isRead" json:"isRead"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"
