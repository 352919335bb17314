package models

// PushSubscription is one registered device endpoint for a user. A user has
// 0..N of these, deduplicated by endpoint.
type PushSubscription struct {
	UserID    string `dynamodbav:"userId" json:"userId"`     // ✅ Partition Key
	Endpoint  string `dynamodbav:"endpoint" json:"endpoint"` // ✅ Sort Key
	P256dh    string `dynamodbav:"p256dh" json:"p256dh"`
	Auth      string `dynamodbav:"auth" json:"auth"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// PushSubscriptionsTable is the DynamoDB table name for push subscriptions
const PushSubscriptionsTable = "PushSubscriptions"

// Valid reports whether the subscription carries everything web push needs.
func (s *PushSubscription) Valid() bool {
	return s.UserID != "" && s.Endpoint != "" && s.P256dh != "" && s.Auth != ""
}

// PushPayload is the JSON document delivered to each subscribed device.
type PushPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	URL     string `json:"url"`
	ChatID  string `json:"chatId,omitempty"`
}
