package models

// ImageSummary is the chat summary placeholder for image-only messages.
const ImageSummary = "📷 Imagen"

// Chat is the private room created for an accepted match. Per-user visibility
// state (mute, soft delete, read) lives in string sets on the item so the
// toggles stay idempotent at the storage layer.
type Chat struct {
	ChatID          string   `dynamodbav:"chatId" json:"chatId"` // ✅ Partition Key
	MatchID         string   `dynamodbav:"matchId" json:"matchId"`
	Participants    []string `dynamodbav:"participants" json:"participants"` // two user ids
	LastMessage     string   `dynamodbav:"lastMessage" json:"lastMessage"`
	LastMessageDate string   `dynamodbav:"lastMessageDate" json:"lastMessageDate"`
	MutedBy         []string `dynamodbav:"mutedBy,stringset,omitemptyelem" json:"mutedBy,omitempty"`
	DeletedBy       []string `dynamodbav:"deletedBy,stringset,omitemptyelem" json:"deletedBy,omitempty"`
	ReadBy          []string `dynamodbav:"readBy,stringset,omitemptyelem" json:"readBy,omitempty"`
	CreatedAt       string   `dynamodbav:"createdAt" json:"createdAt"`
}

// ChatsTable is the DynamoDB table name for chats
const ChatsTable = "Chats"

// HasParticipant reports whether userID is one of the chat's participants.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not userID, or "" if
// userID is not in the chat.
func (c *Chat) OtherParticipant(userID string) string {
	if !c.HasParticipant(userID) {
		return ""
	}
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// IsMutedBy reports whether userID has muted the chat.
func (c *Chat) IsMutedBy(userID string) bool {
	return containsString(c.MutedBy, userID)
}

// IsDeletedBy reports whether userID has soft-deleted the chat.
func (c *Chat) IsDeletedBy(userID string) bool {
	return containsString(c.DeletedBy, userID)
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
