package models

// Realtime event type names, server → client.
const (
	EventTypePresenceUpdate = "presence_update"
	EventTypeTyping         = "typing"
	EventTypeNewMessage     = "new_message"
	EventTypeNewMatch       = "new_match"
	EventTypeMessageDeleted = "message_deleted"
)

// Client → server message types.
const (
	EventTypePresenceJoin = "presence_join"
	EventTypeSubscribe    = "subscribe"
)

// PresenceTopic is the well-known global topic every connection joins.
const PresenceTopic = "global_presence"

// ClientMessage is the envelope for everything a client sends over the socket.
type ClientMessage struct {
	Type   string `json:"type"`
	UserID string `json:"userId,omitempty"`
	ChatID string `json:"chatId,omitempty"`
}

// PresenceUpdateEvent broadcasts the full deduplicated online-user set.
type PresenceUpdateEvent struct {
	Type          string   `json:"type"`
	OnlineUserIDs []string `json:"onlineUserIds"`
}

// TypingEvent relays a typing indicator to a chat topic. Fire and forget.
type TypingEvent struct {
	Type   string `json:"type"`
	ChatID string `json:"chatId"`
	UserID string `json:"userId"`
}

// NewMessageEvent announces a stored message to the chat topic.
type NewMessageEvent struct {
	Type    string  `json:"type"`
	Message Message `json:"message"`
	ChatID  string  `json:"chatId"`
}

// NewMatchEvent announces a freshly created match to both owners.
type NewMatchEvent struct {
	Type  string `json:"type"`
	Match Match  `json:"match"`
}

// MessageDeletedEvent tells connected viewers to scrub a message in place
// instead of re-fetching the log.
type MessageDeletedEvent struct {
	Type               string   `json:"type"`
	ChatID             string   `json:"chatId"`
	MessageID          string   `json:"messageId"`
	DeletedForEveryone bool     `json:"deletedForEveryone"`
	NewContent         string   `json:"newContent"`
	NewImages          []string `json:"newImages"`
}

// PetSummary is the slice of external pet-profile data the matching core
// reads; pet CRUD itself lives outside this service.
type PetSummary struct {
	PetID   string `dynamodbav:"petId" json:"petId"`
	OwnerID string `dynamodbav:"ownerId" json:"ownerId"`
	Name    string `dynamodbav:"name" json:"name"`
	LikedMe bool   `dynamodbav:"-" json:"likedMe"`
}
