package models

// DeletedMessageContent replaces the content of a message deleted for everyone.
const DeletedMessageContent = "Este mensaje fue eliminado"

// Message is one entry in a chat's append-only log. SortKey orders messages by
// creation time within the chat; MessageID is the stable public identifier.
type Message struct {
	ChatID             string   `dynamodbav:"chatId" json:"chatId"` // ✅ Partition Key
	SortKey            string   `dynamodbav:"sk" json:"-"`          // ✅ Sort Key: createdAt + "#" + id fragment
	MessageID          string   `dynamodbav:"messageId" json:"messageId"`
	SenderID           string   `dynamodbav:"senderId" json:"senderId"`
	Content            string   `dynamodbav:"content" json:"content"`
	Images             []string `dynamodbav:"images,omitemptyelem" json:"images"`
	DeletedBy          []string `dynamodbav:"deletedBy,stringset,omitemptyelem" json:"deletedBy,omitempty"`
	DeletedForEveryone bool     `dynamodbav:"deletedForEveryone" json:"deletedForEveryone"`
	CreatedAt          string   `dynamodbav:"createdAt" json:"createdAt"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"

// MessageIDIndex is the GSI used to look up a message by its id
const MessageIDIndex = "messageId-index"

// IsDeletedBy reports whether userID has hidden this message for themselves.
func (m *Message) IsDeletedBy(userID string) bool {
	return containsString(m.DeletedBy, userID)
}
