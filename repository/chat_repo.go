package repository

import (
	"context"
	"fmt"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ChatRepo persists chats keyed by chatId. Mute/delete/read flags are string
// sets on the item; ADD and DELETE on a string set are naturally idempotent,
// which is what keeps the per-user toggles safe to retry.
type ChatRepo struct {
	Dynamo *Dynamo
}

func chatKey(chatID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
	}
}

// Insert stores a freshly created chat.
func (r *ChatRepo) Insert(ctx context.Context, chat models.Chat) error {
	return r.Dynamo.PutItem(ctx, models.ChatsTable, chat)
}

// Get returns the chat, or nil when the id is unknown.
func (r *ChatRepo) Get(ctx context.Context, chatID string) (*models.Chat, error) {
	item, err := r.Dynamo.GetItem(ctx, models.ChatsTable, chatKey(chatID))
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var chat models.Chat
	if err := attributevalue.UnmarshalMap(item, &chat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat: %w", err)
	}
	return &chat, nil
}

// ListByParticipant returns every chat the user participates in.
func (r *ChatRepo) ListByParticipant(ctx context.Context, userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := r.Dynamo.ScanItems(ctx, models.ChatsTable,
		"contains(participants, :user)",
		map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		}, nil, &chats)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats for user: %w", err)
	}
	return chats, nil
}

// UpdateSummary sets the last-message summary and resets readBy to only the
// sender, which is what flags the chat unread for the recipient.
func (r *ChatRepo) UpdateSummary(ctx context.Context, chatID, summary, at, senderID string) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.ChatsTable,
		"SET lastMessage = :summary, lastMessageDate = :at, readBy = :readBy",
		chatKey(chatID),
		map[string]types.AttributeValue{
			":summary": &types.AttributeValueMemberS{Value: summary},
			":at":      &types.AttributeValueMemberS{Value: at},
			":readBy":  &types.AttributeValueMemberSS{Value: []string{senderID}},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to update chat summary: %w", err)
	}
	return nil
}

// AddToSet adds userID to one of the chat's string sets. Idempotent.
func (r *ChatRepo) AddToSet(ctx context.Context, chatID, attribute, userID string) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.ChatsTable,
		"ADD #attr :user",
		chatKey(chatID),
		map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberSS{Value: []string{userID}},
		},
		map[string]string{"#attr": attribute})
	if err != nil {
		return fmt.Errorf("failed to add %s to chat set %s: %w", userID, attribute, err)
	}
	return nil
}

// RemoveFromSet removes userID from one of the chat's string sets. Idempotent.
func (r *ChatRepo) RemoveFromSet(ctx context.Context, chatID, attribute, userID string) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.ChatsTable,
		"DELETE #attr :user",
		chatKey(chatID),
		map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberSS{Value: []string{userID}},
		},
		map[string]string{"#attr": attribute})
	if err != nil {
		return fmt.Errorf("failed to remove %s from chat set %s: %w", userID, attribute, err)
	}
	return nil
}

// Delete removes the chat row. Unmatch and cascading deletion only.
func (r *ChatRepo) Delete(ctx context.Context, chatID string) error {
	return r.Dynamo.DeleteItem(ctx, models.ChatsTable, chatKey(chatID))
}
