package repository

import (
	"context"
	"fmt"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MessageRepo persists chat messages keyed by (chatId, sk) where sk orders
// messages by creation time within the chat.
type MessageRepo struct {
	Dynamo *Dynamo
}

func messageKey(chatID, sortKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"chatId": &types.AttributeValueMemberS{Value: chatID},
		"sk":     &types.AttributeValueMemberS{Value: sortKey},
	}
}

// Insert appends a message to the chat's log.
func (r *MessageRepo) Insert(ctx context.Context, message models.Message) error {
	return r.Dynamo.PutItem(ctx, models.MessagesTable, message)
}

// ListByChat returns the chat's messages in ascending creation order.
func (r *MessageRepo) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	items, err := r.Dynamo.QueryItems(ctx, models.MessagesTable,
		"chatId = :chat",
		map[string]types.AttributeValue{
			":chat": &types.AttributeValueMemberS{Value: chatID},
		}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}

// GetByID looks a message up through the messageId GSI, or nil.
func (r *MessageRepo) GetByID(ctx context.Context, messageID string) (*models.Message, error) {
	items, err := r.Dynamo.QueryItemsWithIndex(ctx, models.MessagesTable, models.MessageIDIndex,
		"messageId = :id",
		map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: messageID},
		}, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query message by id: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var message models.Message
	if err := attributevalue.UnmarshalMap(items[0], &message); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &message, nil
}

// AddDeletedBy hides the message for one user. Idempotent set add.
func (r *MessageRepo) AddDeletedBy(ctx context.Context, message *models.Message, userID string) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.MessagesTable,
		"ADD deletedBy :user",
		messageKey(message.ChatID, message.SortKey),
		map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberSS{Value: []string{userID}},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to hide message for user: %w", err)
	}
	return nil
}

// ScrubForEveryone irreversibly replaces content, empties images and flags
// the message deleted for all readers.
func (r *MessageRepo) ScrubForEveryone(ctx context.Context, message *models.Message) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.MessagesTable,
		"SET content = :content, images = :images, deletedForEveryone = :flag",
		messageKey(message.ChatID, message.SortKey),
		map[string]types.AttributeValue{
			":content": &types.AttributeValueMemberS{Value: models.DeletedMessageContent},
			":images":  &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":flag":    &types.AttributeValueMemberBOOL{Value: true},
		}, nil)
	if err != nil {
		return fmt.Errorf("failed to scrub message: %w", err)
	}
	return nil
}

// DeleteAllForChat removes the chat's entire message log. Cascading deletion.
func (r *MessageRepo) DeleteAllForChat(ctx context.Context, chatID string) error {
	messages, err := r.ListByChat(ctx, chatID)
	if err != nil {
		return err
	}

	var requests []types.WriteRequest
	for _, m := range messages {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: messageKey(m.ChatID, m.SortKey)},
		})
	}
	if len(requests) == 0 {
		return nil
	}
	return r.Dynamo.BatchWriteItems(ctx, models.MessagesTable, requests)
}
