package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/google/uuid"
)

// MessageService appends, lists, and deletes chat messages and fans out the
// realtime and push side effects of a send.
type MessageService struct {
	Messages    MessageStore
	Chats       ChatStore
	Rooms       *ChatService
	Broadcaster Broadcaster
	Push        Notifier
	Tasks       TaskRunner
}

// Send appends a message to the chat, updates the chat summary, and hands
// the new_message broadcast plus the recipient push to the dispatcher. The
// message is returned as stored.
func (s *MessageService) Send(ctx context.Context, chatID, senderID, content string, images []string) (*models.Message, error) {
	if content == "" && len(images) == 0 {
		return nil, models.NewValidationError("message needs content or at least one image")
	}

	chat, err := s.Chats.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, &models.NotFoundError{Resource: "chat", ID: chatID}
	}
	if !chat.HasParticipant(senderID) {
		return nil, &models.ForbiddenError{Reason: "sender is not a participant of this chat"}
	}

	now := time.Now().UTC()
	msg := models.Message{
		ChatID:    chatID,
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		Images:    images,
		CreatedAt: now.Format(time.RFC3339),
	}
	// Sort key orders by send time; the id fragment breaks same-instant ties.
	msg.SortKey = now.Format(time.RFC3339Nano) + "#" + msg.MessageID[:8]

	if err := s.Messages.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	summary := content
	if summary == "" {
		summary = models.ImageSummary
	}
	if err := s.Chats.UpdateSummary(ctx, chatID, summary, msg.CreatedAt, senderID); err != nil {
		log.Printf("⚠️ Failed to update chat summary for %s: %v", chatID, err)
	}
	// Activity resurfaces the chat for anyone who soft-deleted it.
	for _, participant := range chat.Participants {
		if chat.IsDeletedBy(participant) {
			if err := s.Rooms.Restore(ctx, chatID, participant); err != nil {
				log.Printf("⚠️ Failed to restore chat %s for %s: %v", chatID, participant, err)
			}
		}
	}

	recipient := chat.OtherParticipant(senderID)
	stored := msg
	s.Tasks.Submit("message-fanout", func(ctx context.Context) error {
		s.Broadcaster.Publish(chatID, models.NewMessageEvent{
			Type:    models.EventTypeNewMessage,
			ChatID:  chatID,
			Message: stored,
		})
		if recipient == "" {
			return nil
		}
		return s.Push.Notify(ctx, recipient, "Nuevo mensaje 💬", pushBody(summary), "/dashboard/chats/"+chatID, chatID)
	})

	return &msg, nil
}

// ListForUser returns the chat's messages in send order, hiding the ones
// the user deleted for themselves.
func (s *MessageService) ListForUser(ctx context.Context, chatID, userID string) ([]models.Message, error) {
	chat, err := s.Chats.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, &models.NotFoundError{Resource: "chat", ID: chatID}
	}
	if !chat.HasParticipant(userID) {
		return nil, &models.ForbiddenError{Reason: "user is not a participant of this chat"}
	}

	messages, err := s.Messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	visible := messages[:0]
	for _, m := range messages {
		if m.IsDeletedBy(userID) {
			continue
		}
		visible = append(visible, m)
	}
	return visible, nil
}

// DeleteForMe hides the message from the caller only.
func (s *MessageService) DeleteForMe(ctx context.Context, chatID, messageID, userID string) error {
	chat, err := s.Chats.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if chat == nil {
		return &models.NotFoundError{Resource: "chat", ID: chatID}
	}
	if !chat.HasParticipant(userID) {
		return &models.ForbiddenError{Reason: "user is not a participant of this chat"}
	}

	msg, err := s.requireMessage(ctx, chatID, messageID)
	if err != nil {
		return err
	}
	return s.Messages.AddDeletedBy(ctx, msg, userID)
}

// DeleteForEveryone scrubs the message content for all participants and
// broadcasts the redaction. Only the sender may do this.
func (s *MessageService) DeleteForEveryone(ctx context.Context, chatID, messageID, userID string) error {
	msg, err := s.requireMessage(ctx, chatID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != userID {
		return &models.ForbiddenError{Reason: "only the sender may delete for everyone"}
	}

	if err := s.Messages.ScrubForEveryone(ctx, msg); err != nil {
		return fmt.Errorf("failed to scrub message: %w", err)
	}

	s.Tasks.Submit("message-scrub-fanout", func(ctx context.Context) error {
		s.Broadcaster.Publish(chatID, models.MessageDeletedEvent{
			Type:               models.EventTypeMessageDeleted,
			ChatID:             chatID,
			MessageID:          messageID,
			DeletedForEveryone: true,
			NewContent:         models.DeletedMessageContent,
			NewImages:          []string{},
		})
		return nil
	})
	return nil
}

func (s *MessageService) requireMessage(ctx context.Context, chatID, messageID string) (*models.Message, error) {
	msg, err := s.Messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil || msg.ChatID != chatID {
		return nil, &models.NotFoundError{Resource: "message", ID: messageID}
	}
	return msg, nil
}

// pushBody truncates chat previews so push payloads stay small.
func pushBody(summary string) string {
	runes := []rune(summary)
	if len(runes) <= 50 {
		return summary
	}
	return string(runes[:50]) + "…"
}
