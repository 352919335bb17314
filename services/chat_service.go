package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/11Rojas/mascoticas-backend/models"
)

// ChatService owns chat room state: listing, per-user visibility, mute and
// read flags. Message content is MessageService's concern.
type ChatService struct {
	Chats     ChatStore
	Directory ProfileDirectory
}

// Get loads a chat and verifies the caller participates in it.
func (s *ChatService) Get(ctx context.Context, chatID, userID string) (*models.Chat, error) {
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
	return chat, nil
}

// ListVisible returns the user's chats, newest activity first. Chats the
// user soft-deleted and chats whose other participant is on the user's
// block list (or blocks the user) are filtered out.
func (s *ChatService) ListVisible(ctx context.Context, userID string) ([]models.Chat, error) {
	chats, err := s.Chats.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	blocked, err := s.Directory.BlockedUsers(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Failed to load block list for %s: %v", userID, err)
		blocked = nil
	}
	blockedSet := make(map[string]struct{}, len(blocked))
	for _, b := range blocked {
		blockedSet[b] = struct{}{}
	}

	visible := chats[:0]
	for _, chat := range chats {
		if chat.IsDeletedBy(userID) {
			continue
		}
		other := chat.OtherParticipant(userID)
		if _, isBlocked := blockedSet[other]; isBlocked {
			continue
		}
		if other != "" {
			theirBlocks, err := s.Directory.BlockedUsers(ctx, other)
			if err == nil && containsString(theirBlocks, userID) {
				continue
			}
		}
		visible = append(visible, chat)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].LastMessageDate > visible[j].LastMessageDate
	})
	return visible, nil
}

// SetMuted adds or removes the user from the chat's mute set. Both
// operations are idempotent set writes.
func (s *ChatService) SetMuted(ctx context.Context, chatID, userID string, muted bool) error {
	if _, err := s.Get(ctx, chatID, userID); err != nil {
		return err
	}
	if muted {
		return s.Chats.AddToSet(ctx, chatID, ChatSetMutedBy, userID)
	}
	return s.Chats.RemoveFromSet(ctx, chatID, ChatSetMutedBy, userID)
}

// SetDeletedForUser hides the chat from the user's list without touching
// the other participant's view or the stored messages.
func (s *ChatService) SetDeletedForUser(ctx context.Context, chatID, userID string) error {
	if _, err := s.Get(ctx, chatID, userID); err != nil {
		return err
	}
	return s.Chats.AddToSet(ctx, chatID, ChatSetDeletedBy, userID)
}

// Restore undoes a per-user soft delete, typically when new activity
// arrives in a hidden chat.
func (s *ChatService) Restore(ctx context.Context, chatID, userID string) error {
	return s.Chats.RemoveFromSet(ctx, chatID, ChatSetDeletedBy, userID)
}

// MarkRead records that the user has seen the latest message.
func (s *ChatService) MarkRead(ctx context.Context, chatID, userID string) error {
	if _, err := s.Get(ctx, chatID, userID); err != nil {
		return err
	}
	return s.Chats.AddToSet(ctx, chatID, ChatSetReadBy, userID)
}

// IsMutedFor reports whether the user muted the chat. Missing chats read
// as unmuted so push delivery fails open.
func (s *ChatService) IsMutedFor(ctx context.Context, chatID, userID string) (bool, error) {
	chat, err := s.Chats.Get(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("failed to load chat %s: %w", chatID, err)
	}
	if chat == nil {
		return false, nil
	}
	return chat.IsMutedBy(userID), nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
