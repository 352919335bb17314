package services

import (
	"context"
	"errors"
	"testing"

	"github.com/11Rojas/mascoticas-backend/models"
)

func seedChat(chats *fakeChatStore, chatID string, participants ...string) {
	chats.Insert(context.Background(), models.Chat{
		ChatID:       chatID,
		Participants: participants,
	})
}

func TestChatGetChecksMembership(t *testing.T) {
	chats := newFakeChatStore()
	svc := &ChatService{Chats: chats, Directory: newFakeDirectory()}
	ctx := context.Background()
	seedChat(chats, "chat-1", "user-a", "user-b")

	if _, err := svc.Get(ctx, "chat-1", "user-a"); err != nil {
		t.Fatalf("participant get: %v", err)
	}

	var forbidden *models.ForbiddenError
	if _, err := svc.Get(ctx, "chat-1", "user-z"); !errors.As(err, &forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	var notFound *models.NotFoundError
	if _, err := svc.Get(ctx, "chat-404", "user-a"); !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListVisibleFiltersAndSorts(t *testing.T) {
	chats := newFakeChatStore()
	directory := newFakeDirectory()
	svc := &ChatService{Chats: chats, Directory: directory}
	ctx := context.Background()

	seedChat(chats, "chat-old", "user-a", "user-b")
	seedChat(chats, "chat-new", "user-a", "user-c")
	seedChat(chats, "chat-hidden", "user-a", "user-d")
	seedChat(chats, "chat-blocked", "user-a", "user-e")
	chats.UpdateSummary(ctx, "chat-old", "hola", "2026-01-01T00:00:00Z", "user-b")
	chats.UpdateSummary(ctx, "chat-new", "hey", "2026-02-01T00:00:00Z", "user-c")
	chats.AddToSet(ctx, "chat-hidden", ChatSetDeletedBy, "user-a")
	directory.blocked["user-a"] = []string{"user-e"}

	visible, err := svc.ListVisible(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible chats, got %+v", visible)
	}
	if visible[0].ChatID != "chat-new" || visible[1].ChatID != "chat-old" {
		t.Fatalf("wrong order: %s, %s", visible[0].ChatID, visible[1].ChatID)
	}
}

func TestListVisibleHonorsReverseBlock(t *testing.T) {
	chats := newFakeChatStore()
	directory := newFakeDirectory()
	svc := &ChatService{Chats: chats, Directory: directory}
	ctx := context.Background()

	seedChat(chats, "chat-1", "user-a", "user-b")
	directory.blocked["user-b"] = []string{"user-a"}

	visible, err := svc.ListVisible(ctx, "user-a")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("blocked-by chat should be hidden, got %+v", visible)
	}
}

func TestMuteToggleIsIdempotent(t *testing.T) {
	chats := newFakeChatStore()
	svc := &ChatService{Chats: chats, Directory: newFakeDirectory()}
	ctx := context.Background()
	seedChat(chats, "chat-1", "user-a", "user-b")

	for i := 0; i < 2; i++ {
		if err := svc.SetMuted(ctx, "chat-1", "user-a", true); err != nil {
			t.Fatalf("mute %d: %v", i, err)
		}
	}
	muted, err := svc.IsMutedFor(ctx, "chat-1", "user-a")
	if err != nil || !muted {
		t.Fatalf("expected muted, got %v %v", muted, err)
	}

	chat, _ := chats.Get(ctx, "chat-1")
	if len(chat.MutedBy) != 1 {
		t.Fatalf("mute set grew on repeat: %v", chat.MutedBy)
	}

	if err := svc.SetMuted(ctx, "chat-1", "user-a", false); err != nil {
		t.Fatalf("unmute: %v", err)
	}
	muted, _ = svc.IsMutedFor(ctx, "chat-1", "user-a")
	if muted {
		t.Fatal("expected unmuted")
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	chats := newFakeChatStore()
	svc := &ChatService{Chats: chats, Directory: newFakeDirectory()}
	ctx := context.Background()
	seedChat(chats, "chat-1", "user-a", "user-b")

	if err := svc.SetDeletedForUser(ctx, "chat-1", "user-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	chat, _ := chats.Get(ctx, "chat-1")
	if !chat.IsDeletedBy("user-a") {
		t.Fatal("delete flag missing")
	}
	if chat.IsDeletedBy("user-b") {
		t.Fatal("other participant affected")
	}

	if err := svc.Restore(ctx, "chat-1", "user-a"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	chat, _ = chats.Get(ctx, "chat-1")
	if chat.IsDeletedBy("user-a") {
		t.Fatal("restore did not clear the flag")
	}
}

func TestIsMutedForMissingChatFailsOpen(t *testing.T) {
	svc := &ChatService{Chats: newFakeChatStore(), Directory: newFakeDirectory()}
	muted, err := svc.IsMutedFor(context.Background(), "chat-404", "user-a")
	if err != nil {
		t.Fatalf("IsMutedFor: %v", err)
	}
	if muted {
		t.Fatal("missing chat must read as unmuted")
	}
}
