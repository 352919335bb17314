package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/11Rojas/mascoticas-backend/models"
)

func newMessageFixture() (*MessageService, *fakeChatStore, *fakeMessageStore, *fakeBroadcaster, *fakeNotifier) {
	chats := newFakeChatStore()
	messages := newFakeMessageStore()
	broadcaster := newFakeBroadcaster()
	notifier := &fakeNotifier{}
	svc := &MessageService{
		Messages:    messages,
		Chats:       chats,
		Rooms:       &ChatService{Chats: chats, Directory: newFakeDirectory()},
		Broadcaster: broadcaster,
		Push:        notifier,
		Tasks:       syncRunner{},
	}
	seedChat(chats, "chat-1", "user-a", "user-b")
	return svc, chats, messages, broadcaster, notifier
}

func TestSendValidations(t *testing.T) {
	svc, _, _, _, _ := newMessageFixture()
	ctx := context.Background()

	var validation *models.ValidationError
	if _, err := svc.Send(ctx, "chat-1", "user-a", "", nil); !errors.As(err, &validation) {
		t.Fatalf("empty message: expected validation error, got %v", err)
	}
	var notFound *models.NotFoundError
	if _, err := svc.Send(ctx, "chat-404", "user-a", "hola", nil); !errors.As(err, &notFound) {
		t.Fatalf("missing chat: expected not found, got %v", err)
	}
	var forbidden *models.ForbiddenError
	if _, err := svc.Send(ctx, "chat-1", "user-z", "hola", nil); !errors.As(err, &forbidden) {
		t.Fatalf("outsider: expected forbidden, got %v", err)
	}
}

func TestSendUpdatesSummaryAndFansOut(t *testing.T) {
	svc, chats, _, broadcaster, notifier := newMessageFixture()
	ctx := context.Background()

	msg, err := svc.Send(ctx, "chat-1", "user-a", "hola Luna", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.MessageID == "" || msg.SortKey == "" {
		t.Fatalf("message keys missing: %+v", msg)
	}

	chat, _ := chats.Get(ctx, "chat-1")
	if chat.LastMessage != "hola Luna" {
		t.Fatalf("summary not updated: %q", chat.LastMessage)
	}
	// Read state resets to just the sender on every send.
	if len(chat.ReadBy) != 1 || chat.ReadBy[0] != "user-a" {
		t.Fatalf("readBy not reset: %v", chat.ReadBy)
	}

	events := broadcaster.topicEvents("chat-1")
	if len(events) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(events))
	}
	evt, ok := events[0].(models.NewMessageEvent)
	if !ok || evt.Type != models.EventTypeNewMessage || evt.Message.MessageID != msg.MessageID {
		t.Fatalf("unexpected event: %+v", events[0])
	}

	pushes := notifier.pushes()
	if len(pushes) != 1 || pushes[0].UserID != "user-b" || pushes[0].ChatID != "chat-1" {
		t.Fatalf("expected push to the recipient, got %+v", pushes)
	}
}

func TestSendImageOnlyUsesPlaceholderSummary(t *testing.T) {
	svc, chats, _, _, notifier := newMessageFixture()
	ctx := context.Background()

	if _, err := svc.Send(ctx, "chat-1", "user-a", "", []string{"chat-images/1.jpg"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	chat, _ := chats.Get(ctx, "chat-1")
	if chat.LastMessage != models.ImageSummary {
		t.Fatalf("expected %q summary, got %q", models.ImageSummary, chat.LastMessage)
	}
	pushes := notifier.pushes()
	if len(pushes) != 1 || pushes[0].Body != models.ImageSummary {
		t.Fatalf("push body should carry the placeholder, got %+v", pushes)
	}
}

func TestSendTruncatesPushBody(t *testing.T) {
	svc, _, _, _, notifier := newMessageFixture()
	long := strings.Repeat("a", 120)

	if _, err := svc.Send(context.Background(), "chat-1", "user-a", long, nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	body := notifier.pushes()[0].Body
	if len([]rune(body)) != 51 || !strings.HasSuffix(body, "…") {
		t.Fatalf("expected 50 runes plus ellipsis, got %q (%d runes)", body, len([]rune(body)))
	}
}

func TestSendRestoresSoftDeletedChat(t *testing.T) {
	svc, chats, _, _, _ := newMessageFixture()
	ctx := context.Background()
	chats.AddToSet(ctx, "chat-1", ChatSetDeletedBy, "user-b")

	if _, err := svc.Send(ctx, "chat-1", "user-a", "hola", nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	chat, _ := chats.Get(ctx, "chat-1")
	if chat.IsDeletedBy("user-b") {
		t.Fatal("new activity should resurface the chat for user-b")
	}
}

func TestDeleteForMeHidesOnlyForCaller(t *testing.T) {
	svc, _, _, _, _ := newMessageFixture()
	ctx := context.Background()

	msg, err := svc.Send(ctx, "chat-1", "user-a", "hola", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := svc.DeleteForMe(ctx, "chat-1", msg.MessageID, "user-b"); err != nil {
		t.Fatalf("DeleteForMe: %v", err)
	}

	forB, _ := svc.ListForUser(ctx, "chat-1", "user-b")
	if len(forB) != 0 {
		t.Fatalf("user-b still sees the message: %+v", forB)
	}
	forA, _ := svc.ListForUser(ctx, "chat-1", "user-a")
	if len(forA) != 1 || forA[0].Content != "hola" {
		t.Fatalf("user-a's view changed: %+v", forA)
	}
}

func TestDeleteForMeRejectsOutsider(t *testing.T) {
	svc, _, _, _, _ := newMessageFixture()
	ctx := context.Background()

	msg, err := svc.Send(ctx, "chat-1", "user-a", "hola", nil)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	var forbidden *models.ForbiddenError
	if err := svc.DeleteForMe(ctx, "chat-1", msg.MessageID, "user-z"); !errors.As(err, &forbidden) {
		t.Fatalf("expected forbidden for non-participant, got %v", err)
	}

	// Nothing was hidden.
	for _, user := range []string{"user-a", "user-b"} {
		visible, _ := svc.ListForUser(ctx, "chat-1", user)
		if len(visible) != 1 {
			t.Fatalf("%s lost sight of the message: %+v", user, visible)
		}
	}
}

func TestDeleteForEveryoneScrubsAndBroadcasts(t *testing.T) {
	svc, _, _, broadcaster, _ := newMessageFixture()
	ctx := context.Background()

	msg, err := svc.Send(ctx, "chat-1", "user-a", "secreto", []string{"chat-images/1.jpg"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	// Only the sender may scrub.
	var forbidden *models.ForbiddenError
	if err := svc.DeleteForEveryone(ctx, "chat-1", msg.MessageID, "user-b"); !errors.As(err, &forbidden) {
		t.Fatalf("expected forbidden for non-sender, got %v", err)
	}

	if err := svc.DeleteForEveryone(ctx, "chat-1", msg.MessageID, "user-a"); err != nil {
		t.Fatalf("DeleteForEveryone: %v", err)
	}

	forB, _ := svc.ListForUser(ctx, "chat-1", "user-b")
	if len(forB) != 1 {
		t.Fatalf("scrubbed message should stay visible, got %+v", forB)
	}
	if forB[0].Content != models.DeletedMessageContent || !forB[0].DeletedForEveryone {
		t.Fatalf("message not scrubbed: %+v", forB[0])
	}
	if len(forB[0].Images) != 0 {
		t.Fatalf("images not scrubbed: %v", forB[0].Images)
	}

	events := broadcaster.topicEvents("chat-1")
	last := events[len(events)-1]
	evt, ok := last.(models.MessageDeletedEvent)
	if !ok || evt.MessageID != msg.MessageID || !evt.DeletedForEveryone {
		t.Fatalf("unexpected scrub event: %+v", last)
	}
	if evt.NewContent != models.DeletedMessageContent {
		t.Fatalf("scrub event content %q", evt.NewContent)
	}
}

func TestDeleteUnknownMessage(t *testing.T) {
	svc, _, _, _, _ := newMessageFixture()
	var notFound *models.NotFoundError
	if err := svc.DeleteForMe(context.Background(), "chat-1", "missing", "user-a"); !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
