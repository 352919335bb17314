package services

import (
	"context"
	"errors"
	"testing"

	"github.com/11Rojas/mascoticas-backend/models"
)

func newPushFixture() (*PushService, *fakeSubscriptionStore, *fakeChatStore) {
	subs := newFakeSubscriptionStore()
	chats := newFakeChatStore()
	svc := &PushService{
		Subscriptions:   subs,
		Chats:           chats,
		VAPIDPublicKey:  "test-public",
		VAPIDPrivateKey: "test-private",
		Subscriber:      "mailto:test@example.com",
	}
	return svc, subs, chats
}

func TestRegisterSubscriptionValidation(t *testing.T) {
	svc, _, _ := newPushFixture()

	var validation *models.ValidationError
	err := svc.RegisterSubscription(context.Background(), models.PushSubscription{UserID: "user-a"})
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterSubscriptionDeduplicates(t *testing.T) {
	svc, subs, _ := newPushFixture()
	ctx := context.Background()

	sub := models.PushSubscription{
		UserID:   "user-a",
		Endpoint: "https://push.example.com/abc",
		P256dh:   "key",
		Auth:     "auth",
	}
	if err := svc.RegisterSubscription(ctx, sub); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.RegisterSubscription(ctx, sub); err != nil {
		t.Fatalf("repeat register: %v", err)
	}
	stored, _ := subs.ListForUser(ctx, "user-a")
	if len(stored) != 1 {
		t.Fatalf("expected 1 subscription, got %d", len(stored))
	}
}

func TestNotifySuppressedWhenChatMuted(t *testing.T) {
	svc, subs, chats := newPushFixture()
	ctx := context.Background()

	seedChat(chats, "chat-1", "user-a", "user-b")
	chats.AddToSet(ctx, "chat-1", ChatSetMutedBy, "user-b")
	subs.Add(ctx, models.PushSubscription{
		UserID: "user-b", Endpoint: "https://push.example.com/b", P256dh: "k", Auth: "a",
	})

	before := subs.listCount()
	if err := svc.Notify(ctx, "user-b", "Nuevo mensaje 💬", "hola", "/chats/chat-1", "chat-1"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	// The mute check must short-circuit before devices are even looked up.
	if got := subs.listCount() - before; got != 0 {
		t.Fatalf("muted notify looked up devices %d times", got)
	}
}

func TestNotifyNoSubscriptionsIsNoop(t *testing.T) {
	svc, subs, _ := newPushFixture()
	if err := svc.Notify(context.Background(), "user-a", "title", "body", "/", ""); err != nil {
		t.Fatalf("Notify without subscriptions: %v", err)
	}
	// An unmuted notify does reach the device lookup.
	if subs.listCount() != 1 {
		t.Fatalf("expected 1 device lookup, got %d", subs.listCount())
	}
}

func TestUnregisterSubscription(t *testing.T) {
	svc, subs, _ := newPushFixture()
	ctx := context.Background()

	subs.Add(ctx, models.PushSubscription{
		UserID: "user-a", Endpoint: "https://push.example.com/a", P256dh: "k", Auth: "a",
	})
	if err := svc.UnregisterSubscription(ctx, "user-a", "https://push.example.com/a"); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	stored, _ := subs.ListForUser(ctx, "user-a")
	if len(stored) != 0 {
		t.Fatalf("subscription still present: %+v", stored)
	}
}
