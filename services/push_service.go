package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/11Rojas/mascoticas-backend/metrics"
	"github.com/11Rojas/mascoticas-backend/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// PushService delivers Web Push notifications to every registered device of
// a user. Delivery is best effort: individual device failures are logged
// and counted, never propagated to the caller.
type PushService struct {
	Subscriptions SubscriptionStore
	Chats         ChatStore

	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string

	client *http.Client
}

// NewPushServiceFromEnv reads the VAPID key pair from the environment.
// Returns an error when the keys are missing so startup fails loudly
// instead of dropping every push at runtime.
func NewPushServiceFromEnv(subscriptions SubscriptionStore, chats ChatStore) (*PushService, error) {
	publicKey := os.Getenv("VAPID_PUBLIC_KEY")
	privateKey := os.Getenv("VAPID_PRIVATE_KEY")
	if publicKey == "" || privateKey == "" {
		return nil, fmt.Errorf("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set")
	}
	subscriber := os.Getenv("VAPID_SUBJECT")
	if subscriber == "" {
		subscriber = "mailto:soporte@mascoticas.app"
	}
	return &PushService{
		Subscriptions:   subscriptions,
		Chats:           chats,
		VAPIDPublicKey:  publicKey,
		VAPIDPrivateKey: privateKey,
		Subscriber:      subscriber,
		client:          &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// RegisterSubscription stores a device subscription. Re-registering the
// same endpoint is a no-op.
func (s *PushService) RegisterSubscription(ctx context.Context, sub models.PushSubscription) error {
	if !sub.Valid() {
		return models.NewValidationError("subscription needs userId, endpoint and both keys")
	}
	sub.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	added, err := s.Subscriptions.Add(ctx, sub)
	if err != nil {
		return err
	}
	if !added {
		log.Printf("ℹ️ Subscription already registered for %s", sub.UserID)
	}
	return nil
}

// UnregisterSubscription removes a device subscription.
func (s *PushService) UnregisterSubscription(ctx context.Context, userID, endpoint string) error {
	return s.Subscriptions.Remove(ctx, userID, endpoint)
}

// Notify sends a push to every device of the user. When chatID is set and
// the user muted that chat, the push is suppressed. Endpoints the push
// service reports gone (404/410) are removed from storage.
func (s *PushService) Notify(ctx context.Context, userID, title, body, targetURL, chatID string) error {
	if chatID != "" {
		chat, err := s.Chats.Get(ctx, chatID)
		if err != nil {
			return fmt.Errorf("failed to check mute state for chat %s: %w", chatID, err)
		}
		if chat != nil && chat.IsMutedBy(userID) {
			metrics.PushSkippedMuted.Inc()
			log.Printf("🔕 Chat %s muted by %s, skipping push", chatID, userID)
			return nil
		}
	}

	subs, err := s.Subscriptions.ListForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list subscriptions for %s: %w", userID, err)
	}
	if len(subs) == 0 {
		return nil
	}

	payload, err := json.Marshal(models.PushPayload{
		Title:   title,
		Message: body,
		URL:     targetURL,
		ChatID:  chatID,
	})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	for _, sub := range subs {
		s.sendToDevice(ctx, sub, payload)
	}
	return nil
}

func (s *PushService) sendToDevice(ctx context.Context, sub models.PushSubscription, payload []byte) {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}
	resp, err := webpush.SendNotification(payload, target, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      s.Subscriber,
		VAPIDPublicKey:  s.VAPIDPublicKey,
		VAPIDPrivateKey: s.VAPIDPrivateKey,
		TTL:             86400,
	})
	if err != nil {
		metrics.PushFailed.Inc()
		log.Printf("⚠️ Push delivery failed: %v", &models.DeliveryError{Endpoint: sub.Endpoint, Err: err})
		return
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusGone:
		// The browser dropped this subscription; clean it up.
		metrics.SubscriptionsExpired.Inc()
		if err := s.Subscriptions.Remove(ctx, sub.UserID, sub.Endpoint); err != nil {
			log.Printf("⚠️ Failed to remove expired subscription: %v", err)
		}
	default:
		if resp.StatusCode >= 400 {
			metrics.PushFailed.Inc()
			log.Printf("⚠️ Push service returned %d for %s", resp.StatusCode, sub.Endpoint)
			return
		}
		metrics.PushDelivered.Inc()
	}
}
