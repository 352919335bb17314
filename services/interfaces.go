package services

import (
	"context"

	"github.com/11Rojas/mascoticas-backend/models"
)

// Storage interfaces the services run on. The DynamoDB implementations live
// in the repository package; tests substitute in-memory fakes.

type SwipeStore interface {
	Upsert(ctx context.Context, swipe models.Swipe) (*models.Swipe, error)
	Get(ctx context.Context, swiperPetID, swipedPetID string) (*models.Swipe, error)
	ListBySwiper(ctx context.Context, petID string) ([]models.Swipe, error)
	ListBySwiped(ctx context.Context, petID string) ([]models.Swipe, error)
	DeleteAllForPet(ctx context.Context, petID string) error
}

type MatchStore interface {
	InsertIfAbsent(ctx context.Context, match models.Match) (*models.Match, bool, error)
	GetByPair(ctx context.Context, petA, petB string) (*models.Match, error)
	GetByID(ctx context.Context, matchID string) (*models.Match, error)
	SetChatID(ctx context.Context, pairKey, chatID string) error
	Delete(ctx context.Context, pairKey string) error
	ListForPet(ctx context.Context, petID string) ([]models.Match, error)
}

// Chat set attributes the visibility toggles operate on.
const (
	ChatSetMutedBy   = "mutedBy"
	ChatSetDeletedBy = "deletedBy"
	ChatSetReadBy    = "readBy"
)

type ChatStore interface {
	Insert(ctx context.Context, chat models.Chat) error
	Get(ctx context.Context, chatID string) (*models.Chat, error)
	ListByParticipant(ctx context.Context, userID string) ([]models.Chat, error)
	UpdateSummary(ctx context.Context, chatID, summary, at, senderID string) error
	AddToSet(ctx context.Context, chatID, attribute, userID string) error
	RemoveFromSet(ctx context.Context, chatID, attribute, userID string) error
	Delete(ctx context.Context, chatID string) error
}

type MessageStore interface {
	Insert(ctx context.Context, message models.Message) error
	ListByChat(ctx context.Context, chatID string) ([]models.Message, error)
	GetByID(ctx context.Context, messageID string) (*models.Message, error)
	AddDeletedBy(ctx context.Context, message *models.Message, userID string) error
	ScrubForEveryone(ctx context.Context, message *models.Message) error
	DeleteAllForChat(ctx context.Context, chatID string) error
}

type NotificationStore interface {
	Insert(ctx context.Context, notification models.Notification) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
}

type SubscriptionStore interface {
	Add(ctx context.Context, sub models.PushSubscription) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]models.PushSubscription, error)
	Remove(ctx context.Context, userID, endpoint string) error
}

// ProfileDirectory reads external profile data: pet ownership, display names
// and block lists. Profile CRUD is another service's job.
type ProfileDirectory interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
	PetName(ctx context.Context, petID string) (string, error)
	BlockedUsers(ctx context.Context, userID string) ([]string, error)
	PetsOf(ctx context.Context, userID string) ([]string, error)
	ListMatchablePets(ctx context.Context, ownerID string) ([]models.PetSummary, error)
}

// Broadcaster pushes live events to connected clients. Delivery is
// best-effort; nothing is queued for absent subscribers.
type Broadcaster interface {
	Publish(topic string, event interface{})
	PublishToUser(userID string, event interface{})
}

// Notifier fans an offline notification out to a user's devices.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body, targetURL, chatID string) error
}

// TaskRunner runs detached side effects off the request path.
type TaskRunner interface {
	Submit(name string, task func(ctx context.Context) error)
}
