package services

import (
	"context"
	"sort"
	"sync"

	"github.com/11Rojas/mascoticas-backend/models"
)

// In-memory store fakes. All of them are safe for concurrent use so the
// race-oriented tests can hammer them from multiple goroutines.

type fakeSwipeStore struct {
	mu     sync.Mutex
	swipes map[string]models.Swipe // swiper#swiped
}

func newFakeSwipeStore() *fakeSwipeStore {
	return &fakeSwipeStore{swipes: make(map[string]models.Swipe)}
}

func swipeMapKey(a, b string) string { return a + "#" + b }

func (f *fakeSwipeStore) Upsert(_ context.Context, swipe models.Swipe) (*models.Swipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := swipeMapKey(swipe.SwiperPetID, swipe.SwipedPetID)
	previous, existed := f.swipes[key]
	if existed {
		swipe.CreatedAt = previous.CreatedAt
	}
	f.swipes[key] = swipe
	if !existed {
		return nil, nil
	}
	return &previous, nil
}

func (f *fakeSwipeStore) Get(_ context.Context, swiperPetID, swipedPetID string) (*models.Swipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if swipe, ok := f.swipes[swipeMapKey(swiperPetID, swipedPetID)]; ok {
		return &swipe, nil
	}
	return nil, nil
}

func (f *fakeSwipeStore) ListBySwiper(_ context.Context, petID string) ([]models.Swipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Swipe
	for _, swipe := range f.swipes {
		if swipe.SwiperPetID == petID {
			out = append(out, swipe)
		}
	}
	return out, nil
}

func (f *fakeSwipeStore) ListBySwiped(_ context.Context, petID string) ([]models.Swipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Swipe
	for _, swipe := range f.swipes {
		if swipe.SwipedPetID == petID {
			out = append(out, swipe)
		}
	}
	return out, nil
}

func (f *fakeSwipeStore) DeleteAllForPet(_ context.Context, petID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, swipe := range f.swipes {
		if swipe.SwiperPetID == petID || swipe.SwipedPetID == petID {
			delete(f.swipes, key)
		}
	}
	return nil
}

type fakeMatchStore struct {
	mu      sync.Mutex
	matches map[string]models.Match // pairKey
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{matches: make(map[string]models.Match)}
}

func (f *fakeMatchStore) InsertIfAbsent(_ context.Context, match models.Match) (*models.Match, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.matches[match.PairKey]; ok {
		return &existing, false, nil
	}
	f.matches[match.PairKey] = match
	return &match, true, nil
}

func (f *fakeMatchStore) GetByPair(_ context.Context, petA, petB string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if match, ok := f.matches[models.PairKey(petA, petB)]; ok {
		return &match, nil
	}
	return nil, nil
}

func (f *fakeMatchStore) GetByID(_ context.Context, matchID string) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, match := range f.matches {
		if match.MatchID == matchID {
			m := match
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMatchStore) SetChatID(_ context.Context, pairKey, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match := f.matches[pairKey]
	match.ChatID = chatID
	f.matches[pairKey] = match
	return nil
}

func (f *fakeMatchStore) Delete(_ context.Context, pairKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.matches, pairKey)
	return nil
}

func (f *fakeMatchStore) ListForPet(_ context.Context, petID string) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Match
	for _, match := range f.matches {
		if match.Involves(petID) {
			out = append(out, match)
		}
	}
	return out, nil
}

type fakeChatStore struct {
	mu    sync.Mutex
	chats map[string]models.Chat
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{chats: make(map[string]models.Chat)}
}

func (f *fakeChatStore) Insert(_ context.Context, chat models.Chat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chats[chat.ChatID] = chat
	return nil
}

func (f *fakeChatStore) Get(_ context.Context, chatID string) (*models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if chat, ok := f.chats[chatID]; ok {
		c := chat
		return &c, nil
	}
	return nil, nil
}

func (f *fakeChatStore) ListByParticipant(_ context.Context, userID string) ([]models.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Chat
	for _, chat := range f.chats {
		if chat.HasParticipant(userID) {
			out = append(out, chat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}

func (f *fakeChatStore) UpdateSummary(_ context.Context, chatID, summary, at, senderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat := f.chats[chatID]
	chat.LastMessage = summary
	chat.LastMessageDate = at
	chat.ReadBy = []string{senderID}
	f.chats[chatID] = chat
	return nil
}

func (f *fakeChatStore) AddToSet(_ context.Context, chatID, attribute, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat := f.chats[chatID]
	target := f.set(&chat, attribute)
	for _, existing := range *target {
		if existing == userID {
			f.chats[chatID] = chat
			return nil
		}
	}
	*target = append(*target, userID)
	f.chats[chatID] = chat
	return nil
}

func (f *fakeChatStore) RemoveFromSet(_ context.Context, chatID, attribute, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	chat := f.chats[chatID]
	target := f.set(&chat, attribute)
	kept := (*target)[:0]
	for _, existing := range *target {
		if existing != userID {
			kept = append(kept, existing)
		}
	}
	*target = kept
	f.chats[chatID] = chat
	return nil
}

func (f *fakeChatStore) set(chat *models.Chat, attribute string) *[]string {
	switch attribute {
	case ChatSetMutedBy:
		return &chat.MutedBy
	case ChatSetDeletedBy:
		return &chat.DeletedBy
	default:
		return &chat.ReadBy
	}
}

func (f *fakeChatStore) Delete(_ context.Context, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.chats, chatID)
	return nil
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
}

func newFakeMessageStore() *fakeMessageStore { return &fakeMessageStore{} }

func (f *fakeMessageStore) Insert(_ context.Context, message models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageStore) ListByChat(_ context.Context, chatID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Message
	for _, m := range f.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
	return out, nil
}

func (f *fakeMessageStore) GetByID(_ context.Context, messageID string) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.MessageID == messageID {
			msg := m
			return &msg, nil
		}
	}
	return nil, nil
}

func (f *fakeMessageStore) AddDeletedBy(_ context.Context, message *models.Message, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].MessageID == message.MessageID {
			f.messages[i].DeletedBy = append(f.messages[i].DeletedBy, userID)
		}
	}
	return nil
}

func (f *fakeMessageStore) ScrubForEveryone(_ context.Context, message *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].MessageID == message.MessageID {
			f.messages[i].Content = models.DeletedMessageContent
			f.messages[i].Images = nil
			f.messages[i].DeletedForEveryone = true
		}
	}
	return nil
}

func (f *fakeMessageStore) DeleteAllForChat(_ context.Context, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.ChatID != chatID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

type fakeNotificationStore struct {
	mu            sync.Mutex
	notifications map[string][]models.Notification
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[string][]models.Notification)}
}

func (f *fakeNotificationStore) Insert(_ context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications[n.UserID] = append(f.notifications[n.UserID], n)
	return nil
}

func (f *fakeNotificationStore) ListForUser(_ context.Context, userID string) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]models.Notification(nil), f.notifications[userID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey > out[j].SortKey })
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, userID, notificationID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.notifications[userID]
	for i := range list {
		if list[i].NotificationID == notificationID {
			list[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

type fakeSubscriptionStore struct {
	mu        sync.Mutex
	subs      map[string][]models.PushSubscription
	listCalls int
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[string][]models.PushSubscription)}
}

func (f *fakeSubscriptionStore) Add(_ context.Context, sub models.PushSubscription) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.subs[sub.UserID] {
		if existing.Endpoint == sub.Endpoint {
			return false, nil
		}
	}
	f.subs[sub.UserID] = append(f.subs[sub.UserID], sub)
	return true, nil
}

func (f *fakeSubscriptionStore) ListForUser(_ context.Context, userID string) ([]models.PushSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]models.PushSubscription(nil), f.subs[userID]...), nil
}

// listCount reports how many times deliveries looked up devices.
func (f *fakeSubscriptionStore) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeSubscriptionStore) Remove(_ context.Context, userID, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.subs[userID][:0]
	for _, sub := range f.subs[userID] {
		if sub.Endpoint != endpoint {
			kept = append(kept, sub)
		}
	}
	f.subs[userID] = kept
	return nil
}

// fakeDirectory serves pet ownership and names from plain maps.
type fakeDirectory struct {
	owners  map[string]string   // petID → ownerID
	names   map[string]string   // petID → pet name
	blocked map[string][]string // userID → blocked userIDs
	pets    []models.PetSummary // all matchable pets
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		owners:  make(map[string]string),
		names:   make(map[string]string),
		blocked: make(map[string][]string),
	}
}

func (f *fakeDirectory) addPet(petID, ownerID, name string) {
	f.owners[petID] = ownerID
	f.names[petID] = name
	f.pets = append(f.pets, models.PetSummary{PetID: petID, OwnerID: ownerID, Name: name})
}

func (f *fakeDirectory) OwnerOf(_ context.Context, petID string) (string, error) {
	return f.owners[petID], nil
}

func (f *fakeDirectory) PetName(_ context.Context, petID string) (string, error) {
	return f.names[petID], nil
}

func (f *fakeDirectory) BlockedUsers(_ context.Context, userID string) ([]string, error) {
	return f.blocked[userID], nil
}

func (f *fakeDirectory) PetsOf(_ context.Context, userID string) ([]string, error) {
	var out []string
	for petID, owner := range f.owners {
		if owner == userID {
			out = append(out, petID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeDirectory) ListMatchablePets(_ context.Context, ownerID string) ([]models.PetSummary, error) {
	var out []models.PetSummary
	for _, pet := range f.pets {
		if pet.OwnerID != ownerID {
			out = append(out, pet)
		}
	}
	return out, nil
}

// fakeBroadcaster records published events.
type fakeBroadcaster struct {
	mu      sync.Mutex
	byTopic map[string][]interface{}
	byUser  map[string][]interface{}
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{
		byTopic: make(map[string][]interface{}),
		byUser:  make(map[string][]interface{}),
	}
}

func (f *fakeBroadcaster) Publish(topic string, event interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byTopic[topic] = append(f.byTopic[topic], event)
}

func (f *fakeBroadcaster) PublishToUser(userID string, event interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byUser[userID] = append(f.byUser[userID], event)
}

func (f *fakeBroadcaster) userEvents(userID string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]interface{}(nil), f.byUser[userID]...)
}

func (f *fakeBroadcaster) topicEvents(topic string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]interface{}(nil), f.byTopic[topic]...)
}

// fakeNotifier records push attempts.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []fakePush
}

type fakePush struct {
	UserID string
	Title  string
	Body   string
	ChatID string
}

func (f *fakeNotifier) Notify(_ context.Context, userID, title, body, _ string, chatID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, fakePush{UserID: userID, Title: title, Body: body, ChatID: chatID})
	return nil
}

func (f *fakeNotifier) pushes() []fakePush {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakePush(nil), f.sent...)
}

// syncRunner runs submitted tasks inline so tests see their effects
// immediately.
type syncRunner struct{}

func (syncRunner) Submit(_ string, task func(ctx context.Context) error) {
	_ = task(context.Background())
}
