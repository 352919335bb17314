package socket

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/11Rojas/mascoticas-backend/metrics"
	"github.com/11Rojas/mascoticas-backend/models"
)

// Hub is the registry of live WebSocket connections. Clients subscribe to
// topics (chat ids plus the global presence topic) and the hub fans events
// out to them. A user may hold several connections at once, one per device.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	topics  map[string]map[*Client]struct{}
	byUser  map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		topics:  make(map[string]map[*Client]struct{}),
		byUser:  make(map[string]map[*Client]struct{}),
	}
}

// Register adds a freshly upgraded connection. Every connection listens on
// the presence topic from the start.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.joinLocked(c, models.PresenceTopic)
	total := len(h.clients)
	h.mu.Unlock()

	metrics.ConnectionsActive.Inc()
	log.Printf("🔌 Socket connected (%d total)", total)
}

// Unregister drops a connection, removes it from every topic, and
// re-broadcasts presence if the user went fully offline.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for topic := range c.topics {
		h.leaveLocked(c, topic)
	}
	wentOffline := false
	if c.userID != "" {
		if conns, ok := h.byUser[c.userID]; ok {
			delete(conns, c)
			if len(conns) == 0 {
				delete(h.byUser, c.userID)
				wentOffline = true
			}
		}
	}
	total := len(h.clients)
	h.mu.Unlock()

	c.closeSend()
	metrics.ConnectionsActive.Dec()
	log.Printf("🔌 Socket disconnected (%d total)", total)

	if wentOffline {
		h.broadcastPresence()
	}
}

// Join subscribes the connection to a topic.
func (h *Hub) Join(c *Client, topic string) {
	if topic == "" {
		return
	}
	h.mu.Lock()
	h.joinLocked(c, topic)
	h.mu.Unlock()
}

func (h *Hub) joinLocked(c *Client, topic string) {
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.topics[topic] = struct{}{}
}

func (h *Hub) leaveLocked(c *Client, topic string) {
	if subs, ok := h.topics[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.topics, topic)
}

// Announce binds the connection to a user and re-broadcasts the online set.
func (h *Hub) Announce(c *Client, userID string) {
	if userID == "" {
		return
	}
	h.mu.Lock()
	c.userID = userID
	if h.byUser[userID] == nil {
		h.byUser[userID] = make(map[*Client]struct{})
	}
	h.byUser[userID][c] = struct{}{}
	h.mu.Unlock()

	h.broadcastPresence()
}

// OnlineIDs returns the deduplicated, sorted set of announced users.
func (h *Hub) OnlineIDs() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.byUser))
	for id := range h.byUser {
		ids = append(ids, id)
	}
	h.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Publish sends an event to every subscriber of a topic. Slow consumers
// are skipped, not waited on.
func (h *Hub) Publish(topic string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Failed to encode socket event: %v", err)
		return
	}

	h.mu.RLock()
	subs := h.topics[topic]
	targets := make([]*Client, 0, len(subs))
	for c := range subs {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	metrics.BroadcastsTotal.WithLabelValues(eventName(event)).Inc()
	for _, c := range targets {
		c.enqueue(data)
	}
}

// PublishToUser sends an event to every connection of one user.
func (h *Hub) PublishToUser(userID string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("⚠️ Failed to encode socket event: %v", err)
		return
	}

	h.mu.RLock()
	conns := h.byUser[userID]
	targets := make([]*Client, 0, len(conns))
	for c := range conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	metrics.BroadcastsTotal.WithLabelValues(eventName(event)).Inc()
	for _, c := range targets {
		c.enqueue(data)
	}
}

func (h *Hub) broadcastPresence() {
	h.Publish(models.PresenceTopic, models.PresenceUpdateEvent{
		Type:          models.EventTypePresenceUpdate,
		OnlineUserIDs: h.OnlineIDs(),
	})
}

// handleClientMessage routes an inbound frame from a connection.
func (h *Hub) handleClientMessage(c *Client, msg models.ClientMessage) {
	switch msg.Type {
	case models.EventTypePresenceJoin:
		h.Announce(c, msg.UserID)
	case models.EventTypeSubscribe:
		h.Join(c, msg.ChatID)
	case models.EventTypeTyping:
		if msg.ChatID == "" {
			return
		}
		h.Publish(msg.ChatID, models.TypingEvent{
			Type:   models.EventTypeTyping,
			ChatID: msg.ChatID,
			UserID: msg.UserID,
		})
	default:
		log.Printf("⚠️ Unknown socket message type %q", msg.Type)
	}
}

func eventName(event interface{}) string {
	switch e := event.(type) {
	case models.PresenceUpdateEvent:
		return e.Type
	case models.TypingEvent:
		return e.Type
	case models.NewMessageEvent:
		return e.Type
	case models.NewMatchEvent:
		return e.Type
	case models.MessageDeletedEvent:
		return e.Type
	default:
		return "unknown"
	}
}
