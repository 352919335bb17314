package socket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/11Rojas/mascoticas-backend/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufSize    = 64
)

// Client is one WebSocket connection. Topic membership lives here and in
// the hub's maps, both guarded by the hub's lock.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	topics map[string]struct{}

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		topics: make(map[string]struct{}),
		send:   make(chan []byte, sendBufSize),
	}
}

// enqueue hands data to the write pump without blocking; a full buffer
// drops the frame rather than stalling the broadcaster. Frames arriving
// after the client disconnected are dropped silently.
func (c *Client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("⚠️ Dropping socket frame for slow consumer %q", c.userID)
	}
}

// closeSend shuts the send channel exactly once so the write pump exits.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump consumes inbound frames until the connection dies, then
// unregisters the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("⚠️ Socket read error: %v", err)
			}
			return
		}
		var msg models.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("⚠️ Ignoring malformed socket frame: %v", err)
			continue
		}
		c.hub.handleClientMessage(c, msg)
	}
}

// writePump drains the send buffer and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
