package socket

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is enforced at the CORS layer in front of the router.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and wires the connection into the hub. The
// client announces its identity afterwards with a presence_join frame.
func ServeWS(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("⚠️ Socket upgrade failed: %v", err)
			return
		}

		client := newClient(hub, conn)
		hub.Register(client)

		go client.writePump()
		go client.readPump()
	}
}
