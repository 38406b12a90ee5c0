package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Per-client send buffer. A client that falls this far behind is
	// dropped rather than back-pressuring the broadcast.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message is the wire envelope pushed to listeners.
type Message struct {
	Event     string            `json:"event"`
	GameState *engine.GameState `json:"game_state"`
}

// Client represents a connected WebSocket listener.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected listeners and fans the current game
// state out to them. There is one game per process, so all clients form a
// single set. The hub implements engine.Observer.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool

	// last holds the most recently published snapshot, delivered to every
	// newly connected client as its initial sync.
	last []byte
}

// NewHub creates a hub with no connected clients. Seed it with the
// engine's starting snapshot so the first listener has something to sync.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
	}
}

// GameStateChanged implements engine.Observer by broadcasting the
// snapshot to all connected clients.
func (h *Hub) GameStateChanged(state *engine.GameState) {
	h.Broadcast(state)
}

// Broadcast marshals the snapshot once and delivers it best-effort to
// every client. Clients whose send buffer is full are dropped; nothing
// awaits acknowledgment.
func (h *Hub) Broadcast(state *engine.GameState) {
	data, err := json.Marshal(&Message{Event: "state_update", GameState: state})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal state broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = data
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client cannot keep up, disconnect it.
			h.removeClientLocked(client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades an HTTP request to a WebSocket connection and
// registers it with the hub. The new client immediately receives the
// latest state snapshot.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	h.clients[client] = true
	if h.last != nil {
		// Fresh buffered channel, cannot block.
		client.send <- h.last
	}
	total := len(h.clients)
	h.mu.Unlock()

	log.Debug().Int("clients", total).Msg("websocket client connected")

	go client.writePump()
	go client.readPump()
}

// removeClient unregisters a client and closes its send channel.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	h.removeClientLocked(client)
	h.mu.Unlock()
}

func (h *Hub) removeClientLocked(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		log.Debug().Int("clients", len(h.clients)).Msg("websocket client disconnected")
	}
}

// readPump drains the connection until it closes. Incoming messages are
// not processed; clients act through the HTTP API.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("websocket read error")
			}
			break
		}
	}
}

// writePump pumps broadcasts from the hub to the connection and keeps it
// alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any queued snapshots into the same frame.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
