package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/protocol"
	"github.com/rs/zerolog/log"
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

	sendBuffer = 64
)

// hub fans a session's events and snapshots out to its websocket clients.
// It is the session's EventSink, so it never blocks: a client that falls
// behind loses messages.
type hub struct {
	// mutex guards everything below
	mu        sync.Mutex
	sessionID string
	clients   map[*client]struct{}
	closed    bool
}

func newHub() *hub {
	return &hub{clients: map[*client]struct{}{}}
}

func (h *hub) setSessionID(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessionID = id
}

// Emit implements patience.EventSink
func (h *hub) Emit(e patience.Event) {
	h.send(protocol.OutboundMessage{Command: protocol.Event, Event: &e})
}

func (h *hub) broadcastSnapshot(snap patience.Snapshot) {
	h.send(protocol.OutboundMessage{Command: protocol.Snapshot, Snapshot: &snap})
}

func (h *hub) send(msg protocol.OutboundMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return
	}
	data, ok := h.encode(msg)
	if !ok {
		return
	}
	for c := range h.clients {
		c.trySend(data)
	}
}

// sendTo messages one client, if it is still connected
func (h *hub) sendTo(c *client, msg protocol.OutboundMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	if data, ok := h.encode(msg); ok {
		c.trySend(data)
	}
}

func (h *hub) encode(msg protocol.OutboundMessage) ([]byte, bool) {
	msg.SessionID = h.sessionID
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("could not encode message")
		return nil, false
	}
	return data, true
}

func (h *hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// close disconnects every client
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, sendBuffer)}
}

// trySend must be called with the hub locked
func (c *client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Warn().Msg("client is behind, dropping message")
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// readPump hands each inbound message to handle until the connection fails
func (c *client) readPump(handle func([]byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}
		handle(data)
	}
}
