package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/domain/lead"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// Event is a real-time event pushed to feed subscribers.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

const EventLeadCreated = "lead_created"

// connection represents a single WebSocket subscriber. pages is the scope
// snapshot taken at connect time; super admins have a nil scope and see
// everything.
type connection struct {
	userID int64
	role   auth.Role
	pages  map[int64]bool
	conn   *websocket.Conn
	send   chan []byte
}

func (c *connection) sees(landingPageID int64) bool {
	if c.role == auth.RoleSuperAdmin {
		return true
	}
	return c.pages[landingPageID]
}

// Hub manages all active feed connections.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]bool
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*connection]bool),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		delete(h.connections, c)
		close(c.send)
	}
}

// PublishLead broadcasts a created lead to every subscriber whose scope
// covers its landing page. Delivery is best-effort.
func (h *Hub) PublishLead(l *lead.Lead) {
	data, err := json.Marshal(&Event{Type: EventLeadCreated, Payload: lead.NewLeadView(*l)})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.sees(l.LandingPageID) {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client too slow — skip
		}
	}
}

// ServeWS registers a new subscriber and starts the read/write loops.
// Blocks until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64, role auth.Role, pageIDs []int64) {
	c := &connection{
		userID: userID,
		role:   role,
		pages:  make(map[int64]bool, len(pageIDs)),
		conn:   conn,
		send:   make(chan []byte, 256),
	}
	for _, id := range pageIDs {
		c.pages[id] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The feed is push-only; inbound frames keep the connection alive and
	// are otherwise discarded.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *connection) {
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
