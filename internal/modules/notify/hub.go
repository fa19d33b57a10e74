package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is what goes over the wire to a connected client.
type Event struct {
	Event string    `json:"event"`
	Data  any       `json:"data,omitempty"`
	At    time.Time `json:"at"`
}

// client wraps a connection with its write mutex; gorilla/websocket
// allows at most one concurrent writer per connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// Hub keeps one websocket connection per user and pushes booking and
// wallet events to it. Delivery is best-effort: a failed write drops the
// connection and the event.
type Hub struct {
	mu    sync.RWMutex
	conns map[int64]*client
}

func NewHub() *Hub {
	return &Hub{conns: make(map[int64]*client)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.conns[userID]; ok && old != nil {
		_ = old.conn.Close()
	}
	h.conns[userID] = &client{conn: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cl, ok := h.conns[userID]; ok && cl != nil {
		_ = cl.conn.Close()
		delete(h.conns, userID)
	}
}

// Publish implements the Notifier interface used by the booking and
// wallet handlers. Concurrent events for the same user serialize on the
// connection's write mutex.
func (h *Hub) Publish(userID int64, event string, data any) {
	h.mu.RLock()
	cl, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok || cl == nil {
		return
	}

	cl.mu.Lock()
	err := cl.conn.WriteJSON(Event{Event: event, Data: data, At: time.Now()})
	cl.mu.Unlock()

	if err != nil {
		h.Unregister(userID)
	}
}

func (h *Hub) Online(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.conns[userID]
	return ok
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, cl := range h.conns {
		if cl != nil {
			_ = cl.conn.Close()
		}
		delete(h.conns, id)
	}
}
