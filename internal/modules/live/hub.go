package live

import (
	"sync"

	"github.com/gorilla/websocket"
)

type AvailabilityUpdate struct {
	EventID          int64 `json:"event_id"`
	AvailableTickets int   `json:"available_tickets"`
}

// subscriber pairs a websocket connection with a write lock. gorilla
// supports at most one concurrent writer per connection, and broadcasts
// from concurrent payment confirmations would otherwise interleave frames.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) writeJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// Hub fans availability changes out to websocket subscribers per event.
// Writes are best-effort; a failed write drops the subscriber.
type Hub struct {
	subscribers map[int64]map[*websocket.Conn]*subscriber
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*websocket.Conn]*subscriber),
	}
}

func (h *Hub) Subscribe(eventID int64, conn *websocket.Conn) *subscriber {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.subscribers[eventID] == nil {
		h.subscribers[eventID] = make(map[*websocket.Conn]*subscriber)
	}
	sub := &subscriber{conn: conn}
	h.subscribers[eventID][conn] = sub
	return sub
}

func (h *Hub) Unsubscribe(eventID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if subs, exists := h.subscribers[eventID]; exists {
		if _, ok := subs[conn]; ok {
			_ = conn.Close()
			delete(subs, conn)
		}
		if len(subs) == 0 {
			delete(h.subscribers, eventID)
		}
	}
}

// PublishAvailability implements the booking core's AvailabilityNotifier.
func (h *Hub) PublishAvailability(eventID int64, availableTickets int) {
	h.mutex.RLock()
	subs := make([]*subscriber, 0, len(h.subscribers[eventID]))
	for _, sub := range h.subscribers[eventID] {
		subs = append(subs, sub)
	}
	h.mutex.RUnlock()

	msg := AvailabilityUpdate{EventID: eventID, AvailableTickets: availableTickets}
	for _, sub := range subs {
		if err := sub.writeJSON(msg); err != nil {
			h.Unsubscribe(eventID, sub.conn)
		}
	}
}

func (h *Hub) SubscriberCount(eventID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers[eventID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for eventID, subs := range h.subscribers {
		for conn := range subs {
			_ = conn.Close()
		}
		delete(h.subscribers, eventID)
	}
}
