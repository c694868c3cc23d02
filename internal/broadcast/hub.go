package broadcast

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// whose buffer is full at publish time is disconnected rather than allowed
// to stall the publisher or its peers.
const subscriberBuffer = 16

// Subscriber is one connected viewer. Messages arrive pre-marshaled on C;
// the channel is closed when the subscriber is removed from the hub.
type Subscriber struct {
	ID string
	C  chan []byte
}

// Hub delivers every published event to every current subscriber. The hub
// performs no authentication; callers verify identity before subscribing.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber

	logger *slog.Logger
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		logger:      slog.With("component", "broadcast"),
	}
}

// Subscribe registers a new connection on the shared topic.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID: uuid.NewString(),
		C:  make(chan []byte, subscriberBuffer),
	}

	h.mu.Lock()
	h.subscribers[sub.ID] = sub
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Debug("Subscriber joined", "id", sub.ID, "subscribers", count)
	return sub
}

// Unsubscribe removes a connection and closes its channel. Safe to call for
// a subscriber the hub already dropped.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub.ID)
}

// remove must be called with h.mu held.
func (h *Hub) remove(id string) {
	sub, ok := h.subscribers[id]
	if !ok {
		return
	}
	delete(h.subscribers, id)
	close(sub.C)
}

// Publish marshals the event once and hands it to every subscriber without
// blocking. A subscriber that cannot take the message is dropped; it will
// observe the closed channel and reconnect, reconciling via a full read.
func (h *Hub) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal event", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		select {
		case sub.C <- payload:
		default:
			h.logger.Warn("Dropping slow subscriber", "id", id)
			h.remove(id)
		}
	}
}

// Count returns the number of current subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
