// Package broadcast provides the in-process event hub that fans game state
// changes out to transport-layer subscribers. Delivery is best-effort: a
// subscriber that cannot keep up loses events rather than blocking the
// publisher.
package broadcast

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/vpavlenko/signalwars/internal/logging"
)

// Topics published by the core.
const (
	TopicStationsChanged = "stations.changed"
	TopicRoundActivity   = "round.activity"
	TopicHackActivity    = "hack.activity"
)

// Event is a single published message.
type Event struct {
	Topic   string
	Payload any
}

// Hub coordinates subscribers and fans published events out to them.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]chan Event
	logger      logging.Logger
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		subscribers: make(map[string]chan Event),
		logger:      logger.With("module", "broadcast_hub"),
	}
}

// Subscribe registers a new subscriber and returns its id together with the
// channel events are delivered on. The channel is closed on Unsubscribe.
func (h *Hub) Subscribe(buffer int) (string, <-chan Event) {
	if buffer < 1 {
		buffer = 1
	}

	ch := make(chan Event, buffer)
	id := uuid.NewString()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[id] = ch

	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber without blocking. Events to
// subscribers with a full buffer are dropped.
func (h *Hub) Publish(topic string, payload any) {
	event := Event{Topic: topic, Payload: payload}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			h.logger.Warn(context.Background(), "dropping event for slow subscriber",
				"subscriber_id", id, "topic", topic)
		}
	}
}
