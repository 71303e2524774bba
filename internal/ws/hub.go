// internal/ws/hub.go
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"motomarket-service/internal/domain/listing"

	"go.uber.org/zap"
)

// Event is the wire format for listing moderation events pushed to
// connected clients.
type Event struct {
	Type      string    `json:"type"`
	ListingID string    `json:"listing_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

const (
	EventStatusChanged = "listing_status_changed"
	EventDeleted       = "listing_deleted"
)

// Hub fans moderation events out to every connected client. There is no
// per-user routing: the feed is the same for everyone watching the
// catalog or the admin table.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("ws client connected", zap.Int("total", h.TotalClients()))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()
			h.logger.Debug("ws client disconnected", zap.Int("total", h.TotalClients()))

		case event := <-h.broadcast:
			h.send(event)
		}
	}
}

// ListingStatusChanged queues a moderation outcome for fan-out.
func (h *Hub) ListingStatusChanged(id string, status listing.Status) {
	h.broadcast <- Event{
		Type:      EventStatusChanged,
		ListingID: id,
		Status:    string(status),
		At:        time.Now().UTC(),
	}
}

// ListingDeleted queues a deletion for fan-out.
func (h *Hub) ListingDeleted(id string) {
	h.broadcast <- Event{
		Type:      EventDeleted,
		ListingID: id,
		At:        time.Now().UTC(),
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) send(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("ws marshal failed", zap.Error(err))
		return
	}

	// Slow consumers are dropped inline: Run is the only receiver of
	// unregister, so a round-trip through that channel from here would
	// block the hub on itself.
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if !client.trySend(data) {
			delete(h.clients, client)
			client.Close()
			h.logger.Debug("ws client dropped, send buffer full")
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.Close()
	}
	h.clients = make(map[*Client]bool)
}
