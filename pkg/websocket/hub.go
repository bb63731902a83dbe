package websocket

import (
	"context"
	"sync"

	"github.com/fleetops/driver-service/pkg/logger"
)

// Audience selects the clients a frame goes to: every client of UserType
// plus every client following DriverID. Zero values select nobody.
type Audience struct {
	UserType string
	DriverID int64
}

func (a Audience) includes(c *Client) bool {
	if a.UserType != "" && c.UserType == a.UserType {
		return true
	}
	return a.DriverID != 0 && c.Follows(a.DriverID)
}

// Hub tracks connected clients and fans frames out to them
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *logger.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations until ctx is cancelled, then closes every
// client's send queue. Register and Unregister return immediately afterwards.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				c.closeSend()
				delete(h.clients, c)
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket hub stopped")
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Client registered",
				logger.String("client_id", c.ID),
				logger.String("user_type", c.UserType),
			)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.closeSend()
				h.logger.Info("Client unregistered", logger.String("client_id", c.ID))
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client and closes its send queue
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues frame once for every client in the audience and returns
// how many clients took it. Clients with a full queue miss the frame.
func (h *Hub) Broadcast(frame []byte, to Audience) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for c := range h.clients {
		if !to.includes(c) {
			continue
		}
		if c.enqueue(frame) {
			count++
			continue
		}
		h.logger.Warn("Client send queue full, frame dropped", logger.String("client_id", c.ID))
	}
	return count
}

// GetActiveConnections returns the number of active connections
func (h *Hub) GetActiveConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
