package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fleetops/driver-service/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxRequestSize = 512
	sendBuffer     = 256
)

// Request types a client may send
const (
	RequestSubscribe   = "subscribe"
	RequestUnsubscribe = "unsubscribe"
	RequestPing        = "ping"
)

// Reply types sent back to a client
const (
	ReplySubscribed   = "subscribed"
	ReplyUnsubscribed = "unsubscribed"
	ReplyPong         = "pong"
	ReplyError        = "error"
)

var errInvalidDriverID = errors.New("driver_id must be a positive integer")

// Request is a frame sent by a client. DriverID accepts a JSON number or a
// numeric string.
type Request struct {
	Type     string      `json:"type"`
	DriverID json.Number `json:"driver_id,omitempty"`
}

// Reply answers one client request
type Reply struct {
	Type     string `json:"type"`
	DriverID int64  `json:"driver_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Client is one connected dashboard or dispatcher
type Client struct {
	ID       string
	UserType string // "dashboard" or "dispatcher"

	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	logger *logger.Logger

	mu       sync.RWMutex
	followed map[int64]struct{}

	sendMu sync.Mutex
	closed bool
}

// NewClient creates a client for an upgraded connection
func NewClient(hub *Hub, conn *websocket.Conn, userType string, log *logger.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		ID:       id,
		UserType: userType,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		logger:   log.With(logger.String("client_id", id)),
		followed: make(map[int64]struct{}),
	}
}

// ReadPump handles client requests until the connection fails, then
// unregisters the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxRequestSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket read error", logger.Err(err))
			}
			return
		}
		c.reply(c.handle(frame))
	}
}

// WritePump writes queued frames one message each and keeps the connection
// alive with pings. It returns when the send queue is closed.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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

// handle applies one request and returns the reply for it
func (c *Client) handle(frame []byte) Reply {
	var req Request
	if err := json.Unmarshal(frame, &req); err != nil {
		return Reply{Type: ReplyError, Error: "malformed request"}
	}

	switch req.Type {
	case RequestPing:
		return Reply{Type: ReplyPong}
	case RequestSubscribe, RequestUnsubscribe:
		driverID, err := parseDriverID(req.DriverID)
		if err != nil {
			return Reply{Type: ReplyError, Error: err.Error()}
		}
		if req.Type == RequestSubscribe {
			c.Follow(driverID)
			return Reply{Type: ReplySubscribed, DriverID: driverID}
		}
		c.Unfollow(driverID)
		return Reply{Type: ReplyUnsubscribed, DriverID: driverID}
	default:
		return Reply{Type: ReplyError, Error: "unknown request type " + req.Type}
	}
}

func parseDriverID(n json.Number) (int64, error) {
	id, err := n.Int64()
	if err != nil || id <= 0 {
		return 0, errInvalidDriverID
	}
	return id, nil
}

// Follow adds a driver to the client's subscriptions
func (c *Client) Follow(driverID int64) {
	c.mu.Lock()
	c.followed[driverID] = struct{}{}
	c.mu.Unlock()
	c.logger.Debug("Client following driver", logger.Int64("driver_id", driverID))
}

// Unfollow removes a driver from the client's subscriptions
func (c *Client) Unfollow(driverID int64) {
	c.mu.Lock()
	delete(c.followed, driverID)
	c.mu.Unlock()
}

// Follows reports whether the client subscribed to driverID
func (c *Client) Follows(driverID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.followed[driverID]
	return ok
}

// reply queues r for the write pump
func (c *Client) reply(r Reply) {
	data, err := json.Marshal(r)
	if err != nil {
		c.logger.Error("Failed to encode reply", logger.Err(err))
		return
	}
	if !c.enqueue(data) {
		c.logger.Warn("Reply dropped", logger.String("reply", r.Type))
	}
}

// enqueue queues frame without blocking. It reports false when the queue is
// full or already closed.
func (c *Client) enqueue(frame []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend closes the send queue once, which stops the write pump
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
