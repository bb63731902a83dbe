package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/fleetops/driver-service/pkg/errors"
	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/websocket"
)

// HandleWebSocket handles GET /api/ws
func (h *Handlers) HandleWebSocket(c *gin.Context) {
	if h.Hub == nil {
		h.respondError(c, apperrors.ErrRealtimeDisabled)
		return
	}

	// Get user info from query params
	userID := c.Query("user_id")
	userType := c.Query("user_type")
	if userID == "" || userType == "" {
		h.Logger.Warn("Missing user_id or user_type in WebSocket connection")
		h.badRequest(c, "user_id and user_type are required", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("Failed to upgrade to WebSocket", logger.Err(err))
		return
	}

	client := websocket.NewClient(h.Hub, conn, userType, h.Logger.With(logger.String("user_id", userID)))
	if !h.Hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
