package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-service/pkg/logger"
)

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	database := "up"
	status := http.StatusOK
	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			h.Logger.Warn("Health check database ping failed", logger.Err(err))
			database = "down"
			status = http.StatusServiceUnavailable
		}
	}

	resp := gin.H{"status": "UP", "database": database}
	if status != http.StatusOK {
		resp["status"] = "DOWN"
	}
	if h.Broker != nil {
		resp["broker"] = "up"
		if !h.Broker.IsAlive() {
			resp["broker"] = "down"
		}
	}
	if h.Hub != nil {
		resp["websocket_clients"] = h.Hub.GetActiveConnections()
	}
	c.JSON(status, resp)
}
