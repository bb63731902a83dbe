package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"github.com/fleetops/driver-service/internal/domain/driver"
	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/internal/domain/schedule"
	"github.com/fleetops/driver-service/internal/service/conflict"
	"github.com/fleetops/driver-service/internal/service/trend"
	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/websocket"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// BrokerStatus reports whether the message broker connection is open
type BrokerStatus interface {
	IsAlive() bool
}

// Handlers holds all handler dependencies
type Handlers struct {
	Drivers   *driver.Service
	Schedules *schedule.Service
	Forms     *form.Service
	Conflicts *conflict.Checker
	Trends    *trend.Aggregator
	DB        Pinger
	Hub       *websocket.Hub // nil when real-time updates are disabled
	Broker    BrokerStatus   // nil when the event broker is disabled
	Logger    *logger.Logger

	upgrader gorilla.Upgrader
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	drivers *driver.Service,
	schedules *schedule.Service,
	forms *form.Service,
	conflicts *conflict.Checker,
	trends *trend.Aggregator,
	db Pinger,
	hub *websocket.Hub,
	logger *logger.Logger,
	readBufferSize, writeBufferSize int,
) *Handlers {
	return &Handlers{
		Drivers:   drivers,
		Schedules: schedules,
		Forms:     forms,
		Conflicts: conflicts,
		Trends:    trends,
		DB:        db,
		Hub:       hub,
		Logger:    logger,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  readBufferSize,
			WriteBufferSize: writeBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true // dashboards are served from other origins
			},
		},
	}
}

// respondDeleted writes the confirmation body for a successful delete
func respondDeleted(c *gin.Context, entity string) {
	c.JSON(http.StatusOK, gin.H{"message": entity + " deleted successfully"})
}
