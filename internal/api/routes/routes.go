package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fleetops/driver-service/internal/api/handlers"
	"github.com/fleetops/driver-service/internal/api/middleware"
	"github.com/fleetops/driver-service/pkg/logger"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, log *logger.Logger, nrApp *newrelic.Application) {
	// Add New Relic middleware if enabled
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}
	r.Use(middleware.RequestID(), middleware.Logger(log))

	// Health check
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		// WebSocket connection
		api.GET("/ws", h.HandleWebSocket)

		drivers := api.Group("/drivers")
		{
			drivers.POST("", h.CreateDriver)
			drivers.GET("/list", h.ListDrivers)
			drivers.GET("/:id", h.GetDriver)
			drivers.PUT("/:id", h.UpdateDriver)
			drivers.DELETE("/:id", h.DeleteDriver)
		}

		schedules := api.Group("/schedules")
		{
			schedules.POST("", h.CreateSchedule)
			schedules.GET("/list", h.ListSchedules)
			schedules.GET("/conflicts", h.FindConflicts)
			schedules.GET("/driver/:driverId", h.ListSchedulesByDriver)
			schedules.GET("/status/:status", h.ListSchedulesByStatus)
			schedules.GET("/:id", h.GetSchedule)
			schedules.PUT("/:id", h.UpdateSchedule)
			schedules.DELETE("/:id", h.DeleteSchedule)
		}

		forms := api.Group("/forms")
		{
			forms.POST("", h.CreateForm)
			forms.GET("/list", h.ListForms)
			forms.GET("/driver/:driverId", h.ListFormsByDriver)
			forms.GET("/driver/:driverId/trends", h.GetDriverTrends)
			forms.GET("/:id", h.GetForm)
			forms.PUT("/:id", h.UpdateForm)
			forms.DELETE("/:id", h.DeleteForm)
		}
	}
}
