package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-service/internal/api/dto"
	"github.com/fleetops/driver-service/internal/service/conflict"
)

// CreateSchedule handles POST /api/schedules
func (h *Handlers) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err)
		return
	}

	s, err := req.ToSchedule()
	if err != nil {
		h.respondWindowError(c, err)
		return
	}

	created, err := h.Schedules.Create(c.Request.Context(), s)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListSchedules handles GET /api/schedules/list
func (h *Handlers) ListSchedules(c *gin.Context) {
	schedules, err := h.Schedules.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// GetSchedule handles GET /api/schedules/:id
func (h *Handlers) GetSchedule(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	s, err := h.Schedules.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListSchedulesByDriver handles GET /api/schedules/driver/:driverId
func (h *Handlers) ListSchedulesByDriver(c *gin.Context) {
	driverID, ok := h.pathID(c, "driverId")
	if !ok {
		return
	}

	schedules, err := h.Schedules.ListByDriver(c.Request.Context(), driverID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// ListSchedulesByStatus handles GET /api/schedules/status/:status
func (h *Handlers) ListSchedulesByStatus(c *gin.Context) {
	schedules, err := h.Schedules.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// FindConflicts handles GET /api/schedules/conflicts
func (h *Handlers) FindConflicts(c *gin.Context) {
	var q dto.ConflictQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "Invalid query parameters", err)
		return
	}

	start, end, err := q.Window()
	if err != nil {
		h.respondWindowError(c, err)
		return
	}

	conflicts, err := h.Conflicts.FindConflicts(c.Request.Context(), conflict.Query{
		DriverID:  q.DriverID,
		Start:     start,
		End:       end,
		ExcludeID: q.ExcludeScheduleID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conflicts)
}

// UpdateSchedule handles PUT /api/schedules/:id
func (h *Handlers) UpdateSchedule(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		h.respondWindowError(c, err)
		return
	}

	updated, err := h.Schedules.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSchedule handles DELETE /api/schedules/:id
func (h *Handlers) DeleteSchedule(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Schedules.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondDeleted(c, "Schedule")
}

// respondWindowError reports an inverted window or an unparsable timestamp
func (h *Handlers) respondWindowError(c *gin.Context, err error) {
	if errors.Is(err, dto.ErrEndBeforeStart) {
		h.respondError(c, err)
		return
	}
	h.badRequest(c, err.Error(), err)
}
