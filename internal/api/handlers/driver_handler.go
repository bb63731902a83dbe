package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-service/internal/api/dto"
)

// CreateDriver handles POST /api/drivers
func (h *Handlers) CreateDriver(c *gin.Context) {
	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err)
		return
	}

	d, err := req.ToDriver()
	if err != nil {
		h.badRequest(c, err.Error(), err)
		return
	}

	created, err := h.Drivers.Create(c.Request.Context(), d)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListDrivers handles GET /api/drivers/list
func (h *Handlers) ListDrivers(c *gin.Context) {
	drivers, err := h.Drivers.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GetDriver handles GET /api/drivers/:id
func (h *Handlers) GetDriver(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	d, err := h.Drivers.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateDriver handles PUT /api/drivers/:id
func (h *Handlers) UpdateDriver(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		h.badRequest(c, err.Error(), err)
		return
	}

	updated, err := h.Drivers.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDriver handles DELETE /api/drivers/:id
func (h *Handlers) DeleteDriver(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Drivers.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondDeleted(c, "Driver")
}
