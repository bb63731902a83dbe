package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-service/internal/api/dto"
	apperrors "github.com/fleetops/driver-service/pkg/errors"
)

// CreateForm handles POST /api/forms
func (h *Handlers) CreateForm(c *gin.Context) {
	var req dto.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err)
		return
	}

	created, err := h.Forms.Create(c.Request.Context(), req.ToForm())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListForms handles GET /api/forms/list
func (h *Handlers) ListForms(c *gin.Context) {
	forms, err := h.Forms.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// GetForm handles GET /api/forms/:id
func (h *Handlers) GetForm(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	f, err := h.Forms.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// ListFormsByDriver handles GET /api/forms/driver/:driverId
func (h *Handlers) ListFormsByDriver(c *gin.Context) {
	driverID, ok := h.pathID(c, "driverId")
	if !ok {
		return
	}

	forms, err := h.Forms.ListByDriver(c.Request.Context(), driverID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// GetDriverTrends handles GET /api/forms/driver/:driverId/trends
func (h *Handlers) GetDriverTrends(c *gin.Context) {
	driverID, ok := h.pathID(c, "driverId")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.respondError(c, apperrors.WithCause(apperrors.ErrInvalidLimit, err))
			return
		}
		limit = n
	}

	t, err := h.Trends.ComputeTrends(c.Request.Context(), driverID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateForm handles PUT /api/forms/:id
func (h *Handlers) UpdateForm(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request payload", err)
		return
	}

	updated, err := h.Forms.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteForm handles DELETE /api/forms/:id
func (h *Handlers) DeleteForm(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.Forms.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondDeleted(c, "Form")
}
