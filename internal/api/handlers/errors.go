package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-service/internal/api/dto"
	"github.com/fleetops/driver-service/internal/domain/driver"
	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/internal/domain/schedule"
	apperrors "github.com/fleetops/driver-service/pkg/errors"
	"github.com/fleetops/driver-service/pkg/logger"
)

var validationErrors = []error{
	driver.ErrInvalidDriverName,
	driver.ErrInvalidDriverEmail,
	driver.ErrInvalidDriverPhone,
	driver.ErrInvalidLicenseNumber,
	driver.ErrInvalidExpiryDate,
	schedule.ErrInvalidDriverID,
	schedule.ErrInvalidRoute,
	schedule.ErrInvalidStatus,
	form.ErrInvalidDriverID,
	form.ErrInvalidDriverName,
	form.ErrInvalidVehicleNumber,
}

// toAppError maps domain errors onto HTTP errors
func toAppError(err error) *apperrors.AppError {
	if apperrors.IsAppError(err) {
		return apperrors.GetAppError(err)
	}

	switch {
	case errors.Is(err, driver.ErrDriverNotFound):
		return apperrors.WithCause(apperrors.ErrDriverNotFound, err)
	case errors.Is(err, schedule.ErrScheduleNotFound):
		return apperrors.WithCause(apperrors.ErrScheduleNotFound, err)
	case errors.Is(err, form.ErrFormNotFound):
		return apperrors.WithCause(apperrors.ErrFormNotFound, err)
	case errors.Is(err, driver.ErrLicenseExists):
		return apperrors.WithCause(apperrors.ErrLicenseExists, err)
	case errors.Is(err, dto.ErrEndBeforeStart), errors.Is(err, schedule.ErrInvalidWindow):
		return apperrors.WithCause(apperrors.ErrInvalidTimeWindow, err)
	}

	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return apperrors.BadRequest(v.Error(), err)
		}
	}
	return apperrors.Internal("An unexpected error occurred", err)
}

// respondError renders err as {"code", "message"} with the mapped status.
// Server errors are logged with their cause.
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= 500 && appErr.Err != nil {
		h.Logger.Error("Request failed",
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Err(err),
		)
	}
	c.JSON(appErr.Status, appErr)
}

// badRequest responds 400 for malformed payloads and parameters
func (h *Handlers) badRequest(c *gin.Context, message string, err error) {
	h.respondError(c, apperrors.BadRequest(message, err))
}

// pathID parses an int64 path parameter. It writes the error response and
// reports false when the value is not a positive integer.
func (h *Handlers) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(c, apperrors.WithCause(apperrors.ErrInvalidID, err))
		return 0, false
	}
	return id, true
}
