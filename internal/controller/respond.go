// Package controller holds shared HTTP plumbing for the teacher and student
// controller packages.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/dto"
)

// WriteError maps the service error taxonomy onto HTTP statuses.
func WriteError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, apperr.ErrCodeGenerationExhausted):
		status = http.StatusServiceUnavailable
	case errors.Is(err, apperr.ErrExternalService):
		status = http.StatusBadGateway
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
