package handlers

import (
	"errors"
	"net/http"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto the JSON error envelope. Anything
// not recognized is treated as an infrastructure failure.
func respondError(c *gin.Context, logger *zap.Logger, err error, action string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "message": verr.Reason})
	case errors.Is(err, services.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid category",
			"message": "Category must be one of: email, branding, notifications, general, whatsapp",
		})
	case errors.Is(err, services.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings format", "message": "settings must be a JSON object"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "message": "Email or password is incorrect"})
	default:
		logger.Error(action+" failed", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "Failed to " + action})
	}
}
