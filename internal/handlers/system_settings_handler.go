package handlers

import (
	"net/http"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/middleware"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler handles tenant settings HTTP requests
type SettingsHandler struct {
	settingsService services.SettingsService
	logger          *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

type updateSettingsRequest struct {
	Settings interface{} `json:"settings"`
}

// GetSettings handles GET /settings/:category
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "No session"})
		return
	}

	result, err := h.settingsService.Get(c.Request.Context(), session.TenantID, models.Category(c.Param("category")))
	if err != nil {
		respondError(c, h.logger, err, "get settings")
		return
	}

	if result.FromCache {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	if result.IsDefault {
		c.JSON(http.StatusOK, gin.H{"settings": result.Settings, "isDefault": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": result.Settings, "updated_at": result.UpdatedAt})
}

// GetAllSettings handles GET /settings
func (h *SettingsHandler) GetAllSettings(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "No session"})
		return
	}

	results, err := h.settingsService.GetAll(c.Request.Context(), session.TenantID)
	if err != nil {
		respondError(c, h.logger, err, "get settings")
		return
	}

	settings := make(gin.H, len(results))
	defaults := make(gin.H, len(results))
	for _, result := range results {
		settings[string(result.Category)] = result.Settings
		defaults[string(result.Category)] = result.IsDefault
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings, "isDefault": defaults})
}

// UpdateSettings handles PUT /settings/:category
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "No session"})
		return
	}

	category, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		respondError(c, h.logger, services.ErrInvalidCategory, "update settings")
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, services.ErrInvalidFormat, "update settings")
		return
	}

	result, err := h.settingsService.Put(c.Request.Context(), session.TenantID, session.UserID, category, req.Settings)
	if err != nil {
		respondError(c, h.logger, err, "update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Settings updated successfully",
		"settings":   result.Settings,
		"updated_at": result.UpdatedAt,
	})
}
