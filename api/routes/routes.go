package routes

import (
	"net/http"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/handlers"
	"github.com/egysaas25-hub/fit-coach-sub001/internal/middleware"
	"github.com/egysaas25-hub/fit-coach-sub001/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerDependencies holds everything the router wires into routes
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	SettingsHandler *handlers.SettingsHandler
	Tokens          *jwt.TokenManager
	Logger          *zap.Logger
	AllowedOrigins  []string
	MetricsHandler  http.Handler // optional, served at /metrics
}

// SetupRouter sets up the router
func SetupRouter(deps HandlerDependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		public.POST("/auth/login", deps.AuthHandler.Login)
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(deps.Tokens, logger))
	{
		settings := protected.Group("/settings")
		{
			settings.GET("", deps.SettingsHandler.GetAllSettings)
			settings.GET("/:category", deps.SettingsHandler.GetSettings)
			settings.PUT("/:category", deps.SettingsHandler.UpdateSettings)
		}
	}

	return router
}
