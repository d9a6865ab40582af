package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/egysaas25-hub/fit-coach-sub001/internal/models"
	"github.com/egysaas25-hub/fit-coach-sub001/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionKey = "session"

// SessionFromContext returns the session set by JWTAuthMiddleware
func SessionFromContext(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	session, ok := v.(models.Session)
	return session, ok
}

// SetSession stores session on the request context
func SetSession(c *gin.Context, session models.Session) {
	c.Set(sessionKey, session)
}

// JWTAuthMiddleware resolves the bearer token into a tenant session.
func JWTAuthMiddleware(tokens *jwt.TokenManager, logger *zap.Logger) gin.HandlerFunc {
	const bearerSchema = "Bearer "

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Authorization header must start with Bearer "})
			return
		}

		claims, err := tokens.Parse(authHeader[len(bearerSchema):])
		if err != nil {
			logger.Debug("token rejected", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
			message := "Invalid token"
			if errors.Is(err, jwt.ErrExpired) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": message})
			return
		}

		SetSession(c, models.Session{
			TenantID: claims.TenantID,
			UserID:   claims.Subject,
			Email:    claims.Email,
			Role:     claims.Role,
		})
		c.Next()
	}
}
