package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"identity-service/internal/service"
)

// ContextUserID is the gin context key under which the authenticated caller's
// user id is stored.
const ContextUserID = "user_id"

// unauthorizedBody is the single reply for every gate rejection. Missing,
// malformed, expired and forged tokens must be indistinguishable to clients.
var unauthorizedBody = gin.H{"error": "invalid or missing token"}

// AuthMiddleware creates a Gin middleware guarding routes behind bearer-token
// verification.
func AuthMiddleware(tokens *service.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("Request without Authorization header", zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.Verify(tokenString, time.Now())
		if err != nil {
			logger.Info("Rejected token", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
