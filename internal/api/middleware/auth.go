package middleware

import (
	"crypto/hmac"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuthMiddleware guards admin routes with a shared service key passed
// as a Bearer token. Compared constant-time; when no key is configured the
// admin surface is disabled entirely.
func AdminAuthMiddleware(serviceKey string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if serviceKey == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin routes not configured"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		key := strings.TrimSpace(parts[1])
		if !hmac.Equal([]byte(key), []byte(serviceKey)) {
			logger.Warn("Admin request with invalid service key", zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid service key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
