package middleware

import (
	"net/http"
	"strings"

	"realfun/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthMiddleware guards the copilot endpoints with the configured admin
// key. A bcrypt ADMIN_API_KEY_HASH takes precedence over the plain
// ADMIN_API_KEY; with neither configured every admin route rejects.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if !adminTokenValid(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}

func adminTokenValid(token string) bool {
	if hash := config.AppConfig.AdminAPIKeyHash; hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
	}
	if key := config.AppConfig.AdminAPIKey; key != "" {
		return token == key
	}
	return false
}
