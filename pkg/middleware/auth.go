package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primeauto/showroom-api/internal/admins"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/tokens"
)

// ClaimsKey is the gin context key the verified token identity is stored under.
const ClaimsKey = "claims"

// AuthRequired returns a Gin middleware that verifies Bearer tokens signed
// with the configured secret and stores the claims in the request context.
func AuthRequired(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		claims, err := tokens.ParseAccessToken(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// AdminOnly rejects requests whose verified token does not carry the admin
// role. Must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(ClaimsKey)
		claims, _ := v.(*tokens.Claims)
		if !ok || claims == nil || claims.Role != admins.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied, admins only"})
			return
		}
		c.Next()
	}
}
