package rbac

import (
	"net/http"

	"storefront-gateway/internal/session"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates back-office routes on the authenticated user's role.
// It runs after the session middleware; a missing envelope is a wiring bug
// and is treated as unauthenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		env, ok := session.FromGin(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !IsAdmin(env.User.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
