package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole gates a route on the role claim set by JWTAuthMiddleware.
// The rejection message is per-route ("Only jobseekers can apply", ...).
func RequireRole(role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, exists := c.Get("role") // Role claim from the validated token
		if !exists {
			// No validated token in context
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized"})
			return
		}
		// Check the claim against the required role
		if claim != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "message": message})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
