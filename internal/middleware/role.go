package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Not authorized to access this route")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role.(string) == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "Access denied: insufficient permissions")
		c.Abort()
	}
}

// SuperAdminOnly gates the super-admin management surface.
func SuperAdminOnly() gin.HandlerFunc {
	return RequireRole("super_admin")
}
