package auth

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers unauthenticated auth routes.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
}

// RegisterProtectedRoutes registers routes behind the auth middleware.
func RegisterProtectedRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/auth/me", handler.Me)
	r.PUT("/auth/updatedetails", handler.UpdateDetails)
	r.PUT("/auth/updatepassword", handler.UpdatePassword)
}
