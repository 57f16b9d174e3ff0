package feed

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the live feed endpoint on an authenticated group.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/leads/feed", handler.Subscribe)
}
