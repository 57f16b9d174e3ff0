package lead

import (
	"github.com/gin-gonic/gin"

	"leadcapture/internal/middleware"
)

// RegisterPublicRoutes registers the unauthenticated submission endpoint.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/leads", handler.Submit)
}

// RegisterRoutes registers authenticated lead routes. Reads and updates are
// role-scoped inside the service; deletion is super-admin only.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leads := r.Group("/leads")
	{
		leads.GET("", handler.List)
		leads.GET("/stats/overview", handler.Stats)
		leads.GET("/export", handler.ExportCSV)
		leads.GET("/:id", handler.Get)
		leads.PUT("/:id", handler.UpdateDetails)
		leads.PUT("/:id/status", handler.UpdateStatus)

		leads.DELETE("/:id", middleware.SuperAdminOnly(), handler.Delete)
	}
}
