package landing

import (
	"github.com/gin-gonic/gin"

	"leadcapture/internal/middleware"
)

// RegisterPublicRoutes registers the read-only form config projection.
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/landing-pages/:id/form-config", handler.GetFormConfig)
}

// RegisterRoutes registers authenticated landing page routes. Reads are open
// to any authenticated user; writes are super-admin only.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	pages := r.Group("/landing-pages")
	{
		pages.GET("", handler.List)
		pages.GET("/:id", handler.Get)

		super := pages.Group("")
		super.Use(middleware.SuperAdminOnly())
		{
			super.POST("", handler.Create)
			super.PUT("/:id", handler.Update)
			super.PUT("/:id/form-fields", handler.UpdateFormFields)
			super.POST("/:id/test-form", handler.TestForm)
			super.DELETE("/:id", handler.Delete)
		}
	}
}
