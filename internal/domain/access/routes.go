package access

import (
	"github.com/gin-gonic/gin"

	"leadcapture/internal/middleware"
)

// RegisterAdminRoutes registers super-admin grant management routes under /admin.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	r.POST("/grant-access", handler.Grant)
	r.PUT("/revoke-access/:id", handler.Revoke)
	r.GET("/access", handler.ListAll)
	r.GET("/access/sub-admin/:id", handler.ListBySubAdmin)
	r.GET("/access/landing-page/:id", handler.ListByLandingPage)
}

// RegisterRequestRoutes registers the access-request workflow. Sub-admins
// create and list their own requests; super admins decide.
func RegisterRequestRoutes(r *gin.RouterGroup, handler *Handler) {
	requests := r.Group("/access-requests")
	{
		requests.POST("", middleware.RequireRole("sub_admin"), handler.CreateRequest)
		requests.GET("", handler.ListRequests)
		requests.PUT("/:id/approve", middleware.SuperAdminOnly(), handler.ApproveRequest)
		requests.PUT("/:id/reject", middleware.SuperAdminOnly(), handler.RejectRequest)
		requests.DELETE("/:id", handler.DeleteRequest)
	}
}
