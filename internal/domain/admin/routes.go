package admin

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the user management endpoints. The group is
// expected to already carry auth and the super-admin gate.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/pending-requests", handler.ListPendingUsers)
	r.PUT("/approve-user/:id", handler.ApproveUser)
	r.PUT("/reject-user/:id", handler.RejectUser)

	subAdmins := r.Group("/sub-admins")
	{
		subAdmins.GET("", handler.ListSubAdmins)
		subAdmins.POST("", handler.CreateSubAdmin)
		subAdmins.GET("/:id", handler.GetSubAdmin)
		subAdmins.PUT("/:id", handler.UpdateSubAdmin)
		subAdmins.DELETE("/:id", handler.DeleteSubAdmin)
	}
}
