package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/middleware"
	"leadcapture/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SuperAdmin handles GET /api/dashboard/super-admin.
func (h *Handler) SuperAdmin(c *gin.Context) {
	overview, err := h.service.SuperAdminOverview(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	response.Success(c, http.StatusOK, overview)
}

// SubAdmin handles GET /api/dashboard/sub-admin.
func (h *Handler) SubAdmin(c *gin.Context) {
	overview, err := h.service.SubAdminOverview(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	response.Success(c, http.StatusOK, overview)
}

// RegisterRoutes registers the role-specific dashboards on an authenticated
// group.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/super-admin", middleware.SuperAdminOnly(), handler.SuperAdmin)
		dash.GET("/sub-admin", middleware.RequireRole("sub_admin"), handler.SubAdmin)
	}
}
