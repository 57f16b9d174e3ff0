package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/pkg/response"
	"leadcapture/internal/pkg/validator"
)

// Handler handles super-admin user management requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid user ID")
		return 0, false
	}
	return id, true
}

// ListPendingUsers handles GET /api/admin/pending-requests.
func (h *Handler) ListPendingUsers(c *gin.Context) {
	page, limit := paginationParams(c)
	users, total, err := h.service.ListPendingUsers(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list pending users")
		return
	}

	response.List(c, http.StatusOK, users, len(users), total, response.Paginate(page, limit, total))
}

// ApproveUser handles PUT /api/admin/approve-user/:id.
func (h *Handler) ApproveUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.service.ApproveUser(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// RejectUser handles PUT /api/admin/reject-user/:id.
func (h *Handler) RejectUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	// The reason is optional; a missing body means no reason.
	var req RejectUserRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	}

	user, err := h.service.RejectUser(c.Request.Context(), c.GetInt64("user_id"), id, req.Reason)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ListSubAdmins handles GET /api/admin/sub-admins.
func (h *Handler) ListSubAdmins(c *gin.Context) {
	var status *auth.Status
	if s := c.Query("status"); s != "" {
		v := auth.Status(s)
		status = &v
	}

	page, limit := paginationParams(c)
	users, total, err := h.service.ListSubAdmins(c.Request.Context(), status, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list sub-admins")
		return
	}

	response.List(c, http.StatusOK, users, len(users), total, response.Paginate(page, limit, total))
}

// CreateSubAdmin handles POST /api/admin/sub-admins.
func (h *Handler) CreateSubAdmin(c *gin.Context) {
	var req CreateSubAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	user, err := h.service.CreateSubAdmin(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// GetSubAdmin handles GET /api/admin/sub-admins/:id.
func (h *Handler) GetSubAdmin(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := h.service.GetSubAdmin(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateSubAdmin handles PUT /api/admin/sub-admins/:id.
func (h *Handler) UpdateSubAdmin(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateSubAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.service.UpdateSubAdmin(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteSubAdmin handles DELETE /api/admin/sub-admins/:id.
func (h *Handler) DeleteSubAdmin(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSubAdmin(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Sub-admin deleted")
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrNotSubAdmin):
		response.Error(c, http.StatusBadRequest, "User is not a sub-admin")
	case errors.Is(err, ErrAlreadyDecided):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrHasLeads):
		response.Error(c, http.StatusConflict, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "User management operation failed")
	}
}

func paginationParams(c *gin.Context) (int, int) {
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit := 10
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
