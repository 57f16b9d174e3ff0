package access

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/pkg/response"
	"leadcapture/internal/pkg/validator"
)

// Handler handles access grant and access request HTTP requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}

// Grant handles POST /api/admin/grant-access (super admin).
func (h *Handler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	grant, err := h.service.Grant(c.Request.Context(), c.GetInt64("user_id"), req.SubAdminID, req.LandingPageID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, grant)
}

// Revoke handles PUT /api/admin/revoke-access/:id (super admin).
func (h *Handler) Revoke(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	grant, err := h.service.Revoke(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, grant)
}

// ListAll handles GET /api/admin/access (super admin).
func (h *Handler) ListAll(c *gin.Context) {
	views, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list access records")
		return
	}
	response.Success(c, http.StatusOK, views)
}

// ListBySubAdmin handles GET /api/admin/access/sub-admin/:id (super admin).
func (h *Handler) ListBySubAdmin(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	views, err := h.service.ListBySubAdmin(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list access records")
		return
	}
	response.Success(c, http.StatusOK, views)
}

// ListByLandingPage handles GET /api/admin/access/landing-page/:id (super admin).
func (h *Handler) ListByLandingPage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	views, err := h.service.ListByLandingPage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list access records")
		return
	}
	response.Success(c, http.StatusOK, views)
}

// CreateRequest handles POST /api/access-requests (sub admin).
func (h *Handler) CreateRequest(c *gin.Context) {
	var req CreateAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	request, err := h.service.CreateRequest(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, request)
}

// ListRequests handles GET /api/access-requests. Sub-admins see their own
// requests; super admins see everything, optionally filtered by status.
func (h *Handler) ListRequests(c *gin.Context) {
	var subAdminID int64
	if c.GetString("role") != string(auth.RoleSuperAdmin) {
		subAdminID = c.GetInt64("user_id")
	}

	var status *RequestStatus
	if s := c.Query("status"); s != "" {
		v := RequestStatus(s)
		status = &v
	}

	requests, err := h.service.ListRequests(c.Request.Context(), subAdminID, status)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list access requests")
		return
	}

	response.Success(c, http.StatusOK, requests)
}

// ApproveRequest handles PUT /api/access-requests/:id/approve (super admin).
func (h *Handler) ApproveRequest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	request, err := h.service.ApproveRequest(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

// RejectRequest handles PUT /api/access-requests/:id/reject (super admin).
func (h *Handler) RejectRequest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RejectAccessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	request, err := h.service.RejectRequest(c.Request.Context(), c.GetInt64("user_id"), id, req.Reason)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, request)
}

// DeleteRequest handles DELETE /api/access-requests/:id (owner or super admin).
func (h *Handler) DeleteRequest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	err := h.service.DeleteRequest(c.Request.Context(), c.GetInt64("user_id"), auth.Role(c.GetString("role")), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Access request deleted")
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch err {
	case ErrAccessNotFound:
		response.Error(c, http.StatusNotFound, "Access record not found")
	case ErrAlreadyGranted:
		response.Error(c, http.StatusConflict, "Access already granted")
	case ErrAlreadyRevoked:
		response.Error(c, http.StatusConflict, "Access already revoked")
	case ErrNotSubAdmin, ErrSubAdminNotApproved:
		response.Error(c, http.StatusBadRequest, err.Error())
	case ErrPageMissing:
		response.Error(c, http.StatusBadRequest, "Landing page not found")
	case ErrRequestNotFound:
		response.Error(c, http.StatusNotFound, "Access request not found")
	case ErrDuplicateRequest:
		response.Error(c, http.StatusConflict, "A pending or approved request already exists for this landing page")
	case ErrRequestNotPending:
		response.Error(c, http.StatusConflict, "Access request is not pending")
	case ErrReasonRequired:
		response.Error(c, http.StatusBadRequest, "Rejection reason is required")
	default:
		response.Error(c, http.StatusInternalServerError, "Access operation failed")
	}
}
