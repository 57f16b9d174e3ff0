package landing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/pkg/response"
	"leadcapture/internal/pkg/validator"
)

// Handler handles landing page HTTP requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func pageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid landing page ID")
		return 0, false
	}
	return id, true
}

// Create handles POST /api/landing-pages (super admin).
func (h *Handler) Create(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	page, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, page)
}

// List handles GET /api/landing-pages (any authenticated).
func (h *Handler) List(c *gin.Context) {
	var status *Status
	if s := c.Query("status"); s != "" {
		v := Status(s)
		status = &v
	}

	page, limit := paginationParams(c)
	pages, total, err := h.service.List(c.Request.Context(), status, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list landing pages")
		return
	}

	response.List(c, http.StatusOK, pages, len(pages), total, response.Paginate(page, limit, total))
}

// Get handles GET /api/landing-pages/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	page, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// Update handles PUT /api/landing-pages/:id (super admin).
func (h *Handler) Update(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	page, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// UpdateFormFields handles PUT /api/landing-pages/:id/form-fields (super admin).
func (h *Handler) UpdateFormFields(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var req UpdateFormFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	page, err := h.service.UpdateFormFields(c.Request.Context(), id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, page)
}

// Delete handles DELETE /api/landing-pages/:id (super admin).
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Landing page deleted")
}

// GetFormConfig handles GET /api/landing-pages/:id/form-config (public read).
func (h *Handler) GetFormConfig(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	config, err := h.service.GetFormConfig(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, config)
}

// TestForm handles POST /api/landing-pages/:id/test-form (super admin).
// Dry-runs submission validation without persisting a lead.
func (h *Handler) TestForm(c *gin.Context) {
	id, ok := pageID(c)
	if !ok {
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.service.TestForm(c.Request.Context(), id, payload)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var schemaErr *FieldSchemaError
	switch {
	case errors.Is(err, ErrPageNotFound):
		response.Error(c, http.StatusNotFound, "Landing page not found")
	case errors.Is(err, ErrNameTaken):
		response.Error(c, http.StatusConflict, "Landing page name already exists")
	case errors.Is(err, ErrURLTaken):
		response.Error(c, http.StatusConflict, "Landing page URL already exists")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "Status must be active or inactive")
	case errors.Is(err, ErrHasLeads):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.As(err, &schemaErr):
		response.ValidationErrors(c, http.StatusBadRequest, schemaErr.Errors)
	default:
		response.Error(c, http.StatusInternalServerError, "Landing page operation failed")
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
