package lead

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/domain/auth"
	"leadcapture/internal/pkg/response"
	"leadcapture/internal/pkg/validator"
)

// Handler handles lead HTTP requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func actor(c *gin.Context) (int64, auth.Role) {
	return c.GetInt64("user_id"), auth.Role(c.GetString("role"))
}

func leadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid lead ID")
		return 0, false
	}
	return id, true
}

// Submit handles POST /api/leads, the public form submission endpoint.
func (h *Handler) Submit(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	lead, err := h.service.Ingest(c.Request.Context(), payload, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": lead.ID})
}

// List handles GET /api/leads (role-scoped).
func (h *Handler) List(c *gin.Context) {
	userID, role := actor(c)

	q, ok := listQuery(c)
	if !ok {
		return
	}

	views, total, err := h.service.List(c.Request.Context(), userID, role, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list leads")
		return
	}

	response.List(c, http.StatusOK, views, len(views), total, response.Paginate(q.Page, q.Limit, total))
}

// Get handles GET /api/leads/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	userID, role := actor(c)
	view, err := h.service.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// UpdateStatus handles PUT /api/leads/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	userID, role := actor(c)
	lead, err := h.service.UpdateStatus(c.Request.Context(), userID, role, id, req.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// UpdateDetails handles PUT /api/leads/:id.
func (h *Handler) UpdateDetails(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	userID, role := actor(c)
	lead, err := h.service.UpdateDetails(c.Request.Context(), userID, role, id, req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// Delete handles DELETE /api/leads/:id (super admin).
func (h *Handler) Delete(c *gin.Context) {
	id, ok := leadID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Lead deleted")
}

// Stats handles GET /api/leads/stats/overview.
func (h *Handler) Stats(c *gin.Context) {
	userID, role := actor(c)

	q, ok := listQuery(c)
	if !ok {
		return
	}

	overview, err := h.service.Stats(c.Request.Context(), userID, role, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to compute lead stats")
		return
	}

	response.Success(c, http.StatusOK, overview)
}

// ExportCSV handles GET /api/leads/export and streams a CSV download of the
// filtered, role-scoped leads.
func (h *Handler) ExportCSV(c *gin.Context) {
	userID, role := actor(c)

	q, ok := listQuery(c)
	if !ok {
		return
	}

	export, err := h.service.ExportLeads(c.Request.Context(), userID, role, q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to export leads")
		return
	}

	filename := fmt.Sprintf("leads-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(export.Headers)
	for _, row := range export.Rows {
		record := make([]string, len(export.Headers))
		for i, header := range export.Headers {
			record[i] = row[header]
		}
		_ = w.Write(record)
	}
	w.Flush()
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var subErr *SubmissionError
	switch {
	case errors.Is(err, ErrInvalidLandingPage):
		response.ValidationErrors(c, http.StatusBadRequest, []string{"Invalid landing page"})
	case errors.As(err, &subErr):
		response.ValidationErrors(c, http.StatusBadRequest, subErr.Errors)
	case errors.Is(err, ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "Lead not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "No access to this lead")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "Invalid lead status")
	default:
		response.Error(c, http.StatusInternalServerError, "Lead operation failed")
	}
}

// listQuery parses the shared filter params. Invalid dates are rejected
// rather than silently ignored.
func listQuery(c *gin.Context) (ListQuery, bool) {
	q := ListQuery{Page: 1, Limit: 10}

	if s := c.Query("status"); s != "" {
		status := Status(s)
		if !IsValidStatus(status) {
			response.Error(c, http.StatusBadRequest, "Invalid lead status")
			return q, false
		}
		q.Status = &status
	}
	if s := c.Query("landingPage"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid landing page ID")
			return q, false
		}
		q.LandingPageID = &id
	}
	q.Search = c.Query("search")

	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
			return q, false
		}
		q.StartDate = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
			return q, false
		}
		// inclusive through the end of the day
		end := t.Add(24*time.Hour - time.Nanosecond)
		q.EndDate = &end
	}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		q.Limit = v
	}

	return q, true
}
