package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadcapture/internal/pkg/response"
	"leadcapture/internal/pkg/validator"
)

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /api/auth/register (public).
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if err == ErrEmailAlreadyExists {
			response.Error(c, http.StatusBadRequest, "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login handles POST /api/auth/login (public).
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		case ErrNotApproved:
			response.Error(c, http.StatusForbidden, "Account is pending approval or has been rejected")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if err == ErrUserNotFound {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateDetails handles PUT /api/auth/updatedetails.
func (h *Handler) UpdateDetails(c *gin.Context) {
	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.service.UpdateDetails(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if err == ErrUserNotFound {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update details")
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdatePassword handles PUT /api/auth/updatepassword.
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	result, err := h.service.UpdatePassword(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		switch err {
		case ErrUserNotFound:
			response.Error(c, http.StatusNotFound, "User not found")
		case ErrWrongPassword:
			response.Error(c, http.StatusUnauthorized, "Current password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update password")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
