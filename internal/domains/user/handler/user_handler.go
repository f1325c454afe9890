package handler

import (
	"errors"
	"net/http"

	"bookhaven-backend/internal/domains/user/model"
	"bookhaven-backend/internal/domains/user/service"
	"bookhaven-backend/internal/shared/middleware"
	"bookhaven-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err, "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		writeAuthError(c, err, "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Profile handles GET /api/v1/auth/me
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		writeAuthError(c, err, "Failed to fetch profile")
		return
	}

	response.Success(c, http.StatusOK, user)
}

func writeAuthError(c *gin.Context, err error, message string) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, model.ErrEmailTaken):
		response.Conflict(c, "an account with this email already exists")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid email or password")
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		response.InternalServerError(c, message, err)
	}
}
