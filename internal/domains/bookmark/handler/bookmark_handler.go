package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookhaven-backend/internal/domains/bookmark/model"
	"bookhaven-backend/internal/domains/bookmark/service"
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

// ListBookmarks handles GET /api/v1/bookmarks
func (h *Handler) ListBookmarks(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	bookmarks, err := h.service.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch bookmarks", err)
		return
	}

	response.Success(c, http.StatusOK, bookmarks)
}

// AddBookmark handles POST /api/v1/bookmarks
func (h *Handler) AddBookmark(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.AddBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	bookmark, err := h.service.AddBookmark(c.Request.Context(), userID, req)
	if err != nil {
		writeBookmarkError(c, err, "Failed to add bookmark")
		return
	}

	response.Success(c, http.StatusCreated, bookmark)
}

// RemoveBookmark handles DELETE /api/v1/bookmarks/:productId
func (h *Handler) RemoveBookmark(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.RemoveBookmark(c.Request.Context(), userID, productID); err != nil {
		writeBookmarkError(c, err, "Failed to remove bookmark")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "bookmark removed"})
}

func writeBookmarkError(c *gin.Context, err error, message string) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, model.ErrBookmarkNotFound):
		response.NotFound(c, "bookmark not found")
	case errors.Is(err, model.ErrBookmarkExists):
		response.Conflict(c, "product already bookmarked")
	default:
		response.InternalServerError(c, message, err)
	}
}
