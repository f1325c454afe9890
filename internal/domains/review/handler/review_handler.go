package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookhaven-backend/internal/domains/review/model"
	"bookhaven-backend/internal/domains/review/service"
	"bookhaven-backend/internal/shared/middleware"
	"bookhaven-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// Handler - review HTTP endpoints
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListProductReviews - GET /api/v1/products/:id/reviews (public)
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	reviews, err := h.service.ListProductReviews(c.Request.Context(), productID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch reviews", err)
		return
	}

	response.Success(c, http.StatusOK, reviews)
}

// CreateReview - POST /api/v1/reviews
func (h *Handler) CreateReview(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		h.writeReviewError(c, err, "Failed to create review")
		return
	}

	response.Success(c, http.StatusCreated, review)
}

// DeleteReview - DELETE /api/v1/reviews/:id
// Owners delete their own reviews; admins delete any.
func (h *Handler) DeleteReview(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid review id")
		return
	}

	role, _ := c.Get("role")
	isAdmin := role == "admin"

	err = h.service.DeleteReview(c.Request.Context(), id, userID, isAdmin)
	if err != nil {
		h.writeReviewError(c, err, "Failed to delete review")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "review deleted"})
}

func (h *Handler) writeReviewError(c *gin.Context, err error, message string) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, model.ErrNotPurchased):
		response.BadRequest(c, "you can only review products you have purchased")
	case errors.Is(err, model.ErrAlreadyReviewed):
		response.Conflict(c, "you have already reviewed this product")
	case errors.Is(err, model.ErrReviewNotFound):
		response.NotFound(c, "review not found")
	case errors.Is(err, model.ErrNotReviewOwner):
		response.Forbidden(c, "you can only delete your own reviews")
	default:
		response.InternalServerError(c, message, err)
	}
}
