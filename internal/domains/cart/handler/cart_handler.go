package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookhaven-backend/internal/domains/cart/model"
	"bookhaven-backend/internal/domains/cart/service"
	"bookhaven-backend/internal/shared/middleware"
	"bookhaven-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// Handler - cart HTTP endpoints. All routes require authentication;
// the cart owner is always the caller.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetCart - GET /api/v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch cart", err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// AddToCart - POST /api/v1/cart
func (h *Handler) AddToCart(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	err := h.service.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		h.writeCartError(c, err, "Failed to add to cart")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "item added to cart"})
}

// UpdateQuantity - PUT /api/v1/cart/:id
func (h *Handler) UpdateQuantity(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cart item id")
		return
	}

	var req model.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	err = h.service.UpdateQuantity(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.writeCartError(c, err, "Failed to update cart item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "quantity updated"})
}

// RemoveItem - DELETE /api/v1/cart/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid cart item id")
		return
	}

	err = h.service.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		h.writeCartError(c, err, "Failed to remove cart item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "item removed"})
}

// ClearCart - DELETE /api/v1/cart
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.ClearCart(c.Request.Context(), userID); err != nil {
		response.InternalServerError(c, "Failed to clear cart", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "cart cleared"})
}

func (h *Handler) writeCartError(c *gin.Context, err error, message string) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "product not found")
	case errors.Is(err, model.ErrCartItemNotFound):
		response.NotFound(c, "cart item not found")
	default:
		response.InternalServerError(c, message, err)
	}
}
