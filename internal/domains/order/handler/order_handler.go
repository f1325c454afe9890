package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookhaven-backend/internal/domains/order/model"
	"bookhaven-backend/internal/domains/order/service"
	"bookhaven-backend/internal/shared/middleware"
	"bookhaven-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// Handler - order HTTP endpoints
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateOrder - POST /api/v1/orders
// Places an order from the caller's cart.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.writeOrderError(c, err, "Failed to create order")
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// ListOrders - GET /api/v1/orders?status= (admin)
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.InternalServerError(c, "Failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// ListMyOrders - GET /api/v1/orders/user/me
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	orders, err := h.service.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to list orders", err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// GetOrder - GET /api/v1/orders/:id
// Owners see their own orders; admins see every order.
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	role, _ := c.Get("role")
	isAdmin := role == "admin"

	order, err := h.service.GetOrder(c.Request.Context(), id, userID, isAdmin)
	if err != nil {
		h.writeOrderError(c, err, "Failed to fetch order")
		return
	}

	response.Success(c, http.StatusOK, order)
}

// UpdateStatus - PUT /api/v1/orders/:id/status (admin)
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	err = h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeOrderError(c, err, "Failed to update order status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "order status updated"})
}

// ClaimOrder - POST /api/v1/orders/claim (admin)
// Store staff redeem a customer's pickup code.
func (h *Handler) ClaimOrder(c *gin.Context) {
	var req model.ClaimOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.service.ClaimOrder(c.Request.Context(), req)
	if err != nil {
		h.writeOrderError(c, err, "Failed to claim order")
		return
	}

	response.Success(c, http.StatusOK, order)
}

func (h *Handler) writeOrderError(c *gin.Context, err error, message string) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, model.ErrCartEmpty):
		response.BadRequest(c, "cart is empty")
	case errors.Is(err, model.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, model.ErrClaimCodeNotFound):
		response.NotFound(c, "claim code not found")
	case errors.Is(err, model.ErrNotOrderOwner):
		response.Forbidden(c, "order belongs to another user")
	case errors.Is(err, model.ErrOrderAlreadyClaimed):
		response.Conflict(c, "order already claimed")
	case errors.Is(err, model.ErrOrderCancelled):
		response.Conflict(c, "order is cancelled")
	default:
		response.InternalServerError(c, message, err)
	}
}
