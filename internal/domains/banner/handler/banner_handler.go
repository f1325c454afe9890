package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookhaven-backend/internal/domains/banner/model"
	"bookhaven-backend/internal/domains/banner/service"
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

// ListBanners handles GET /api/v1/banners - active banners only.
func (h *Handler) ListBanners(c *gin.Context) {
	banners, err := h.service.ListActiveBanners(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to fetch banners", err)
		return
	}
	response.Success(c, http.StatusOK, banners)
}

// ListAllBanners handles GET /api/v1/admin/banners - includes inactive.
func (h *Handler) ListAllBanners(c *gin.Context) {
	banners, err := h.service.ListAllBanners(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to fetch banners", err)
		return
	}
	response.Success(c, http.StatusOK, banners)
}

// CreateBanner handles POST /api/v1/admin/banners
func (h *Handler) CreateBanner(c *gin.Context) {
	var form model.BannerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	banner, err := h.service.CreateBanner(c.Request.Context(), form)
	if err != nil {
		writeBannerError(c, err, "Failed to create banner")
		return
	}

	response.Success(c, http.StatusCreated, banner)
}

// UpdateBanner handles PUT /api/v1/admin/banners/:id
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid banner id")
		return
	}

	var form model.BannerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	banner, err := h.service.UpdateBanner(c.Request.Context(), id, form)
	if err != nil {
		writeBannerError(c, err, "Failed to update banner")
		return
	}

	response.Success(c, http.StatusOK, banner)
}

// DeleteBanner handles DELETE /api/v1/admin/banners/:id
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid banner id")
		return
	}

	if err := h.service.DeleteBanner(c.Request.Context(), id); err != nil {
		writeBannerError(c, err, "Failed to delete banner")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "banner deleted"})
}

func writeBannerError(c *gin.Context, err error, message string) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verr)
	case errors.Is(err, model.ErrBannerNotFound):
		response.NotFound(c, "banner not found")
	default:
		response.InternalServerError(c, message, err)
	}
}
