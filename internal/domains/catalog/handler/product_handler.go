package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookhaven-backend/internal/domains/catalog/model"
	"bookhaven-backend/internal/domains/catalog/service"
	"bookhaven-backend/internal/shared/response"
	"bookhaven-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// maxPageSize caps caller-supplied limits before they reach the store.
const maxPageSize = 100

// Handler - catalog HTTP endpoints. The public product routes keep the
// storefront's original response shapes (raw objects and a bare
// pagination envelope) so existing clients keep working; only the
// admin import endpoint uses the standard response wrapper.
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListProducts - GET /api/v1/products
// Query params: page, limit, category, search, genre, maxPrice, sort
func (h *Handler) ListProducts(c *gin.Context) {
	req := model.ListProductsRequest{
		Page:     1,
		Limit:    10,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Genre:    c.Query("genre"),
		Sort:     c.DefaultQuery("sort", model.SortName),
	}

	page, err := utils.ParseOptionalInt(c.Query("page"))
	if err != nil || (page != nil && *page <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "page must be a positive integer"})
		return
	}
	if page != nil {
		req.Page = *page
	}

	limit, err := utils.ParseOptionalInt(c.Query("limit"))
	if err != nil || (limit != nil && *limit <= 0) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a positive integer"})
		return
	}
	if limit != nil {
		req.Limit = *limit
	}
	if req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}

	req.MaxPrice, err = utils.ParseOptionalDecimal(c.Query("maxPrice"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "maxPrice must be a valid number"})
		return
	}

	resp, err := h.service.ListProducts(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error fetching products.", "error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProduct - GET /api/v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	detail, err := h.service.GetProduct(c.Request.Context(), id)
	if errors.Is(err, model.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error fetching product.", "error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// SearchProducts - GET /api/v1/products/search
// Returns the raw matching records, unpaginated.
func (h *Handler) SearchProducts(c *gin.Context) {
	req := model.SearchProductsRequest{
		Query: c.Query("q"),
		Genre: c.Query("genre"),
		Sort:  c.DefaultQuery("sort", model.SortName),
	}

	var err error
	req.MinPrice, err = utils.ParseOptionalDecimal(c.Query("minPrice"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "minPrice must be a valid number"})
		return
	}
	req.MaxPrice, err = utils.ParseOptionalDecimal(c.Query("maxPrice"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "maxPrice must be a valid number"})
		return
	}

	products, err := h.service.SearchProducts(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error searching products.", "error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct - POST /api/v1/products (multipart, admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	form, err := parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product or image is missing."})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), form, image)
	if err != nil {
		writeProductMutationError(c, err, "Error adding product.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct - PUT /api/v1/products/:id (multipart, admin)
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	form, err := parseProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// Image replacement is optional on update.
	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, form, image)
	if errors.Is(err, model.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
		return
	}
	if err != nil {
		writeProductMutationError(c, err, "Error updating product.")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct - DELETE /api/v1/products/:id (admin)
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid product id"})
		return
	}

	err = h.service.DeleteProduct(c.Request.Context(), id)
	if errors.Is(err, model.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error deleting product.", "error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted."})
}

// ImportProducts - POST /api/v1/products/bulk-import (xlsx upload)
func (h *Handler) ImportProducts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "import file is required")
		return
	}

	result, err := h.service.ImportProducts(c.Request.Context(), file)
	if err != nil {
		response.InternalServerError(c, "Failed to import products", err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	response.Success(c, status, result)
}

func writeProductMutationError(c *gin.Context, err error, message string) {
	var verr validation.Errors
	if errors.As(err, &verr) ||
		errors.Is(err, model.ErrInvalidPrice) ||
		errors.Is(err, model.ErrInvalidImageFormat) ||
		errors.Is(err, model.ErrImageTooLarge) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "error": err.Error()})
}

// parseProductForm reads the multipart fields shared by create and
// update. Numeric and date fields reject non-parseable values.
func parseProductForm(c *gin.Context) (model.ProductForm, error) {
	form := model.ProductForm{
		Name:               c.PostForm("name"),
		Description:        utils.OptionalString(c.PostForm("description")),
		Author:             utils.OptionalString(c.PostForm("author")),
		Genre:              utils.OptionalString(c.PostForm("genre")),
		Publisher:          utils.OptionalString(c.PostForm("publisher")),
		ISBN:               utils.OptionalString(c.PostForm("isbn")),
		Language:           utils.OptionalString(c.PostForm("language")),
		Format:             utils.OptionalString(c.PostForm("format")),
		Dimensions:         utils.OptionalString(c.PostForm("dimensions")),
		IsAvailableInStore: utils.ParseBoolField(c.PostForm("isAvailableInStore")),
		IsBestseller:       utils.ParseBoolField(c.PostForm("isBestseller")),
		IsAwardWinner:      utils.ParseBoolField(c.PostForm("isAwardWinner")),
		IsNewRelease:       utils.ParseBoolField(c.PostForm("isNewRelease")),
		IsComingSoon:       utils.ParseBoolField(c.PostForm("isComingSoon")),
		OnSale:             utils.ParseBoolField(c.PostForm("onSale")),
		Categories:         c.PostForm("categories"),
	}

	price, err := utils.ParseOptionalDecimal(c.PostForm("price"))
	if err != nil {
		return form, model.ErrInvalidPrice
	}
	if price != nil {
		form.Price = *price
	}

	pages, err := utils.ParseOptionalInt(c.PostForm("pages"))
	if err != nil {
		return form, errors.New("pages must be an integer")
	}
	form.Pages = pages

	stock, err := utils.ParseOptionalInt(c.PostForm("stockQuantity"))
	if err != nil {
		return form, errors.New("stockQuantity must be an integer")
	}
	if stock != nil {
		form.StockQuantity = *stock
	}

	weight, err := utils.ParseOptionalDecimal(c.PostForm("weight"))
	if err != nil {
		return form, errors.New("weight must be a number")
	}
	if weight != nil {
		form.Weight = decimal.NewNullDecimal(*weight)
	}

	pct, err := utils.ParseOptionalDecimal(c.PostForm("discountPercent"))
	if err != nil {
		return form, errors.New("discountPercent must be a number")
	}
	if pct != nil {
		form.DiscountPercent = decimal.NewNullDecimal(*pct)
	}

	form.DiscountStartAt, err = utils.ParseOptionalTime(c.PostForm("discountStartDate"))
	if err != nil {
		return form, errors.New("discountStartDate must be a valid date")
	}
	form.DiscountEndAt, err = utils.ParseOptionalTime(c.PostForm("discountEndDate"))
	if err != nil {
		return form, errors.New("discountEndDate must be a valid date")
	}
	form.PublicationDate, err = utils.ParseOptionalTime(c.PostForm("publicationDate"))
	if err != nil {
		return form, errors.New("publicationDate must be a valid date")
	}

	return form, nil
}
