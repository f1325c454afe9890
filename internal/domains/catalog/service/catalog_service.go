package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"bookhaven-backend/internal/domains/catalog/model"
	"bookhaven-backend/internal/domains/catalog/repository"
	"bookhaven-backend/internal/infrastructure/storage"
	"bookhaven-backend/pkg/cache"
	"bookhaven-backend/pkg/clock"
	"bookhaven-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productDetailTTL = 10 * time.Minute

// ProductDetailCacheKey is shared with the review service, which
// invalidates the cached product whenever a rating changes.
func ProductDetailCacheKey(id int) string {
	return fmt.Sprintf("product:detail:%d", id)
}

// CatalogService - implements ServiceInterface
type CatalogService struct {
	repo           repository.RepositoryInterface
	cache          cache.Cache
	imageProcessor *storage.ImageProcessor
	minio          *storage.MinIOStorage
	clock          clock.Clock
	pool           *pgxpool.Pool
}

// NewService - constructor with DI
func NewService(
	repo repository.RepositoryInterface,
	cache cache.Cache,
	imageProcessor *storage.ImageProcessor,
	minio *storage.MinIOStorage,
	clk clock.Clock,
	pool *pgxpool.Pool,
) ServiceInterface {
	return &CatalogService{
		repo:           repo,
		cache:          cache,
		imageProcessor: imageProcessor,
		minio:          minio,
		clock:          clk,
		pool:           pool,
	}
}

// ListProducts runs the filtered, sorted, paginated catalog query and
// projects every row with its effective price at request time.
func (s *CatalogService) ListProducts(ctx context.Context, req model.ListProductsRequest) (*model.ListProductsResponse, error) {
	now := s.clock.Now()

	filter := &model.ProductFilter{
		Category: req.Category,
		Search:   req.Search,
		Genre:    req.Genre,
		MaxPrice: req.MaxPrice,
		Sort:     req.Sort,
		Limit:    req.Limit,
		Offset:   (req.Page - 1) * req.Limit,
	}

	products, total, err := s.repo.List(ctx, filter, now)
	if err != nil {
		return nil, err
	}

	views := make([]model.ProductView, 0, len(products))
	for i := range products {
		views = append(views, model.NewProductView(&products[i], now))
	}

	return &model.ListProductsResponse{
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: model.TotalPages(total, req.Limit),
		Category:   req.Category,
		Data:       views,
	}, nil
}

// GetProduct returns the extended single-item projection. The raw
// entity is cached, never the projection: finalPrice and daysLeft
// depend on the request instant and must stay fresh.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*model.ProductDetailView, error) {
	cacheKey := ProductDetailCacheKey(id)

	var product model.Product
	found, err := s.cache.Get(ctx, cacheKey, &product)
	if err != nil {
		logger.Warn("Product cache read failed", map[string]interface{}{
			"key": cacheKey, "error": err.Error(),
		})
	}

	if !found {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		product = *p

		if err := s.cache.Set(ctx, cacheKey, product, productDetailTTL); err != nil {
			logger.Warn("Product cache write failed", map[string]interface{}{
				"key": cacheKey, "error": err.Error(),
			})
		}
	}

	view := model.NewProductDetailView(&product, s.clock.Now())
	return &view, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, req model.SearchProductsRequest) ([]model.Product, error) {
	return s.repo.Search(ctx, req)
}

func (s *CatalogService) CreateProduct(ctx context.Context, form model.ProductForm, image *multipart.FileHeader) (*model.Product, error) {
	form.ApplyCategories()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	product := productFromForm(form)
	product.TotalSold = 0
	product.Rating = 0
	product.CreatedAt = s.clock.Now()

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.Image = &url
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int, form model.ProductForm, image *multipart.FileHeader) (*model.Product, error) {
	form.ApplyCategories()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product := productFromForm(form)
	product.ID = existing.ID
	product.Image = existing.Image
	product.TotalSold = existing.TotalSold
	product.Rating = existing.Rating
	product.CreatedAt = existing.CreatedAt
	now := s.clock.Now()
	product.UpdatedAt = &now

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.Image = &url
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateDetail(ctx, id)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Images are cleaned up best-effort; a leftover object is not
	// worth failing an already-committed delete.
	if existing.Image != nil {
		if prefix := imageKeyPrefix(*existing.Image); prefix != "" {
			if err := s.minio.DeleteByPrefix(ctx, prefix); err != nil {
				logger.Warn("Failed to delete product images", map[string]interface{}{
					"product_id": id, "error": err.Error(),
				})
			}
		}
	}

	s.invalidateDetail(ctx, id)
	return nil
}

// imageKeyPrefix recovers the object key prefix from a stored variant
// URL, e.g. http://host/bucket/products/covers/<uuid>/large.jpg ->
// products/covers/<uuid>/.
func imageKeyPrefix(url string) string {
	idx := strings.Index(url, "/products/covers/")
	if idx < 0 {
		return ""
	}
	key := url[idx+1:]
	slash := strings.LastIndex(key, "/")
	if slash < 0 {
		return ""
	}
	return key[:slash+1]
}

func (s *CatalogService) invalidateDetail(ctx context.Context, id int) {
	if err := s.cache.Delete(ctx, ProductDetailCacheKey(id)); err != nil {
		logger.Warn("Product cache invalidation failed", map[string]interface{}{
			"product_id": id, "error": err.Error(),
		})
	}
}

// uploadImage validates, resizes and stores an uploaded cover image,
// returning the URL of the large variant.
func (s *CatalogService) uploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	if err := s.imageProcessor.ValidateImage(data); err != nil {
		return "", imageValidationError(err)
	}

	variants, err := s.imageProcessor.ProcessImage(data)
	if err != nil {
		return "", fmt.Errorf("failed to process image: %w", err)
	}

	prefix := fmt.Sprintf("products/covers/%s", uuid.NewString())
	var largeURL string
	for name, payload := range variants {
		url, err := s.minio.Upload(ctx, fmt.Sprintf("%s/%s.jpg", prefix, name), payload, "image/jpeg")
		if err != nil {
			return "", err
		}
		if name == "large" {
			largeURL = url
		}
	}

	return largeURL, nil
}

// imageValidationError translates storage validation failures into the
// domain sentinels the handler maps to 400s, keeping the oversize case
// distinct from the wrong-format case.
func imageValidationError(err error) error {
	if errors.Is(err, storage.ErrImageTooLarge) {
		return model.ErrImageTooLarge
	}
	return model.ErrInvalidImageFormat
}

func productFromForm(form model.ProductForm) *model.Product {
	return &model.Product{
		Name:               form.Name,
		Description:        form.Description,
		Author:             form.Author,
		Genre:              form.Genre,
		Publisher:          form.Publisher,
		ISBN:               form.ISBN,
		Language:           form.Language,
		Format:             form.Format,
		Pages:              form.Pages,
		Dimensions:         form.Dimensions,
		Weight:             form.Weight,
		Price:              form.Price,
		StockQuantity:      form.StockQuantity,
		IsAvailableInStore: form.IsAvailableInStore,
		IsBestseller:       form.IsBestseller,
		IsAwardWinner:      form.IsAwardWinner,
		IsNewRelease:       form.IsNewRelease,
		IsComingSoon:       form.IsComingSoon,
		OnSale:             form.OnSale,
		DiscountPercent:    form.DiscountPercent,
		DiscountStartAt:    form.DiscountStartAt,
		DiscountEndAt:      form.DiscountEndAt,
		PublicationDate:    form.PublicationDate,
	}
}
