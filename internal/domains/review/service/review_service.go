package service

import (
	"context"

	catalogservice "bookhaven-backend/internal/domains/catalog/service"
	"bookhaven-backend/internal/domains/review/model"
	"bookhaven-backend/internal/domains/review/repository"
	userrepo "bookhaven-backend/internal/domains/user/repository"
	"bookhaven-backend/pkg/cache"
	"bookhaven-backend/pkg/clock"
	"bookhaven-backend/pkg/logger"

	"github.com/google/uuid"
)

// ServiceInterface - review business operations
type ServiceInterface interface {
	ListProductReviews(ctx context.Context, productID int) ([]model.Review, error)
	CreateReview(ctx context.Context, userID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error)
	DeleteReview(ctx context.Context, id int, requester uuid.UUID, isAdmin bool) error
}

type ReviewService struct {
	repo     repository.RepositoryInterface
	userRepo userrepo.RepositoryInterface
	cache    cache.Cache
	clock    clock.Clock
}

func NewService(
	repo repository.RepositoryInterface,
	userRepo userrepo.RepositoryInterface,
	c cache.Cache,
	clk clock.Clock,
) ServiceInterface {
	return &ReviewService{
		repo:     repo,
		userRepo: userRepo,
		cache:    c,
		clock:    clk,
	}
}

func (s *ReviewService) ListProductReviews(ctx context.Context, productID int) ([]model.Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// CreateReview inserts a review for a product the caller has picked
// up (a claimed order). One review per user per product; the repeat
// attempt surfaces as a conflict straight from the storage constraint.
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	purchased, err := s.repo.HasClaimedPurchase(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, model.ErrNotPurchased
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  user.FullName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.invalidateProduct(ctx, req.ProductID)
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, id int, requester uuid.UUID, isAdmin bool) error {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && review.UserID != requester {
		return model.ErrNotReviewOwner
	}

	if err := s.repo.Delete(ctx, id, review.ProductID); err != nil {
		return err
	}

	s.invalidateProduct(ctx, review.ProductID)
	return nil
}

// invalidateProduct drops the cached product detail so the new rating
// shows up immediately.
func (s *ReviewService) invalidateProduct(ctx context.Context, productID int) {
	if err := s.cache.Delete(ctx, catalogservice.ProductDetailCacheKey(productID)); err != nil {
		logger.Warn("Product cache invalidation failed", map[string]interface{}{
			"product_id": productID, "error": err.Error(),
		})
	}
}
