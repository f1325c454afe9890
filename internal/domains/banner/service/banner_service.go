package service

import (
	"context"

	"bookhaven-backend/internal/domains/banner/model"
	"bookhaven-backend/internal/domains/banner/repository"
	"bookhaven-backend/pkg/clock"
	"bookhaven-backend/pkg/logger"
)

type ServiceInterface interface {
	ListActiveBanners(ctx context.Context) ([]model.Banner, error)
	ListAllBanners(ctx context.Context) ([]model.Banner, error)
	CreateBanner(ctx context.Context, form model.BannerForm) (*model.Banner, error)
	UpdateBanner(ctx context.Context, id int, form model.BannerForm) (*model.Banner, error)
	DeleteBanner(ctx context.Context, id int) error
	ExpireOutdatedBanners(ctx context.Context) (int, error)
}

type BannerService struct {
	repo  repository.RepositoryInterface
	clock clock.Clock
}

func NewService(repo repository.RepositoryInterface, clk clock.Clock) *BannerService {
	return &BannerService{repo: repo, clock: clk}
}

func (s *BannerService) ListActiveBanners(ctx context.Context) ([]model.Banner, error) {
	return s.repo.ListActive(ctx, s.clock.Now())
}

func (s *BannerService) ListAllBanners(ctx context.Context) ([]model.Banner, error) {
	return s.repo.ListAll(ctx)
}

func (s *BannerService) CreateBanner(ctx context.Context, form model.BannerForm) (*model.Banner, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	banner := &model.Banner{
		Title:        form.Title,
		Subtitle:     form.Subtitle,
		ImageURL:     form.ImageURL,
		LinkURL:      form.LinkURL,
		IsActive:     form.IsActive,
		DisplayOrder: form.DisplayOrder,
		StartAt:      form.StartAt,
		EndAt:        form.EndAt,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) UpdateBanner(ctx context.Context, id int, form model.BannerForm) (*model.Banner, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	existing.Title = form.Title
	existing.Subtitle = form.Subtitle
	existing.ImageURL = form.ImageURL
	existing.LinkURL = form.LinkURL
	existing.IsActive = form.IsActive
	existing.DisplayOrder = form.DisplayOrder
	existing.StartAt = form.StartAt
	existing.EndAt = form.EndAt
	existing.UpdatedAt = &now

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *BannerService) DeleteBanner(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// ExpireOutdatedBanners runs the hourly sweep from the worker.
func (s *BannerService) ExpireOutdatedBanners(ctx context.Context) (int, error) {
	swept, err := s.repo.ExpireOutdated(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		logger.Info("Expired outdated banners", map[string]interface{}{"count": swept})
	}
	return swept, nil
}
