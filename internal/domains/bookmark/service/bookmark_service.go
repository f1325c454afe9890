package service

import (
	"context"

	"bookhaven-backend/internal/domains/bookmark/model"
	"bookhaven-backend/internal/domains/bookmark/repository"
	"bookhaven-backend/pkg/clock"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.BookmarkView, error)
	AddBookmark(ctx context.Context, userID uuid.UUID, req model.AddBookmarkRequest) (*model.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID uuid.UUID, productID int) error
}

type BookmarkService struct {
	repo  repository.RepositoryInterface
	clock clock.Clock
}

func NewService(repo repository.RepositoryInterface, clk clock.Clock) *BookmarkService {
	return &BookmarkService{repo: repo, clock: clk}
}

func (s *BookmarkService) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]model.BookmarkView, error) {
	details, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	views := make([]model.BookmarkView, 0, len(details))
	for _, d := range details {
		views = append(views, model.NewBookmarkView(d, now))
	}
	return views, nil
}

func (s *BookmarkService) AddBookmark(ctx context.Context, userID uuid.UUID, req model.AddBookmarkRequest) (*model.Bookmark, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, userID, req.ProductID, s.clock.Now())
}

func (s *BookmarkService) RemoveBookmark(ctx context.Context, userID uuid.UUID, productID int) error {
	return s.repo.Remove(ctx, userID, productID)
}
