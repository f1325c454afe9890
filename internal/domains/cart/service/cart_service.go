package service

import (
	"context"

	"bookhaven-backend/internal/domains/cart/model"
	"bookhaven-backend/internal/domains/cart/repository"
	"bookhaven-backend/pkg/clock"

	"github.com/google/uuid"
)

// ServiceInterface - cart business operations
type ServiceInterface interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*model.CartView, error)
	AddToCart(ctx context.Context, userID uuid.UUID, req model.AddToCartRequest) error
	UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID int, req model.UpdateCartRequest) error
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID int) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type CartService struct {
	repo  repository.RepositoryInterface
	clock clock.Clock
}

func NewService(repo repository.RepositoryInterface, clk clock.Clock) ServiceInterface {
	return &CartService{repo: repo, clock: clk}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.CartView, error) {
	items, err := s.repo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := model.BuildCartView(items)
	return &view, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req model.AddToCartRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.AddItem(ctx, userID, req.ProductID, req.Quantity, s.clock.Now())
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, itemID int, req model.UpdateCartRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, req.Quantity, s.clock.Now())
}

func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID int) error {
	return s.repo.RemoveItem(ctx, userID, itemID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Clear(ctx, userID)
}
