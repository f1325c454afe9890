package service

import (
	"context"
	"encoding/json"
	"errors"

	cartrepo "bookhaven-backend/internal/domains/cart/repository"
	"bookhaven-backend/internal/domains/order/model"
	"bookhaven-backend/internal/domains/order/repository"
	"bookhaven-backend/internal/shared"
	"bookhaven-backend/pkg/clock"
	"bookhaven-backend/pkg/database"
	"bookhaven-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// ServiceInterface - order business operations
type ServiceInterface interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, req model.CreateOrderRequest) (*model.OrderView, error)
	GetOrder(ctx context.Context, id int, requester uuid.UUID, isAdmin bool) (*model.OrderView, error)
	ListOrders(ctx context.Context, status string) ([]model.OrderView, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderView, error)
	UpdateStatus(ctx context.Context, id int, req model.UpdateOrderStatusRequest) error
	ClaimOrder(ctx context.Context, req model.ClaimOrderRequest) (*model.OrderView, error)
}

type OrderService struct {
	repo        repository.RepositoryInterface
	cartRepo    cartrepo.RepositoryInterface
	pool        *pgxpool.Pool
	asynqClient *asynq.Client
	clock       clock.Clock
}

func NewService(
	repo repository.RepositoryInterface,
	cartRepo cartrepo.RepositoryInterface,
	pool *pgxpool.Pool,
	asynqClient *asynq.Client,
	clk clock.Clock,
) ServiceInterface {
	return &OrderService{
		repo:        repo,
		cartRepo:    cartRepo,
		pool:        pool,
		asynqClient: asynqClient,
		clock:       clk,
	}
}

// CreateOrder turns the caller's cart into an order: the cart is read
// and cleared in the same transaction as the order insert, so a
// concurrent cart mutation cannot leak into or out of the checkout.
// The pickup claim code is regenerated on the rare unique collision.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req model.CreateOrderRequest) (*model.OrderView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var view model.OrderView
	for attempt := 0; ; attempt++ {
		claimCode, err := model.GenerateClaimCode()
		if err != nil {
			return nil, err
		}

		err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
			cartItems, err := s.cartRepo.GetItemsTx(ctx, tx, userID)
			if err != nil {
				return err
			}
			if len(cartItems) == 0 {
				return model.ErrCartEmpty
			}

			order := model.Order{
				UserID:        userID,
				FullName:      req.FullName,
				Email:         req.Email,
				Phone:         req.Phone,
				Address:       req.Address,
				City:          req.City,
				PostalCode:    req.PostalCode,
				PaymentMethod: req.PaymentMethod,
				Status:        model.StatusPending,
				ClaimCode:     claimCode,
				OrderDate:     s.clock.Now(),
			}

			// Lines are priced at the current catalog price, captured
			// permanently on the order.
			items := make([]model.OrderItem, 0, len(cartItems))
			for _, ci := range cartItems {
				items = append(items, model.OrderItem{
					ProductID: ci.ProductID,
					Quantity:  ci.Quantity,
					UnitPrice: ci.ProductPrice,
				})
			}

			if err := s.repo.CreateTx(ctx, tx, &order, items); err != nil {
				return err
			}
			if err := s.cartRepo.ClearTx(ctx, tx, userID); err != nil {
				return err
			}

			details := make([]model.OrderItemDetail, 0, len(items))
			for i, ci := range cartItems {
				details = append(details, model.OrderItemDetail{
					OrderItem:          items[i],
					ProductName:        ci.ProductName,
					ProductDescription: ci.ProductDescription,
					ProductPrice:       ci.ProductPrice,
					ProductImage:       ci.ProductImage,
				})
			}
			view = model.NewOrderView(order, details)
			return nil
		})

		if isUniqueViolation(err) && attempt < 2 {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	s.enqueueClaimEmail(ctx, &view)
	return &view, nil
}

// enqueueClaimEmail hands the confirmation email to the worker queue.
// Failures are logged, not returned: the order is already committed.
func (s *OrderService) enqueueClaimEmail(ctx context.Context, view *model.OrderView) {
	payload, err := json.Marshal(shared.OrderClaimEmailPayload{
		Email:     view.Email,
		FullName:  view.FullName,
		OrderID:   view.ID,
		ClaimCode: view.ClaimCode,
		Total:     view.Total.StringFixed(2),
	})
	if err != nil {
		logger.Error("Failed to marshal claim email payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeSendClaimEmail, payload)
	if _, err := s.asynqClient.EnqueueContext(ctx, task, asynq.Queue(shared.QueueEmail)); err != nil {
		logger.Error("Failed to enqueue claim email", err)
		return
	}

	logger.Info("Claim email enqueued", map[string]interface{}{
		"order_id": view.ID,
	})
}

func (s *OrderService) GetOrder(ctx context.Context, id int, requester uuid.UUID, isAdmin bool) (*model.OrderView, error) {
	order, items, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && order.UserID != requester {
		return nil, model.ErrNotOrderOwner
	}

	view := model.NewOrderView(*order, items)
	return &view, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status string) ([]model.OrderView, error) {
	orders, itemsByOrder, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return buildViews(orders, itemsByOrder), nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderView, error) {
	orders, itemsByOrder, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildViews(orders, itemsByOrder), nil
}

func buildViews(orders []model.Order, itemsByOrder map[int][]model.OrderItemDetail) []model.OrderView {
	views := make([]model.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, model.NewOrderView(o, itemsByOrder[o.ID]))
	}
	return views
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, req model.UpdateOrderStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, req.Status, s.clock.Now())
}

// ClaimOrder marks a pickup as collected, keyed by the claim code the
// customer received by email.
func (s *OrderService) ClaimOrder(ctx context.Context, req model.ClaimOrderRequest) (*model.OrderView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order, err := s.repo.GetByClaimCode(ctx, req.ClaimCode)
	if err != nil {
		return nil, err
	}

	switch order.Status {
	case model.StatusClaimed:
		return nil, model.ErrOrderAlreadyClaimed
	case model.StatusCancelled:
		return nil, model.ErrOrderCancelled
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, model.StatusClaimed, s.clock.Now()); err != nil {
		return nil, err
	}

	updated, items, err := s.repo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	view := model.NewOrderView(*updated, items)
	return &view, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
