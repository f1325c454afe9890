package service

import (
	"context"
	"errors"
	"fmt"

	"bookhaven-backend/internal/config"
	"bookhaven-backend/internal/domains/user/model"
	"bookhaven-backend/internal/domains/user/repository"
	"bookhaven-backend/pkg/clock"
	"bookhaven-backend/pkg/jwt"
	"bookhaven-backend/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error)
	EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error
}

type UserService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
	clock      clock.Clock
}

func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager, clk clock.Clock) *UserService {
	return &UserService{repo: repo, jwtManager: jwtManager, clock: clk}
}

func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// EnsureAdmin seeds the configured admin account if it does not exist yet.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	_, err := s.repo.GetByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := s.clock.Now()
	admin := &model.User{
		ID:           uuid.New(),
		Email:        cfg.Email,
		PasswordHash: string(hash),
		FullName:     cfg.FullName,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		// another instance may have seeded it concurrently
		if errors.Is(err, model.ErrEmailTaken) {
			return nil
		}
		return err
	}

	logger.Info("Admin account seeded", map[string]interface{}{"email": cfg.Email})
	return nil
}

func (s *UserService) issueToken(user *model.User) (*model.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.AuthResponse{Token: token, User: *user}, nil
}
