package container

import (
	"context"
	"fmt"
	"log"

	"bookhaven-backend/internal/config"
	infracache "bookhaven-backend/internal/infrastructure/cache"
	"bookhaven-backend/internal/infrastructure/database"
	"bookhaven-backend/internal/infrastructure/storage"
	"bookhaven-backend/pkg/cache"
	"bookhaven-backend/pkg/clock"
	"bookhaven-backend/pkg/jwt"

	bannerHandler "bookhaven-backend/internal/domains/banner/handler"
	bannerRepo "bookhaven-backend/internal/domains/banner/repository"
	bannerService "bookhaven-backend/internal/domains/banner/service"
	bookmarkHandler "bookhaven-backend/internal/domains/bookmark/handler"
	bookmarkRepo "bookhaven-backend/internal/domains/bookmark/repository"
	bookmarkService "bookhaven-backend/internal/domains/bookmark/service"
	cartHandler "bookhaven-backend/internal/domains/cart/handler"
	cartRepo "bookhaven-backend/internal/domains/cart/repository"
	cartService "bookhaven-backend/internal/domains/cart/service"
	catalogHandler "bookhaven-backend/internal/domains/catalog/handler"
	catalogRepo "bookhaven-backend/internal/domains/catalog/repository"
	catalogService "bookhaven-backend/internal/domains/catalog/service"
	orderHandler "bookhaven-backend/internal/domains/order/handler"
	orderRepo "bookhaven-backend/internal/domains/order/repository"
	orderService "bookhaven-backend/internal/domains/order/service"
	reviewHandler "bookhaven-backend/internal/domains/review/handler"
	reviewRepo "bookhaven-backend/internal/domains/review/repository"
	reviewService "bookhaven-backend/internal/domains/review/service"
	userHandler "bookhaven-backend/internal/domains/user/handler"
	userRepo "bookhaven-backend/internal/domains/user/repository"
	userService "bookhaven-backend/internal/domains/user/service"

	"github.com/hibiken/asynq"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Clock       clock.Clock

	UserService   userService.ServiceInterface
	BannerService bannerService.ServiceInterface

	CatalogHandler  *catalogHandler.Handler
	CartHandler     *cartHandler.Handler
	OrderHandler    *orderHandler.Handler
	ReviewHandler   *reviewHandler.Handler
	BookmarkHandler *bookmarkHandler.Handler
	BannerHandler   *bannerHandler.Handler
	UserHandler     *userHandler.Handler
}

func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	c.Cache = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.Clock = clock.Real{}

	pool := c.DB.Pool
	imageProcessor := storage.NewImageProcessor()

	// Repositories
	catRepo := catalogRepo.NewPostgresRepository(pool)
	crtRepo := cartRepo.NewPostgresRepository(pool)
	ordRepo := orderRepo.NewPostgresRepository(pool)
	revRepo := reviewRepo.NewPostgresRepository(pool)
	bmkRepo := bookmarkRepo.NewPostgresRepository(pool)
	bnrRepo := bannerRepo.NewPostgresRepository(pool)
	usrRepo := userRepo.NewPostgresRepository(pool)

	// Services
	catSvc := catalogService.NewService(catRepo, c.Cache, imageProcessor, c.Storage, c.Clock, pool)
	crtSvc := cartService.NewService(crtRepo, c.Clock)
	ordSvc := orderService.NewService(ordRepo, crtRepo, pool, c.AsynqClient, c.Clock)
	revSvc := reviewService.NewService(revRepo, usrRepo, c.Cache, c.Clock)
	bmkSvc := bookmarkService.NewService(bmkRepo, c.Clock)
	bnrSvc := bannerService.NewService(bnrRepo, c.Clock)
	usrSvc := userService.NewService(usrRepo, c.JWTManager, c.Clock)
	c.UserService = usrSvc
	c.BannerService = bnrSvc

	// Handlers
	c.CatalogHandler = catalogHandler.NewHandler(catSvc)
	c.CartHandler = cartHandler.NewHandler(crtSvc)
	c.OrderHandler = orderHandler.NewHandler(ordSvc)
	c.ReviewHandler = reviewHandler.NewHandler(revSvc)
	c.BookmarkHandler = bookmarkHandler.NewHandler(bmkSvc)
	c.BannerHandler = bannerHandler.NewHandler(bnrSvc)
	c.UserHandler = userHandler.NewHandler(usrSvc)

	if err := usrSvc.EnsureAdmin(ctx, cfg.Admin); err != nil {
		return nil, fmt.Errorf("failed to seed admin account: %w", err)
	}

	return c, nil
}

// Cleanup releases everything the container opened, in reverse order.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close asynq client: %v", err)
		}
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close cache: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close database: %v", err)
		}
	}
}
