package main

import (
	"net/http"

	"bookhaven-backend/internal/shared/middleware"
	"bookhaven-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	auth := middleware.AuthMiddleware(c.Config.JWT.Secret)
	admin := middleware.AdminMiddleware()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c, auth)
		setupProductRoutes(v1, c, auth, admin)
		setupCartRoutes(v1, c, auth)
		setupOrderRoutes(v1, c, auth, admin)
		setupReviewRoutes(v1, c, auth)
		setupBookmarkRoutes(v1, c, auth)
		setupBannerRoutes(v1, c, auth, admin)
	}

	return router
}

func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container, auth, admin gin.HandlerFunc) {
	products := v1.Group("/products")
	{
		products.GET("", c.CatalogHandler.ListProducts)
		products.GET("/search", c.CatalogHandler.SearchProducts)
		products.GET("/:id", c.CatalogHandler.GetProduct)
		products.GET("/:id/reviews", c.ReviewHandler.ListProductReviews)

		products.POST("", auth, admin, c.CatalogHandler.CreateProduct)
		products.POST("/bulk-import", auth, admin, c.CatalogHandler.ImportProducts)
		products.PUT("/:id", auth, admin, c.CatalogHandler.UpdateProduct)
		products.DELETE("/:id", auth, admin, c.CatalogHandler.DeleteProduct)
	}
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.UserHandler.Register)
		authGroup.POST("/login", c.UserHandler.Login)
		authGroup.GET("/me", auth, c.UserHandler.Profile)
	}
}

func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	cart := v1.Group("/cart")
	cart.Use(auth)
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("", c.CartHandler.AddToCart)
		cart.PUT("/:id", c.CartHandler.UpdateQuantity)
		cart.DELETE("/:id", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.ClearCart)
	}
}

func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container, auth, admin gin.HandlerFunc) {
	orders := v1.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", c.OrderHandler.CreateOrder)
		orders.GET("/user/me", c.OrderHandler.ListMyOrders)
		orders.GET("/:id", c.OrderHandler.GetOrder)

		orders.GET("", admin, c.OrderHandler.ListOrders)
		orders.PUT("/:id/status", admin, c.OrderHandler.UpdateStatus)
		orders.POST("/claim", admin, c.OrderHandler.ClaimOrder)
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	reviews := v1.Group("/reviews")
	reviews.Use(auth)
	{
		reviews.POST("", c.ReviewHandler.CreateReview)
		reviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}

func setupBookmarkRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	bookmarks := v1.Group("/bookmarks")
	bookmarks.Use(auth)
	{
		bookmarks.GET("", c.BookmarkHandler.ListBookmarks)
		bookmarks.POST("", c.BookmarkHandler.AddBookmark)
		bookmarks.DELETE("/:productId", c.BookmarkHandler.RemoveBookmark)
	}
}

func setupBannerRoutes(v1 *gin.RouterGroup, c *container.Container, auth, admin gin.HandlerFunc) {
	v1.GET("/banners", c.BannerHandler.ListBanners)

	banners := v1.Group("/admin/banners")
	banners.Use(auth, admin)
	{
		banners.GET("", c.BannerHandler.ListAllBanners)
		banners.POST("", c.BannerHandler.CreateBanner)
		banners.PUT("/:id", c.BannerHandler.UpdateBanner)
		banners.DELETE("/:id", c.BannerHandler.DeleteBanner)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["cache"] = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
