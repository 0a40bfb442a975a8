package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/database"
	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/handler"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Redis is optional: without it title reads just skip the cache
	var titleCache *cache.TitleCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("invalid redis url, running without cache", "error", err)
		} else {
			if cfg.RedisPassword != "" {
				opts.Password = cfg.RedisPassword
			}
			rdb := redis.NewClient(opts)
			if err := rdb.Ping(context.Background()).Err(); err != nil {
				logger.Warn("redis unreachable, running without cache", "error", err)
			} else {
				titleCache = cache.NewTitleCache(rdb, cfg.CacheTTL)
				logger.Info("title cache enabled", "ttl", cfg.CacheTTL)
			}
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Expired refresh tokens pile up otherwise
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warn("refresh token cleanup failed", "error", err)
			}
		}
	}()

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, titleCache)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, titleCache)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	genreHandler := handler.NewGenreHandler(genreService)
	titleHandler := handler.NewTitleHandler(titleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// Auth endpoints are rate limited per client IP
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)
	authGroup := api.Group("")
	authGroup.Use(authLimiter.Middleware())
	authHandler.RegisterRoutes(authGroup)

	// Public reads: catalog, reviews and comments are world-readable
	categoryHandler.RegisterPublicRoutes(api)
	genreHandler.RegisterPublicRoutes(api)
	titleHandler.RegisterPublicRoutes(api)
	reviewHandler.RegisterPublicRoutes(api)
	commentHandler.RegisterPublicRoutes(api)

	// Authenticated writes: review and comment mutations plus user routes.
	// Fine-grained checks (author / moderator / admin) live in the services.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	reviewHandler.RegisterAuthRoutes(authed)
	commentHandler.RegisterAuthRoutes(authed)
	userHandler.RegisterRoutes(authed)

	// Catalog mutations require the admin role up front
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())
	categoryHandler.RegisterAdminRoutes(admin)
	genreHandler.RegisterAdminRoutes(admin)
	titleHandler.RegisterAdminRoutes(admin)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
