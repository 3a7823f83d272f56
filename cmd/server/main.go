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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	redisAdapter "github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/adapter/cache/redis"
	mongoRepo "github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/adapter/mongo"
	natsAdapter "github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/adapter/nats"
	s3Storage "github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/adapter/storage/s3"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/auth"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/config"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/handler"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/metrics"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/cache"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/usecase"
)

const serviceName = "temvagaai"

func main() {
	// Load .env file (optional, for local development)
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not found or error loading: %v. Relying on OS environment variables.\n", err)
	}

	// 1. Initialize Logger
	appLogger := logger.NewLogger()
	appLogger.Info("Application starting...", zap.String("service_name", serviceName))

	// 2. Load Configuration
	cfg, err := config.LoadConfig(os.Getenv("TEMVAGA_CONFIG_PATH"))
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Configuration loaded successfully",
		zap.String("http_port", cfg.HTTP.Port),
		zap.Bool("mongo_uri_set", cfg.Mongo.URI != ""),
		zap.String("metrics_port", cfg.Metrics.Port),
	)

	// 3. Connect to MongoDB
	mongoClient, err := mongoRepo.NewMongoDBConnection(&cfg.Mongo)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		appLogger.Info("Disconnecting from MongoDB...")
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	appLogger.Info("Successfully connected to MongoDB.")

	// 4. Optional collaborators: cache, events, object storage. The service
	// runs without any of them; usecases nil-check each one.
	var cacheRepo cache.CacheRepository
	if cfg.Redis.Address != "" {
		redisClient, err := redisAdapter.NewRedisClient(&cfg.Redis, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo = redisAdapter.NewRedisCacheRepository(redisClient, appLogger)
			appLogger.Info("Redis cache initialized.")
		}
	}

	var publisher usecase.AdEventPublisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := natsAdapter.NewNATSPublisher(&cfg.NATS, appLogger)
		if err != nil {
			appLogger.Warn("NATS unavailable, continuing without events", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
			appLogger.Info("NATS publisher initialized.")
		}
	}

	var storage usecase.Storage
	if cfg.Storage.Endpoint != "" && cfg.Storage.AccessKey != "" {
		s3, err := s3Storage.NewS3Storage(&cfg.Storage, appLogger)
		if err != nil {
			appLogger.Warn("Object storage unavailable, continuing without uploads", zap.Error(err))
		} else {
			storage = s3
			appLogger.Info("Object storage initialized.")
		}
	}

	// 5. Initialize Repositories
	adRepo := mongoRepo.NewAdMongoRepository(mongoClient, cfg.Mongo.Database)
	commentRepo := mongoRepo.NewCommentMongoRepository(mongoClient, cfg.Mongo.Database)
	userRepo := mongoRepo.NewUserMongoRepository(mongoClient, cfg.Mongo.Database)
	categoryRepo := mongoRepo.NewCategoryMongoRepository(mongoClient, cfg.Mongo.Database)
	favoriteRepo := mongoRepo.NewFavoriteMongoRepository(mongoClient, cfg.Mongo.Database)

	ctxIdx, cancelIdx := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userRepo.EnsureIndexes(ctxIdx); err != nil {
		appLogger.Warn("Failed to ensure user indexes", zap.Error(err))
	}
	if err := categoryRepo.EnsureIndexes(ctxIdx); err != nil {
		appLogger.Warn("Failed to ensure category indexes", zap.Error(err))
	}
	if err := favoriteRepo.EnsureIndexes(ctxIdx); err != nil {
		appLogger.Warn("Failed to ensure favorite indexes", zap.Error(err))
	}
	cancelIdx()

	// 6. Auth
	tokenManager, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		appLogger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	// 7. Metrics
	metricsManager := metrics.NewMetricsManager(serviceName)
	if cfg.Metrics.Port != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Port, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// 8. Initialize Usecases
	adUsecase := usecase.NewAdUsecase(adRepo, categoryRepo, cacheRepo, publisher, appLogger,
		cfg.Ads.DefaultPageSize, cfg.Ads.MaxPageSize)
	commentUsecase := usecase.NewCommentUsecase(commentRepo, adRepo, appLogger)
	userUsecase := usecase.NewUserUsecase(userRepo, tokenManager, appLogger)
	categoryUsecase := usecase.NewCategoryUsecase(categoryRepo, appLogger)
	favoriteUsecase := usecase.NewFavoriteUsecase(favoriteRepo, adRepo, appLogger)
	photoUsecase := usecase.NewPhotoUsecase(storage)

	// 9. HTTP Router
	router := handler.NewRouter(handler.Handlers{
		Ads:        handler.NewAdHandler(adUsecase, appLogger, metricsManager),
		Users:      handler.NewUserHandler(userUsecase, appLogger, metricsManager),
		Comments:   handler.NewCommentHandler(commentUsecase, appLogger),
		Categories: handler.NewCategoryHandler(categoryUsecase, appLogger),
		Favorites:  handler.NewFavoriteHandler(favoriteUsecase, appLogger),
		Photos:     handler.NewPhotoHandler(photoUsecase, appLogger),
	}, tokenManager, appLogger, metricsManager)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// 10. Start HTTP server and wait for shutdown signal
	go func() {
		appLogger.Info("HTTP server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Shutdown signal received", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", zap.Error(err))
	} else {
		appLogger.Info("HTTP server stopped gracefully.")
	}
}
