package main

// @title georef-api
// @version 1.0.0
// @description Нормализация и обратное геокодирование административных единиц, улиц и адресов.
// @description
// @description Основные возможности:
// @description - Поиск провинций, департаментов, муниципалитетов и населённых пунктов
// @description - Нормализация улиц и адресов с номером дома
// @description - Обратное геокодирование точки (провинция, департамент, муниципалитет)
// @description - Пакетный режим: один запрос к индексу на весь батч

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/georef-api/docs"
	"github.com/georef-api/internal/config"
	httpDelivery "github.com/georef-api/internal/delivery/http"
	"github.com/georef-api/internal/delivery/http/handler"
	"github.com/georef-api/internal/domain/repository"
	"github.com/georef-api/internal/pkg/logger"
	"github.com/georef-api/internal/repository/cache"
	"github.com/georef-api/internal/repository/postgres"
	"github.com/georef-api/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting georef-api")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Int("max_results", cfg.Index.MaxResults),
		zap.Int("max_batch_size", cfg.Index.MaxBatchSize),
		zap.Duration("index_cache_ttl", cfg.Cache.IndexCacheTTL),
	)

	// 3. Connect to the index database
	db, err := postgres.New(&cfg.IndexDB, log)
	if err != nil {
		log.Fatal("Failed to connect to index database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close index database connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("Index database health check failed", zap.Error(err))
	}

	// 4. Index repository, optionally behind the Redis response cache
	var index repository.IndexRepository = postgres.NewIndexRepository(db, cfg.Index.MaxResults)
	checks := map[string]handler.HealthChecker{"index": index}

	if cfg.Cache.IndexCacheTTL > 0 {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		index = cache.NewCachedIndexRepository(index, cache.NewCacheRepository(redisClient), cfg.Cache.IndexCacheTTL, log)
		checks["cache"] = redisClient
		log.Info("Index response cache enabled")
	}

	log.Info("Repositories initialized")

	// 5. Initialize use cases
	dispatcher := usecase.NewDispatcher(index, log)
	composer := usecase.NewPlaceComposer(dispatcher, log)
	normalizerUC := usecase.NewNormalizerUseCase(dispatcher, composer, cfg.Index.MaxBatchSize, log)

	// 6. Initialize HTTP handlers and server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewNormalizerHandler(normalizerUC, log),
		handler.NewHealthHandler(checks, log),
	)

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
