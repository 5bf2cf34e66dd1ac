package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/georef-api/internal/config"
	"github.com/georef-api/internal/domain/repository"
	"github.com/georef-api/internal/pkg/logger"
	"github.com/georef-api/internal/repository/cache"
	"github.com/georef-api/internal/repository/postgres"
	redisRepo "github.com/georef-api/internal/repository/redis"
	"github.com/georef-api/internal/usecase"
	"github.com/georef-api/internal/worker"
	"github.com/georef-api/internal/worker/place"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting place resolve worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout))

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

	// 4. Connect to Redis (streams, and the index cache when enabled)
	redisClient, err := cache.NewRedisStreams(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	var index repository.IndexRepository = postgres.NewIndexRepository(db, cfg.Index.MaxResults)
	index = cache.NewCachedIndexRepository(index,
		cache.NewCacheRepositoryFromClient(redisClient, log),
		cfg.Cache.IndexCacheTTL, log)
	streamRepo := redisRepo.NewStreamRepository(redisClient, cfg.Worker.StreamReadTimeout, log)

	// 6. Initialize use cases
	dispatcher := usecase.NewDispatcher(index, log)
	normalizerUC := usecase.NewNormalizerUseCase(
		dispatcher,
		usecase.NewPlaceComposer(dispatcher, log),
		cfg.Index.MaxBatchSize,
		log,
	)

	// 7. Initialize workers
	resolveWorker := place.NewResolveWorker(
		streamRepo,
		normalizerUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxRetries,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(resolveWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
