package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/georef-api/internal/domain/repository"
	apperrors "github.com/georef-api/internal/pkg/errors"
)

type cacheRepository struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewCacheRepository - репозиторий кэша поверх клиента Redis
func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// NewCacheRepositoryFromClient wraps an existing client (tests, shared pools).
func NewCacheRepositoryFromClient(client redis.UniversalClient, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get: %v: %w", err, apperrors.ErrCacheError)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set: %v: %w", err, apperrors.ErrCacheError)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetMany reads all keys with one MGET; misses stay nil at their position.
func (r *cacheRepository) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to mget from cache", zap.Int("keys", len(keys)), zap.Error(err))
		return nil, fmt.Errorf("cache mget: %v: %w", err, apperrors.ErrCacheError)
	}

	out := make([][]byte, len(keys))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[i] = []byte(s)
		}
	}
	return out, nil
}

// SetMany writes all entries in one pipeline.
func (r *cacheRepository) SetMany(ctx context.Context, entries map[string][]byte, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for key, value := range entries {
		pipe.Set(ctx, key, value, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to set cache batch", zap.Int("keys", len(entries)), zap.Error(err))
		return fmt.Errorf("cache pipeline: %v: %w", err, apperrors.ErrCacheError)
	}

	r.logger.Debug("Cache batch set", zap.Int("keys", len(entries)), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete: %v: %w", err, apperrors.ErrCacheError)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}
