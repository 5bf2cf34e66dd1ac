package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/domain/repository"
	"github.com/georef-api/internal/metrics"
	"github.com/georef-api/internal/pkg/errors"
)

const keyPrefix = "georef:index:"

// cachedIndex - read-through кэш ответов индекса.
// Кэшируются только сериализованные ответы индекса на отдельные запросы батча;
// промахи отправляются в индекс одним батчем, порядок ответов сохраняется.
type cachedIndex struct {
	next   repository.IndexRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

var _ repository.IndexRepository = (*cachedIndex)(nil)

// NewCachedIndexRepository decorates the index with a response cache. A non-positive ttl disables it.
func NewCachedIndexRepository(next repository.IndexRepository, cache repository.CacheRepository, ttl time.Duration, logger *zap.Logger) repository.IndexRepository {
	if ttl <= 0 || cache == nil {
		return next
	}
	return &cachedIndex{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *cachedIndex) QueryEntities(ctx context.Context, entity domain.Entity, queries []domain.IndexQuery) ([][]domain.Record, error) {
	return readThrough(ctx, c, "entities:"+entity.String(), queries, encodeHits, decodeHits,
		func(ctx context.Context, misses []domain.IndexQuery) ([][]domain.Record, error) {
			return c.next.QueryEntities(ctx, entity, misses)
		})
}

func (c *cachedIndex) QueryAddresses(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error) {
	return readThrough(ctx, c, "addresses", queries, encodeHits, decodeHits, c.next.QueryAddresses)
}

func (c *cachedIndex) QueryPlaces(ctx context.Context, entity domain.Entity, queries []domain.PlaceQuery) ([]domain.Record, error) {
	return readThrough(ctx, c, "places:"+entity.String(), queries, encodeTop, decodeTop,
		func(ctx context.Context, misses []domain.PlaceQuery) ([]domain.Record, error) {
			return c.next.QueryPlaces(ctx, entity, misses)
		})
}

func (c *cachedIndex) Health(ctx context.Context) error {
	return c.next.Health(ctx)
}

// readThrough answers hits from the cache and sends the misses to the index as one batch.
// Cache failures degrade to a plain index call; index failures are returned as is.
func readThrough[Q any, R any](
	ctx context.Context,
	c *cachedIndex,
	namespace string,
	queries []Q,
	encode func(R) ([]byte, error),
	decode func([]byte) (R, error),
	fetch func(context.Context, []Q) ([]R, error),
) ([]R, error) {
	if len(queries) == 0 {
		return fetch(ctx, queries)
	}

	keys := make([]string, len(queries))
	for i, q := range queries {
		key, err := cacheKey(namespace, q)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	cached, err := c.cache.GetMany(ctx, keys)
	if err != nil || len(cached) != len(keys) {
		c.logger.Warn("Index cache unavailable, querying index directly",
			zap.String("namespace", namespace), zap.Error(err))
		return fetch(ctx, queries)
	}

	results := make([]R, len(queries))
	var missPositions []int
	var misses []Q
	for i, data := range cached {
		if data != nil {
			if r, err := decode(data); err == nil {
				results[i] = r
				continue
			}
			c.logger.Warn("Dropping undecodable cache entry", zap.String("key", keys[i]))
		}
		missPositions = append(missPositions, i)
		misses = append(misses, queries[i])
	}
	metrics.ObserveCache(namespace, len(queries)-len(misses), len(misses))

	if len(misses) == 0 {
		return results, nil
	}

	fetched, err := fetch(ctx, misses)
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(misses) {
		return nil, fmt.Errorf("index answered %d of %d cache misses: %w",
			len(fetched), len(misses), errors.ErrInvariantViolation)
	}

	entries := make(map[string][]byte, len(misses))
	for j, pos := range missPositions {
		results[pos] = fetched[j]
		data, err := encode(fetched[j])
		if err != nil {
			c.logger.Warn("Failed to encode index response", zap.Error(err))
			continue
		}
		entries[keys[pos]] = data
	}

	if err := c.cache.SetMany(ctx, entries, c.ttl); err != nil {
		c.logger.Warn("Failed to store index responses", zap.String("namespace", namespace), zap.Error(err))
	}
	return results, nil
}

// cacheKey hashes the JSON form of a query; map keys are marshaled sorted, so equal queries share a key.
func cacheKey(namespace string, q interface{}) (string, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("cache key for %s: %w", namespace, err)
	}
	sum := sha256.Sum256(raw)
	return keyPrefix + namespace + ":" + hex.EncodeToString(sum[:]), nil
}
