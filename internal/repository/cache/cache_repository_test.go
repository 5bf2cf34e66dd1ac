package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/repository/cache"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func TestCacheRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := setupTestRedis(t)
	repo := cache.NewCacheRepositoryFromClient(client, zap.NewNop())
	ctx := context.Background()

	t.Run("get miss", func(t *testing.T) {
		val, err := repo.Get(ctx, "test:missing")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "test:one", []byte("1"), time.Minute))
		val, err := repo.Get(ctx, "test:one")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), val)
	})

	t.Run("set many and get many keep positions", func(t *testing.T) {
		require.NoError(t, repo.SetMany(ctx, map[string][]byte{
			"test:a": []byte("a"),
			"test:c": []byte("c"),
		}, time.Minute))

		vals, err := repo.GetMany(ctx, []string{"test:a", "test:b", "test:c"})
		require.NoError(t, err)
		require.Len(t, vals, 3)
		assert.Equal(t, []byte("a"), vals[0])
		assert.Nil(t, vals[1])
		assert.Equal(t, []byte("c"), vals[2])
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "test:one"))
		val, err := repo.Get(ctx, "test:one")
		require.NoError(t, err)
		assert.Nil(t, val)
	})
}

func TestCacheRepository_UnreachableWrapsCacheError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := cache.NewCacheRepositoryFromClient(client, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Get(ctx, "georef:test")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	_, err = repo.GetMany(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	err = repo.Set(ctx, "georef:test", []byte("x"), time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrCacheError)
}
