package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/repository/cache"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, []string) [][]byte); ok {
		return fn(ctx, keys), args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}

func (m *MockCacheRepository) SetMany(ctx context.Context, entries map[string][]byte, ttl time.Duration) error {
	return m.Called(ctx, entries, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// MockIndexRepository is a mock of IndexRepository
type MockIndexRepository struct {
	mock.Mock
}

func (m *MockIndexRepository) QueryEntities(ctx context.Context, entity domain.Entity, queries []domain.IndexQuery) ([][]domain.Record, error) {
	args := m.Called(ctx, entity, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]domain.Record), args.Error(1)
}

func (m *MockIndexRepository) QueryAddresses(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error) {
	args := m.Called(ctx, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]domain.Record), args.Error(1)
}

func (m *MockIndexRepository) QueryPlaces(ctx context.Context, entity domain.Entity, queries []domain.PlaceQuery) ([]domain.Record, error) {
	args := m.Called(ctx, entity, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockIndexRepository) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func hit(id, name string) domain.Record {
	return domain.NewRecord(domain.KV{Key: "id", Value: id}, domain.KV{Key: "name", Value: name})
}

func TestCachedIndex_DisabledWithoutTTL(t *testing.T) {
	index := &MockIndexRepository{}
	repo := cache.NewCachedIndexRepository(index, &MockCacheRepository{}, 0, zap.NewNop())
	assert.Same(t, index, repo)
}

func TestCachedIndex_MissesGoToIndexAsOneBatch(t *testing.T) {
	ctx := context.Background()
	index := &MockIndexRepository{}
	store := &MockCacheRepository{}
	repo := cache.NewCachedIndexRepository(index, store, time.Minute, zap.NewNop())

	q1 := domain.IndexQuery{Params: map[string]interface{}{"name": "salta"}}
	q2 := domain.IndexQuery{Params: map[string]interface{}{"name": "jujuy"}}
	q3 := domain.IndexQuery{Params: map[string]interface{}{"name": "chaco"}}

	// first run: everything misses and gets stored
	store.On("GetMany", ctx, mock.Anything).Return(make([][]byte, 3), nil).Once()
	index.On("QueryEntities", ctx, domain.EntityStates, []domain.IndexQuery{q1, q2, q3}).
		Return([][]domain.Record{{hit("66", "Salta")}, {hit("38", "Jujuy")}, {}}, nil).Once()

	var stored map[string][]byte
	store.On("SetMany", ctx, mock.Anything, time.Minute).
		Run(func(args mock.Arguments) { stored = args.Get(1).(map[string][]byte) }).
		Return(nil).Once()

	first, err := repo.QueryEntities(ctx, domain.EntityStates, []domain.IndexQuery{q1, q2, q3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.Len(t, stored, 3)

	// second run: q2 cached, q1 and q3 miss and are fetched in order
	var keys []string
	store.On("GetMany", ctx, mock.Anything).
		Run(func(args mock.Arguments) { keys = args.Get(1).([]string) }).
		Return(func(_ context.Context, k []string) [][]byte {
			return [][]byte{nil, stored[k[1]], nil}
		}, nil).Once()
	index.On("QueryEntities", ctx, domain.EntityStates, []domain.IndexQuery{q1, q3}).
		Return([][]domain.Record{{hit("66", "Salta")}, {}}, nil).Once()
	store.On("SetMany", ctx, mock.Anything, time.Minute).Return(nil).Once()

	second, err := repo.QueryEntities(ctx, domain.EntityStates, []domain.IndexQuery{q1, q2, q3})
	require.NoError(t, err)
	require.Len(t, second, 3)
	require.Len(t, keys, 3)

	name, _ := second[1][0].Get("name")
	assert.Equal(t, "Jujuy", name)
	assert.Empty(t, second[2])
	index.AssertExpectations(t)
}

func TestCachedIndex_CacheFailureFallsBackToIndex(t *testing.T) {
	ctx := context.Background()
	index := &MockIndexRepository{}
	store := &MockCacheRepository{}
	repo := cache.NewCachedIndexRepository(index, store, time.Minute, zap.NewNop())

	queries := []domain.PlaceQuery{{Lat: 1, Lon: 2}}
	store.On("GetMany", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()
	index.On("QueryPlaces", ctx, domain.EntityDepartments, queries).Return([]domain.Record{hit("1", "x")}, nil).Once()

	got, err := repo.QueryPlaces(ctx, domain.EntityDepartments, queries)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	store.AssertNotCalled(t, "SetMany", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedIndex_IndexFailureIsReturned(t *testing.T) {
	ctx := context.Background()
	index := &MockIndexRepository{}
	store := &MockCacheRepository{}
	repo := cache.NewCachedIndexRepository(index, store, time.Minute, zap.NewNop())

	store.On("GetMany", ctx, mock.Anything).Return(make([][]byte, 1), nil).Once()
	index.On("QueryAddresses", ctx, mock.Anything).Return(nil, errors.New("timeout")).Once()

	_, err := repo.QueryAddresses(ctx, []domain.IndexQuery{{}})
	assert.EqualError(t, err, "timeout")
}

func TestCachedIndex_Health(t *testing.T) {
	index := &MockIndexRepository{}
	repo := cache.NewCachedIndexRepository(index, &MockCacheRepository{}, time.Minute, zap.NewNop())

	index.On("Health", mock.Anything).Return(nil).Once()
	assert.NoError(t, repo.Health(context.Background()))
}
