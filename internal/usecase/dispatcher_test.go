package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	apperrors "github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/usecase"
)

func TestDispatcher_Entities(t *testing.T) {
	ctx := context.Background()

	t.Run("positional with duplicate queries", func(t *testing.T) {
		index := &MockIndexRepository{}
		d := usecase.NewDispatcher(index, zap.NewNop())

		q := domain.IndexQuery{Params: map[string]interface{}{"name": "cordoba"}}
		other := domain.IndexQuery{Params: map[string]interface{}{"name": "salta"}}
		queries := []domain.IndexQuery{q, other, q}
		responses := [][]domain.Record{
			{entity("14", "Córdoba")},
			{entity("66", "Salta")},
			{entity("14", "Córdoba")},
		}
		index.On("QueryEntities", ctx, domain.EntityStates, queries).Return(responses, nil).Once()

		got, err := d.Entities(ctx, domain.EntityStates, queries)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[0][0].Equal(got[2][0]))
		name, _ := got[1][0].Get("name")
		assert.Equal(t, "Salta", name)
		index.AssertExpectations(t)
	})

	t.Run("empty batch skips the index", func(t *testing.T) {
		index := &MockIndexRepository{}
		d := usecase.NewDispatcher(index, zap.NewNop())

		got, err := d.Entities(ctx, domain.EntityStates, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		index.AssertNotCalled(t, "QueryEntities", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("index failure fails the whole batch", func(t *testing.T) {
		index := &MockIndexRepository{}
		d := usecase.NewDispatcher(index, zap.NewNop())

		index.On("QueryEntities", ctx, domain.EntityStreets, mock.Anything).
			Return(nil, errors.New("connection refused")).Once()

		got, err := d.Entities(ctx, domain.EntityStreets, []domain.IndexQuery{{}, {}})
		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, apperrors.ErrIndexError))
		assert.Equal(t, 500, apperrors.AsAppError(err).StatusCode)
	})

	t.Run("misaligned response is an invariant violation", func(t *testing.T) {
		index := &MockIndexRepository{}
		d := usecase.NewDispatcher(index, zap.NewNop())

		index.On("QueryEntities", ctx, domain.EntityStates, mock.Anything).
			Return([][]domain.Record{{}}, nil).Once()

		_, err := d.Entities(ctx, domain.EntityStates, []domain.IndexQuery{{}, {}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvariantViolation))
		assert.False(t, errors.Is(err, apperrors.ErrIndexError))
	})
}

func TestDispatcher_Addresses(t *testing.T) {
	ctx := context.Background()
	index := &MockIndexRepository{}
	d := usecase.NewDispatcher(index, zap.NewNop())

	queries := []domain.IndexQuery{{Params: map[string]interface{}{"road_name": "corrientes", "number": 1234}}}
	index.On("QueryAddresses", ctx, queries).Return([][]domain.Record{{entity("1", "CORRIENTES")}}, nil).Once()

	got, err := d.Addresses(ctx, queries)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDispatcher_Places(t *testing.T) {
	ctx := context.Background()
	index := &MockIndexRepository{}
	d := usecase.NewDispatcher(index, zap.NewNop())

	queries := []domain.PlaceQuery{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}
	index.On("QueryPlaces", ctx, domain.EntityDepartments, queries).
		Return([]domain.Record{entity("1", "a"), {}}, nil).Once()

	got, err := d.Places(ctx, domain.EntityDepartments, queries)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].IsZero())
	assert.True(t, got[1].IsZero())
}
