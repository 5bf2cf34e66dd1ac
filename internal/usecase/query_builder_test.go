package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georef-api/internal/domain"
	apperrors "github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/usecase"
)

func TestBuildQuery(t *testing.T) {
	t.Run("street name is translated and directives stay out of params", func(t *testing.T) {
		q := domain.ParsedQuery{
			Params:     map[string]interface{}{"name": "santa fe", "state": "buenos aires", "exact": true},
			Directives: domain.Directives{Fields: []string{"id", "name"}, Flatten: true},
		}

		built, err := usecase.BuildQuery(domain.EntityStreets, q)
		require.NoError(t, err)

		assert.Equal(t, map[string]interface{}{
			"road_name": "santa fe",
			"state":     "buenos aires",
			"exact":     true,
		}, built.Params)
		assert.Equal(t, []string{"id", "road_name"}, built.Source)
		assert.NotContains(t, built.Params, "flatten")
		assert.NotContains(t, built.Params, "fields")
	})

	t.Run("state id becomes entity_id", func(t *testing.T) {
		q := domain.ParsedQuery{Params: map[string]interface{}{"id": "14"}}

		built, err := usecase.BuildQuery(domain.EntityStates, q)
		require.NoError(t, err)

		assert.Equal(t, map[string]interface{}{"entity_id": "14"}, built.Params)
		assert.Nil(t, built.Source)
	})

	t.Run("address is split before translation", func(t *testing.T) {
		q := domain.ParsedQuery{
			Params: map[string]interface{}{"address": "Av. Corrientes 1234", "department": "comuna 1"},
		}

		built, err := usecase.BuildQuery(domain.EntityAddresses, q)
		require.NoError(t, err)

		assert.Equal(t, map[string]interface{}{
			"road_name":  "Av. Corrientes",
			"number":     1234,
			"department": "comuna 1",
		}, built.Params)
		assert.Equal(t, "Av. Corrientes 1234", q.Params["address"])
	})

	t.Run("address without door number is an invariant violation", func(t *testing.T) {
		q := domain.ParsedQuery{Params: map[string]interface{}{"address": "Corrientes"}}

		_, err := usecase.BuildQuery(domain.EntityAddresses, q)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvariantViolation))
	})
}

func TestBuildPlaceQuery(t *testing.T) {
	req, err := usecase.BuildPlaceQuery(domain.ParsedQuery{
		Params:     map[string]interface{}{"lat": -34.6, "lon": -58.4},
		Directives: domain.Directives{Flatten: true},
	})
	require.NoError(t, err)
	assert.Equal(t, -34.6, req.Lat)
	assert.Equal(t, -58.4, req.Lon)
	assert.True(t, req.Directives.Flatten)

	_, err = usecase.BuildPlaceQuery(domain.ParsedQuery{Params: map[string]interface{}{"lat": -34.6}})
	assert.True(t, errors.Is(err, apperrors.ErrInvariantViolation))

	_, err = usecase.BuildPlaceQuery(domain.ParsedQuery{Params: map[string]interface{}{"lat": 95.0, "lon": 0.0}})
	assert.True(t, errors.Is(err, apperrors.ErrInvariantViolation))
}
