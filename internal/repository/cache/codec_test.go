package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georef-api/internal/domain"
)

func TestCodec_HitsKeepOrderAndNesting(t *testing.T) {
	hits := []domain.Record{
		domain.NewRecord(
			domain.KV{Key: "id", Value: "06441"},
			domain.KV{Key: "name", Value: "La Plata"},
			domain.KV{Key: "lat", Value: -34.95},
			domain.KV{Key: "lon", Value: nil},
			domain.KV{Key: "state", Value: domain.NewRecord(
				domain.KV{Key: "id", Value: "06"},
				domain.KV{Key: "name", Value: "Buenos Aires"},
			)},
		),
		domain.NewRecord(
			domain.KV{Key: "road_name", Value: "CALLE 7"},
			domain.KV{Key: "number", Value: int64(1234)},
			domain.KV{Key: "end_left", Value: int64(-1)},
		),
	}

	data, err := encodeHits(hits)
	require.NoError(t, err)

	decoded, err := decodeHits(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	for i := range hits {
		assert.True(t, hits[i].Equal(decoded[i]), "record %d differs", i)
	}

	state, _ := decoded[0].Get("state")
	_, ok := state.(domain.Record)
	assert.True(t, ok)

	number, _ := decoded[1].Get("number")
	assert.Equal(t, int64(1234), number)
}

func TestCodec_EmptyValues(t *testing.T) {
	data, err := encodeHits([]domain.Record{})
	require.NoError(t, err)
	decoded, err := decodeHits(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)

	data, err = encodeTop(domain.Record{})
	require.NoError(t, err)
	top, err := decodeTop(data)
	require.NoError(t, err)
	assert.True(t, top.IsZero())
}

func TestCodec_Garbage(t *testing.T) {
	_, err := decodeHits([]byte{0xc1})
	assert.Error(t, err)
}

func TestCacheKey(t *testing.T) {
	a := domain.IndexQuery{Params: map[string]interface{}{"name": "x", "exact": true}}
	b := domain.IndexQuery{Params: map[string]interface{}{"exact": true, "name": "x"}}
	c := domain.IndexQuery{Params: map[string]interface{}{"name": "y"}}

	ka, err := cacheKey("entities:states", a)
	require.NoError(t, err)
	kb, _ := cacheKey("entities:states", b)
	kc, _ := cacheKey("entities:states", c)
	kd, _ := cacheKey("entities:departments", a)

	assert.Equal(t, ka, kb)
	assert.NotEqual(t, ka, kc)
	assert.NotEqual(t, ka, kd)
	assert.Contains(t, ka, "georef:index:entities:states:")
}
