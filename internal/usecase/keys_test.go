package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/usecase"
)

func TestTranslateKeys(t *testing.T) {
	table := usecase.KeyTable{"name": "road_name"}

	t.Run("renames keys found in the table", func(t *testing.T) {
		in := map[string]interface{}{"name": "santa fe", "state": "buenos aires"}
		out := usecase.TranslateKeys(in, table)

		assert.Equal(t, map[string]interface{}{"road_name": "santa fe", "state": "buenos aires"}, out)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := map[string]interface{}{"name": "santa fe"}
		_ = usecase.TranslateKeys(in, table)

		assert.Equal(t, map[string]interface{}{"name": "santa fe"}, in)
	})

	t.Run("empty input gives empty output", func(t *testing.T) {
		out := usecase.TranslateKeys(map[string]interface{}{}, table)
		assert.Empty(t, out)
	})

	t.Run("inverse translation restores the original keys", func(t *testing.T) {
		in := map[string]interface{}{"name": "corrientes", "exact": true, "untouched": 1}
		back := usecase.TranslateKeys(usecase.TranslateKeys(in, table), table.Invert())

		assert.Equal(t, in, back)
	})
}

func TestQueryKeys(t *testing.T) {
	tests := []struct {
		entity domain.Entity
		key    string
		want   string
	}{
		{domain.EntityStates, "id", "entity_id"},
		{domain.EntityStates, "name", "name"},
		{domain.EntityDepartments, "state", "state"},
		{domain.EntityLocalities, "municipality", "municipality"},
		{domain.EntityStreets, "name", "road_name"},
		{domain.EntityStreets, "road_type", "road_type"},
		{domain.EntityAddresses, "department", "department"},
	}

	for _, tt := range tests {
		t.Run(tt.entity.String()+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.QueryKeys(tt.entity)[tt.key])
		})
	}

	t.Run("states have no parent keys", func(t *testing.T) {
		_, ok := usecase.QueryKeys(domain.EntityStates)["state"]
		assert.False(t, ok)
	})
}

func TestTranslateRecord(t *testing.T) {
	r := domain.NewRecord(
		domain.KV{Key: "id", Value: "1"},
		domain.KV{Key: "road_name", Value: "SANTA FE"},
		domain.KV{Key: "road_type", Value: "AV"},
	)

	out := usecase.TranslateRecord(r, usecase.SourceKeys(domain.EntityStreets).Invert())

	assert.Equal(t, []string{"id", "name", "road_type"}, out.Keys())
	v, _ := out.Get("name")
	assert.Equal(t, "SANTA FE", v)
	assert.True(t, r.Has("road_name"))
}

func TestTranslateFields(t *testing.T) {
	assert.Nil(t, usecase.TranslateFields(nil, usecase.SourceKeys(domain.EntityStreets)))
	assert.Equal(t,
		[]string{"id", "road_name"},
		usecase.TranslateFields([]string{"id", "name"}, usecase.SourceKeys(domain.EntityStreets)))
	assert.Equal(t,
		[]string{"id", "name"},
		usecase.TranslateFields([]string{"id", "name"}, usecase.SourceKeys(domain.EntityStates)))
}
