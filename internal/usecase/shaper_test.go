package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/usecase"
)

func samplePlace() domain.Record {
	return domain.Place{
		State:        entity("06", "Buenos Aires"),
		Department:   entity("06441", "La Plata"),
		Municipality: entity("060441", "La Plata"),
		Lat:          -34.92,
		Lon:          -57.95,
	}.Record()
}

func TestShape_NoDirectives(t *testing.T) {
	r := samplePlace()
	out := usecase.Shape(r, domain.Directives{})

	assert.True(t, out.Equal(r))
	assert.Equal(t, domain.PlaceKeyOrder, out.Keys())
}

func TestProject(t *testing.T) {
	r := samplePlace()

	t.Run("keeps natural order regardless of requested order", func(t *testing.T) {
		out := usecase.Project(r, []string{"lon", "state", "lat"})
		assert.Equal(t, []string{"state", "lat", "lon"}, out.Keys())
	})

	t.Run("never introduces keys", func(t *testing.T) {
		out := usecase.Project(r, []string{"state", "missing"})
		assert.Equal(t, []string{"state"}, out.Keys())
	})

	t.Run("is idempotent", func(t *testing.T) {
		fields := []string{"department", "lat"}
		once := usecase.Project(r, fields)
		twice := usecase.Project(once, fields)
		assert.True(t, once.Equal(twice))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		_ = usecase.Project(r, []string{"lat"})
		assert.Equal(t, domain.PlaceKeyOrder, r.Keys())
	})
}

func TestFlatten(t *testing.T) {
	t.Run("nested records become prefixed keys", func(t *testing.T) {
		out := usecase.Flatten(samplePlace())

		assert.Equal(t, []string{
			"state_id", "state_name",
			"department_id", "department_name",
			"municipality_id", "municipality_name",
			"lat", "lon",
		}, out.Keys())
		v, _ := out.Get("department_name")
		assert.Equal(t, "La Plata", v)
	})

	t.Run("recursive", func(t *testing.T) {
		r := domain.NewRecord(domain.KV{Key: "a", Value: domain.NewRecord(
			domain.KV{Key: "b", Value: domain.NewRecord(domain.KV{Key: "c", Value: 1})},
		)})
		out := usecase.Flatten(r)
		assert.Equal(t, []string{"a_b_c"}, out.Keys())
	})

	t.Run("flat record is unchanged", func(t *testing.T) {
		r := entity("1", "x", domain.KV{Key: "lat", Value: 1.5})
		assert.True(t, usecase.Flatten(r).Equal(r))
	})
}

func TestShape_ProjectionBeforeFlatten(t *testing.T) {
	out := usecase.Shape(samplePlace(), domain.Directives{Fields: []string{"state"}, Flatten: true})
	assert.Equal(t, []string{"state_id", "state_name"}, out.Keys())
}

func TestShapeAll(t *testing.T) {
	hits := []domain.Record{
		entity("1", "a", domain.KV{Key: "lat", Value: 1.0}),
		entity("2", "b", domain.KV{Key: "lat", Value: 2.0}),
	}
	out := usecase.ShapeAll(hits, domain.Directives{Fields: []string{"name"}})

	assert.Len(t, out, 2)
	for _, r := range out {
		assert.Equal(t, []string{"name"}, r.Keys())
	}
}
