package postgres

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georef-api/internal/config"
	"github.com/georef-api/internal/domain"
)

func TestBuildEntityQuery(t *testing.T) {
	queries := []domain.IndexQuery{
		{Params: map[string]interface{}{"name": "Córdoba", "exact": true}},
		{Params: map[string]interface{}{"entity_id": "14", "state": "Buenos  Aires", "order": "name"}},
	}

	query, args := buildEntityQuery(adminTables[domain.EntityDepartments], queries, 10)

	require.Len(t, args, 16)
	assert.Equal(t, []interface{}{0, nil, "cordoba", true, nil, nil, nil, nil}, args[:8])
	assert.Equal(t, []interface{}{1, "14", nil, false, "buenos aires", nil, nil, "name"}, args[8:])

	assert.Contains(t, query, "FROM departments t")
	assert.Contains(t, query, "($9)::int")
	assert.Contains(t, query, "LIMIT 10")
	assert.Contains(t, query, "ORDER BY q.idx, h.rank")
	assert.Contains(t, query, "FROM states p WHERE p.id = t.state_id")
	assert.NotContains(t, query, "t.department_id = q.department")
	assert.Contains(t, query, "NULL::text AS municipality_id")
}

func TestBuildEntityQuery_ParentFilters(t *testing.T) {
	query, _ := buildEntityQuery(adminTables[domain.EntityLocalities], []domain.IndexQuery{{}}, 5)

	for _, parent := range []string{"state", "department", "municipality"} {
		assert.Contains(t, query, "t."+parent+"_id = q."+parent)
	}
	assert.NotContains(t, query, "NULL::text")
}

func TestBuildStreetQuery(t *testing.T) {
	query, args := buildStreetQuery([]domain.IndexQuery{
		{Params: map[string]interface{}{"road_name": "Calle 7", "road_type": "CALLE", "department": "La Plata"}},
	}, 3)

	assert.Equal(t, []interface{}{0, "calle 7", false, nil, "la plata", "calle"}, args)
	assert.Contains(t, query, "FROM streets t")
	assert.Contains(t, query, "t.name AS road_name")
	assert.Contains(t, query, "lower(t.road_type) = q.road_type")
	assert.Contains(t, query, "LIMIT 3")
}

func TestBuildAddressQuery(t *testing.T) {
	query, args := buildAddressQuery([]domain.IndexQuery{
		{Params: map[string]interface{}{"road_name": "Calle 7", "number": 1234}},
		{Params: map[string]interface{}{"road_name": "Calle 7", "number": int64(10), "exact": true}},
	}, 10)

	require.Len(t, args, 14)
	assert.Equal(t, 1234, args[2])
	assert.Equal(t, 10, args[9])
	assert.Equal(t, true, args[10])
	assert.Contains(t, query, "ST_LineInterpolatePoint")
	assert.Equal(t, 2, strings.Count(query, "q.number BETWEEN"))
}

func TestBuildPlaceQuery(t *testing.T) {
	query, args := buildPlaceQuery(adminTables[domain.EntityMunicipalities], []domain.PlaceQuery{
		{Lat: -34.9, Lon: -57.9},
		{Lat: -31.4, Lon: -64.2},
	})

	require.Len(t, args, 2)
	assert.Equal(t, pq.Array([]float64{-34.9, -31.4}), args[0])
	assert.Equal(t, pq.Array([]float64{-57.9, -64.2}), args[1])
	assert.Contains(t, query, "WITH ORDINALITY")
	assert.Contains(t, query, "q.idx - 1 AS idx")
	assert.Contains(t, query, "ST_Contains(t.geom, ST_SetSRID(ST_MakePoint(q.lon, q.lat), 4326))")
	assert.Contains(t, query, "LIMIT 1")
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{"name": "  ", "id": 14, "order": "lat", "n": 3.0}

	assert.Nil(t, textParam(params, "name"))
	assert.Nil(t, textParam(params, "missing"))
	assert.Equal(t, "14", idParam(params, "id"))
	assert.Nil(t, orderParam(params))
	assert.Equal(t, 3, intParam(params, "n"))
	assert.False(t, boolParam(params, "exact"))
}

func TestEntityRowRecord(t *testing.T) {
	row := entityRow{
		ID:        sql.NullString{String: "06441", Valid: true},
		Name:      sql.NullString{String: "La Plata", Valid: true},
		Lat:       sql.NullFloat64{Float64: -34.95, Valid: true},
		StateID:   sql.NullString{String: "06", Valid: true},
		StateName: sql.NullString{String: "Buenos Aires", Valid: true},
	}

	rec := row.record([]string{domain.FieldState})
	assert.Equal(t, []string{"id", "name", "lat", "lon", "state"}, rec.Keys())

	lon, _ := rec.Get("lon")
	assert.Nil(t, lon)

	state, _ := rec.Get("state")
	name, _ := state.(domain.Record).Get("name")
	assert.Equal(t, "Buenos Aires", name)

	projected := selectSource(rec, []string{"state", "id", "name"})
	assert.Equal(t, []string{"id", "name", "state"}, projected.Keys())
	assert.Equal(t, rec.Keys(), selectSource(rec, nil).Keys())
}

func TestStreetAndAddressRecords(t *testing.T) {
	street := streetRow{
		ID:       sql.NullString{String: "1", Valid: true},
		RoadName: sql.NullString{String: "CALLE 7", Valid: true},
		EndLeft:  sql.NullInt64{Int64: 1998, Valid: true},
	}
	assert.Equal(t, []string{
		"id", "road_name", "road_type", "start_left", "end_left", "start_right", "end_right", "state", "department",
	}, street.record().Keys())

	address := addressRow{ID: sql.NullString{String: "1", Valid: true}, Number: sql.NullInt64{Int64: 10, Valid: true}}
	rec := address.record()
	assert.Equal(t, []string{"id", "road_name", "road_type", "number", "lat", "lon", "state", "department"}, rec.Keys())
	n, _ := rec.Get("number")
	assert.Equal(t, int64(10), n)
}

func TestCheckIdx(t *testing.T) {
	assert.NoError(t, checkIdx(0, 1))
	assert.Error(t, checkIdx(1, 1))
	assert.Error(t, checkIdx(-1, 1))
}

func TestBuildQueries_LargestBatchFitsBindLimit(t *testing.T) {
	queries := make([]domain.IndexQuery, config.MaxIndexBatchSize)
	for i := range queries {
		queries[i] = domain.IndexQuery{Params: map[string]interface{}{"name": "x", "road_name": "x", "number": 1}}
	}

	_, entityArgs := buildEntityQuery(adminTables[domain.EntityLocalities], queries, 10)
	_, streetArgs := buildStreetQuery(queries, 10)
	_, addressArgs := buildAddressQuery(queries, 10)

	for _, args := range [][]interface{}{entityArgs, streetArgs, addressArgs} {
		assert.LessOrEqual(t, len(args), 65535)
	}
}
