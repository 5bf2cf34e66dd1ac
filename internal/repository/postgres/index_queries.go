package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/pkg/utils"
)

// Batches are sent as a VALUES list with an explicit position column; every
// query joins the table LATERALly and the result is ordered by that position.

const entityQueryColumns = "idx, entity_id, name, exact, state, department, municipality, ord"

func buildEntityQuery(table adminTable, queries []domain.IndexQuery, limit int) (string, []interface{}) {
	const cols = 8
	values := make([]string, len(queries))
	args := make([]interface{}, 0, len(queries)*cols)

	for i, q := range queries {
		values[i] = placeholders(i*cols, "int", "text", "text", "bool", "text", "text", "text", "text")
		args = append(args,
			i,
			idParam(q.Params, domain.IndexEntityID),
			textParam(q.Params, domain.FieldName),
			boolParam(q.Params, domain.ParamExact),
			textParam(q.Params, domain.FieldState),
			textParam(q.Params, domain.FieldDepartment),
			textParam(q.Params, domain.FieldMunicipality),
			orderParam(q.Params),
		)
	}

	where := []string{
		"(q.entity_id IS NULL OR t.id = q.entity_id)",
		nameCondition("t.name_normalized", "q.name"),
	}
	for _, parent := range table.parents {
		where = append(where, parentCondition(parent))
	}

	order := strings.Join([]string{
		"CASE WHEN q.ord = 'id' THEN t.id END",
		"CASE WHEN q.ord = 'name' THEN t.name END",
		"CASE WHEN t.name_normalized = q.name THEN 0 ELSE 1 END",
		"t.id",
	}, ", ")

	query := fmt.Sprintf(`
		WITH q(%s) AS (
			VALUES %s
		)
		SELECT q.idx, h.id, h.name, h.lat, h.lon,
			h.state_id, h.state_name, h.department_id, h.department_name,
			h.municipality_id, h.municipality_name
		FROM q
		LEFT JOIN LATERAL (
			SELECT %s, row_number() OVER (ORDER BY %s) AS rank
			FROM %s t
			WHERE %s
			ORDER BY rank
			LIMIT %d
		) h ON true
		ORDER BY q.idx, h.rank
	`, entityQueryColumns, strings.Join(values, ", "), entityColumns(table), order, table.name,
		strings.Join(where, "\n\t\t\t\tAND "), limit)

	return query, args
}

func buildStreetQuery(queries []domain.IndexQuery, limit int) (string, []interface{}) {
	const cols = 6
	values := make([]string, len(queries))
	args := make([]interface{}, 0, len(queries)*cols)

	for i, q := range queries {
		values[i] = placeholders(i*cols, "int", "text", "bool", "text", "text", "text")
		args = append(args,
			i,
			textParam(q.Params, domain.IndexRoadName),
			boolParam(q.Params, domain.ParamExact),
			textParam(q.Params, domain.FieldState),
			textParam(q.Params, domain.FieldDepartment),
			textParam(q.Params, domain.FieldRoadType),
		)
	}

	query := fmt.Sprintf(`
		WITH q(idx, road_name, exact, state, department, road_type) AS (
			VALUES %s
		)
		SELECT q.idx, h.id, h.road_name, h.road_type,
			h.start_left, h.end_left, h.start_right, h.end_right,
			h.state_id, h.state_name, h.department_id, h.department_name
		FROM q
		LEFT JOIN LATERAL (
			SELECT %s,
				row_number() OVER (ORDER BY CASE WHEN t.name_normalized = q.road_name THEN 0 ELSE 1 END, t.id) AS rank
			FROM %s t
			WHERE %s
			ORDER BY rank
			LIMIT %d
		) h ON true
		ORDER BY q.idx, h.rank
	`, strings.Join(values, ", "), streetColumns, tableStreets, streetConditions(), limit)

	return query, args
}

func buildAddressQuery(queries []domain.IndexQuery, limit int) (string, []interface{}) {
	const cols = 7
	values := make([]string, len(queries))
	args := make([]interface{}, 0, len(queries)*cols)

	for i, q := range queries {
		values[i] = placeholders(i*cols, "int", "text", "int", "bool", "text", "text", "text")
		args = append(args,
			i,
			textParam(q.Params, domain.IndexRoadName),
			intParam(q.Params, domain.IndexNumber),
			boolParam(q.Params, domain.ParamExact),
			textParam(q.Params, domain.FieldState),
			textParam(q.Params, domain.FieldDepartment),
			textParam(q.Params, domain.FieldRoadType),
		)
	}

	query := fmt.Sprintf(`
		WITH q(idx, road_name, number, exact, state, department, road_type) AS (
			VALUES %s
		)
		SELECT q.idx, h.id, h.road_name, h.road_type, q.number, h.lat, h.lon,
			h.state_id, h.state_name, h.department_id, h.department_name
		FROM q
		LEFT JOIN LATERAL (
			SELECT %s, ST_Y(loc.point) AS lat, ST_X(loc.point) AS lon,
				row_number() OVER (ORDER BY CASE WHEN t.name_normalized = q.road_name THEN 0 ELSE 1 END, t.id) AS rank
			FROM %s t
			CROSS JOIN LATERAL (
				SELECT ST_LineInterpolatePoint(
					ST_GeometryN(ST_LineMerge(t.geom), 1),
					LEAST(GREATEST(COALESCE(
						(q.number - LEAST(t.start_left, t.start_right))::float8
							/ NULLIF(GREATEST(t.end_left, t.end_right) - LEAST(t.start_left, t.start_right), 0),
						0.5), 0), 1)
				) AS point
			) loc
			WHERE %s
				AND (q.number BETWEEN LEAST(t.start_left, t.end_left) AND GREATEST(t.start_left, t.end_left)
					OR q.number BETWEEN LEAST(t.start_right, t.end_right) AND GREATEST(t.start_right, t.end_right))
			ORDER BY rank
			LIMIT %d
		) h ON true
		ORDER BY q.idx, h.rank
	`, strings.Join(values, ", "), streetColumns, tableStreets, streetConditions(), limit)

	return query, args
}

// buildPlaceQuery passes the points as two arrays; WITH ORDINALITY keeps their positions (1-based).
func buildPlaceQuery(table adminTable, queries []domain.PlaceQuery) (string, []interface{}) {
	lats := make([]float64, len(queries))
	lons := make([]float64, len(queries))
	for i, q := range queries {
		lats[i] = q.Lat
		lons[i] = q.Lon
	}

	query := fmt.Sprintf(`
		WITH q AS (
			SELECT idx, lat, lon
			FROM unnest($1::float8[], $2::float8[]) WITH ORDINALITY AS u(lat, lon, idx)
		)
		SELECT q.idx - 1 AS idx, h.id, h.name, h.lat, h.lon,
			h.state_id, h.state_name, h.department_id, h.department_name,
			h.municipality_id, h.municipality_name
		FROM q
		LEFT JOIN LATERAL (
			SELECT %s
			FROM %s t
			WHERE ST_Contains(t.geom, ST_SetSRID(ST_MakePoint(q.lon, q.lat), %d))
			ORDER BY t.id
			LIMIT 1
		) h ON true
		ORDER BY q.idx
	`, entityColumns(table), table.name, SRID4326)

	return query, []interface{}{pq.Array(lats), pq.Array(lons)}
}

const streetColumns = `t.id, t.name AS road_name, t.road_type,
				t.start_left, t.end_left, t.start_right, t.end_right,
				t.state_id, t.state_name, t.department_id, t.department_name`

func streetConditions() string {
	return strings.Join([]string{
		nameCondition("t.name_normalized", "q.road_name"),
		parentCondition(domain.FieldState),
		parentCondition(domain.FieldDepartment),
		"(q.road_type IS NULL OR lower(t.road_type) = q.road_type)",
	}, "\n\t\t\t\tAND ")
}

// entityColumns selects every parent column; parents the table lacks come back as NULL.
func entityColumns(table adminTable) string {
	cols := []string{"t.id", "t.name", "t.lat", "t.lon"}
	for _, parent := range allParents {
		if hasParent(table, parent) {
			cols = append(cols, fmt.Sprintf("t.%[1]s_id, t.%[1]s_name", parent))
			continue
		}
		cols = append(cols, fmt.Sprintf("NULL::text AS %[1]s_id, NULL::text AS %[1]s_name", parent))
	}
	return strings.Join(cols, ", ")
}

func hasParent(table adminTable, parent string) bool {
	for _, p := range table.parents {
		if p == parent {
			return true
		}
	}
	return false
}

func nameCondition(column, param string) string {
	return fmt.Sprintf(
		"(%[2]s IS NULL OR (q.exact AND %[1]s = %[2]s) OR (NOT q.exact AND strpos(%[1]s, %[2]s) > 0))",
		column, param)
}

// parentCondition matches a parent by id or by normalized name.
func parentCondition(parent string) string {
	return fmt.Sprintf(
		"(q.%[1]s IS NULL OR t.%[1]s_id = q.%[1]s OR EXISTS (SELECT 1 FROM %[2]s p WHERE p.id = t.%[1]s_id AND p.name_normalized = q.%[1]s))",
		parent, parentTables[parent])
}

func placeholders(offset int, types ...string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("($%d)::%s", offset+i+1, t)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func textParam(params map[string]interface{}, key string) interface{} {
	s, ok := params[key].(string)
	if !ok {
		return nil
	}
	s = utils.NormalizeName(s)
	if s == "" {
		return nil
	}
	return s
}

func idParam(params map[string]interface{}, key string) interface{} {
	switch v := params[key].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return nil
}

func intParam(params map[string]interface{}, key string) interface{} {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return nil
}

func boolParam(params map[string]interface{}, key string) bool {
	b, _ := params[key].(bool)
	return b
}

func orderParam(params map[string]interface{}) interface{} {
	switch v, _ := params[domain.ParamOrder].(string); v {
	case domain.FieldID, domain.FieldName:
		return v
	}
	return nil
}
