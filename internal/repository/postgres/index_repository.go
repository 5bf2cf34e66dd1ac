package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/domain/repository"
)

type indexRepository struct {
	db         *DB
	maxResults int
	logger     *zap.Logger
}

var _ repository.IndexRepository = (*indexRepository)(nil)

// NewIndexRepository - индекс на PostGIS; maxResults ограничивает число хитов на запрос
func NewIndexRepository(db *DB, maxResults int) repository.IndexRepository {
	return &indexRepository{
		db:         db,
		maxResults: maxResults,
		logger:     db.logger,
	}
}

type entityRow struct {
	Idx              int             `db:"idx"`
	ID               sql.NullString  `db:"id"`
	Name             sql.NullString  `db:"name"`
	Lat              sql.NullFloat64 `db:"lat"`
	Lon              sql.NullFloat64 `db:"lon"`
	StateID          sql.NullString  `db:"state_id"`
	StateName        sql.NullString  `db:"state_name"`
	DepartmentID     sql.NullString  `db:"department_id"`
	DepartmentName   sql.NullString  `db:"department_name"`
	MunicipalityID   sql.NullString  `db:"municipality_id"`
	MunicipalityName sql.NullString  `db:"municipality_name"`
}

func (r entityRow) record(parents []string) domain.Record {
	rec := domain.NewRecord(
		domain.KV{Key: domain.FieldID, Value: nullString(r.ID)},
		domain.KV{Key: domain.FieldName, Value: nullString(r.Name)},
		domain.KV{Key: domain.FieldLat, Value: nullFloat(r.Lat)},
		domain.KV{Key: domain.FieldLon, Value: nullFloat(r.Lon)},
	)
	for _, parent := range parents {
		switch parent {
		case domain.FieldState:
			rec.Set(parent, ref(r.StateID, r.StateName))
		case domain.FieldDepartment:
			rec.Set(parent, ref(r.DepartmentID, r.DepartmentName))
		case domain.FieldMunicipality:
			rec.Set(parent, ref(r.MunicipalityID, r.MunicipalityName))
		}
	}
	return rec
}

type streetRow struct {
	Idx            int            `db:"idx"`
	ID             sql.NullString `db:"id"`
	RoadName       sql.NullString `db:"road_name"`
	RoadType       sql.NullString `db:"road_type"`
	StartLeft      sql.NullInt64  `db:"start_left"`
	EndLeft        sql.NullInt64  `db:"end_left"`
	StartRight     sql.NullInt64  `db:"start_right"`
	EndRight       sql.NullInt64  `db:"end_right"`
	StateID        sql.NullString `db:"state_id"`
	StateName      sql.NullString `db:"state_name"`
	DepartmentID   sql.NullString `db:"department_id"`
	DepartmentName sql.NullString `db:"department_name"`
}

func (r streetRow) record() domain.Record {
	return domain.NewRecord(
		domain.KV{Key: domain.FieldID, Value: nullString(r.ID)},
		domain.KV{Key: domain.IndexRoadName, Value: nullString(r.RoadName)},
		domain.KV{Key: domain.FieldRoadType, Value: nullString(r.RoadType)},
		domain.KV{Key: domain.FieldStartLeft, Value: nullInt(r.StartLeft)},
		domain.KV{Key: domain.FieldEndLeft, Value: nullInt(r.EndLeft)},
		domain.KV{Key: domain.FieldStartRight, Value: nullInt(r.StartRight)},
		domain.KV{Key: domain.FieldEndRight, Value: nullInt(r.EndRight)},
		domain.KV{Key: domain.FieldState, Value: ref(r.StateID, r.StateName)},
		domain.KV{Key: domain.FieldDepartment, Value: ref(r.DepartmentID, r.DepartmentName)},
	)
}

type addressRow struct {
	Idx            int             `db:"idx"`
	ID             sql.NullString  `db:"id"`
	RoadName       sql.NullString  `db:"road_name"`
	RoadType       sql.NullString  `db:"road_type"`
	Number         sql.NullInt64   `db:"number"`
	Lat            sql.NullFloat64 `db:"lat"`
	Lon            sql.NullFloat64 `db:"lon"`
	StateID        sql.NullString  `db:"state_id"`
	StateName      sql.NullString  `db:"state_name"`
	DepartmentID   sql.NullString  `db:"department_id"`
	DepartmentName sql.NullString  `db:"department_name"`
}

func (r addressRow) record() domain.Record {
	return domain.NewRecord(
		domain.KV{Key: domain.FieldID, Value: nullString(r.ID)},
		domain.KV{Key: domain.IndexRoadName, Value: nullString(r.RoadName)},
		domain.KV{Key: domain.FieldRoadType, Value: nullString(r.RoadType)},
		domain.KV{Key: domain.FieldNumber, Value: nullInt(r.Number)},
		domain.KV{Key: domain.FieldLat, Value: nullFloat(r.Lat)},
		domain.KV{Key: domain.FieldLon, Value: nullFloat(r.Lon)},
		domain.KV{Key: domain.FieldState, Value: ref(r.StateID, r.StateName)},
		domain.KV{Key: domain.FieldDepartment, Value: ref(r.DepartmentID, r.DepartmentName)},
	)
}

// QueryEntities возвращает хиты по каждому запросу батча, в порядке запросов
func (r *indexRepository) QueryEntities(ctx context.Context, entity domain.Entity, queries []domain.IndexQuery) ([][]domain.Record, error) {
	if len(queries) == 0 {
		return [][]domain.Record{}, nil
	}
	if entity == domain.EntityStreets {
		return r.queryStreets(ctx, queries)
	}

	table, ok := adminTables[entity]
	if !ok {
		return nil, fmt.Errorf("unsupported index entity: %s", entity)
	}

	query, args := buildEntityQuery(table, queries, r.maxResults)
	results := emptyResults(len(queries))

	err := r.scan(ctx, entity, query, args, func(rows *sqlx.Rows) error {
		var row entityRow
		if err := rows.StructScan(&row); err != nil {
			return err
		}
		if !row.ID.Valid {
			return nil
		}
		if err := checkIdx(row.Idx, len(queries)); err != nil {
			return err
		}
		results[row.Idx] = append(results[row.Idx], selectSource(row.record(table.parents), queries[row.Idx].Source))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *indexRepository) queryStreets(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error) {
	query, args := buildStreetQuery(queries, r.maxResults)
	results := emptyResults(len(queries))

	err := r.scan(ctx, domain.EntityStreets, query, args, func(rows *sqlx.Rows) error {
		var row streetRow
		if err := rows.StructScan(&row); err != nil {
			return err
		}
		if !row.ID.Valid {
			return nil
		}
		if err := checkIdx(row.Idx, len(queries)); err != nil {
			return err
		}
		results[row.Idx] = append(results[row.Idx], selectSource(row.record(), queries[row.Idx].Source))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// QueryAddresses ищет улицы, чей диапазон номеров содержит номер дома, и интерполирует точку
func (r *indexRepository) QueryAddresses(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error) {
	if len(queries) == 0 {
		return [][]domain.Record{}, nil
	}

	query, args := buildAddressQuery(queries, r.maxResults)
	results := emptyResults(len(queries))

	err := r.scan(ctx, domain.EntityAddresses, query, args, func(rows *sqlx.Rows) error {
		var row addressRow
		if err := rows.StructScan(&row); err != nil {
			return err
		}
		if !row.ID.Valid {
			return nil
		}
		if err := checkIdx(row.Idx, len(queries)); err != nil {
			return err
		}
		results[row.Idx] = append(results[row.Idx], selectSource(row.record(), queries[row.Idx].Source))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// QueryPlaces возвращает сущность, содержащую каждую точку; пустой Record, если точка вне индекса
func (r *indexRepository) QueryPlaces(ctx context.Context, entity domain.Entity, queries []domain.PlaceQuery) ([]domain.Record, error) {
	if len(queries) == 0 {
		return []domain.Record{}, nil
	}

	table, ok := adminTables[entity]
	if !ok {
		return nil, fmt.Errorf("unsupported place entity: %s", entity)
	}

	query, args := buildPlaceQuery(table, queries)
	results := make([]domain.Record, len(queries))

	err := r.scan(ctx, entity, query, args, func(rows *sqlx.Rows) error {
		var row entityRow
		if err := rows.StructScan(&row); err != nil {
			return err
		}
		if !row.ID.Valid {
			return nil
		}
		if err := checkIdx(row.Idx, len(queries)); err != nil {
			return err
		}
		results[row.Idx] = selectSource(row.record(table.parents), queries[row.Idx].Source)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *indexRepository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

func (r *indexRepository) scan(ctx context.Context, entity domain.Entity, query string, args []interface{}, each func(*sqlx.Rows) error) error {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query index", zap.String("entity", entity.String()), zap.Error(err))
		return fmt.Errorf("failed to query %s: %w", entity, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := each(rows); err != nil {
			r.logger.Error("failed to scan index row", zap.String("entity", entity.String()), zap.Error(err))
			return fmt.Errorf("failed to scan %s: %w", entity, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %s rows: %w", entity, err)
	}
	return nil
}

func emptyResults(n int) [][]domain.Record {
	results := make([][]domain.Record, n)
	for i := range results {
		results[i] = []domain.Record{}
	}
	return results
}

func checkIdx(idx, n int) error {
	if idx < 0 || idx >= n {
		return fmt.Errorf("row position %d outside batch of %d", idx, n)
	}
	return nil
}

// selectSource keeps only the requested fields, in the record's order. No source means all fields.
func selectSource(rec domain.Record, source []string) domain.Record {
	if len(source) == 0 {
		return rec
	}
	keep := make(map[string]bool, len(source))
	for _, f := range source {
		keep[f] = true
	}
	out := domain.NewRecord()
	for _, k := range rec.Keys() {
		if keep[k] {
			v, _ := rec.Get(k)
			out.Set(k, v)
		}
	}
	return out
}

func ref(id, name sql.NullString) domain.Record {
	return domain.NewRecord(
		domain.KV{Key: domain.FieldID, Value: nullString(id)},
		domain.KV{Key: domain.FieldName, Value: nullString(name)},
	)
}

func nullString(s sql.NullString) interface{} {
	if !s.Valid {
		return nil
	}
	return s.String
}

func nullFloat(f sql.NullFloat64) interface{} {
	if !f.Valid {
		return nil
	}
	return f.Float64
}

func nullInt(i sql.NullInt64) interface{} {
	if !i.Valid {
		return nil
	}
	return i.Int64
}
