package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/pkg/logger"
)

var (
	departmentPlaceSource   = []string{domain.FieldID, domain.FieldName, domain.FieldState}
	municipalityPlaceSource = []string{domain.FieldID, domain.FieldName}
)

// PlaceRequest - точка для обратного геокодирования и её директивы представления
type PlaceRequest struct {
	Lat        float64
	Lon        float64
	Directives domain.Directives
}

// PlaceComposer - композиция place из двух пакетных запросов (департаменты и муниципалитеты).
// Провинция не запрашивается отдельно: она берётся из найденного департамента.
type PlaceComposer struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewPlaceComposer - создание нового PlaceComposer
func NewPlaceComposer(dispatcher *Dispatcher, logger *zap.Logger) *PlaceComposer {
	return &PlaceComposer{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Compose resolves every point into a place, in input order.
func (c *PlaceComposer) Compose(ctx context.Context, requests []PlaceRequest) ([]domain.Place, error) {
	if len(requests) == 0 {
		return []domain.Place{}, nil
	}

	departments, err := c.dispatcher.Places(ctx, domain.EntityDepartments, pointQueries(requests, departmentPlaceSource))
	if err != nil {
		return nil, err
	}
	municipalities, err := c.dispatcher.Places(ctx, domain.EntityMunicipalities, pointQueries(requests, municipalityPlaceSource))
	if err != nil {
		return nil, err
	}

	if len(departments) != len(requests) || len(municipalities) != len(requests) {
		logger.FromContext(ctx, c.logger).Error("Place batches are not aligned",
			zap.Int("points", len(requests)),
			zap.Int("departments", len(departments)),
			zap.Int("municipalities", len(municipalities)))
		return nil, fmt.Errorf("compose places: %d points, %d departments, %d municipalities: %w",
			len(requests), len(departments), len(municipalities), errors.ErrInvariantViolation)
	}

	places := make([]domain.Place, len(requests))
	for i, req := range requests {
		places[i] = composePlace(req, departments[i], municipalities[i])
	}

	logger.FromContext(ctx, c.logger).Debug("Places composed", zap.Int("count", len(places)))
	return places, nil
}

func pointQueries(requests []PlaceRequest, source []string) []domain.PlaceQuery {
	queries := make([]domain.PlaceQuery, len(requests))
	for i, req := range requests {
		queries[i] = domain.PlaceQuery{Lat: req.Lat, Lon: req.Lon, Source: source}
	}
	return queries
}

func composePlace(req PlaceRequest, department, municipality domain.Record) domain.Place {
	place := domain.Place{Lat: req.Lat, Lon: req.Lon}

	// A point resolves to the whole hierarchy or to nothing.
	if department.IsZero() {
		place.State = domain.EmptyEntity()
		place.Department = domain.EmptyEntity()
		place.Municipality = domain.EmptyEntity()
		return place
	}

	dept := department.Clone()
	place.State = domain.EmptyEntity()
	if v, ok := dept.Pop(domain.FieldState); ok {
		if state, ok := v.(domain.Record); ok && !state.IsZero() {
			place.State = state
		}
	}
	place.Department = dept

	place.Municipality = domain.EmptyEntity()
	if !municipality.IsZero() {
		place.Municipality = municipality.Clone()
	}
	return place
}
