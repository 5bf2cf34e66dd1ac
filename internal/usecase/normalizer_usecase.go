package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/pkg/logger"
)

// Result - результат одной записи запроса: значение или ошибки валидации
type Result struct {
	Value  interface{}
	Errors []string
}

// HasErrors reports whether the record was rejected by the parser.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// NormalizerUseCase - use case для нормализации сущностей и обратного геокодирования
type NormalizerUseCase struct {
	dispatcher   *Dispatcher
	composer     *PlaceComposer
	maxBatchSize int
	logger       *zap.Logger
}

// NewNormalizerUseCase - создание нового use case
func NewNormalizerUseCase(dispatcher *Dispatcher, composer *PlaceComposer, maxBatchSize int, logger *zap.Logger) *NormalizerUseCase {
	return &NormalizerUseCase{
		dispatcher:   dispatcher,
		composer:     composer,
		maxBatchSize: maxBatchSize,
		logger:       logger,
	}
}

// Entities resolves administrative divisions and streets.
// Result values are []domain.Record, one list of hits per query.
func (uc *NormalizerUseCase) Entities(ctx context.Context, entity domain.Entity, queries []domain.ParsedQuery) ([]Result, error) {
	if entity == domain.EntityAddresses {
		return uc.Addresses(ctx, queries)
	}
	if !entity.IsAdministrative() && entity != domain.EntityStreets {
		return nil, errors.ErrInvalidRequest.WithMessage(fmt.Sprintf("unsupported entity: %s", entity))
	}
	return uc.resolve(ctx, entity, queries, func(ctx context.Context, built []domain.IndexQuery) ([][]domain.Record, error) {
		return uc.dispatcher.Entities(ctx, entity, built)
	})
}

// Addresses resolves "<street> <number>" addresses.
func (uc *NormalizerUseCase) Addresses(ctx context.Context, queries []domain.ParsedQuery) ([]Result, error) {
	return uc.resolve(ctx, domain.EntityAddresses, queries, uc.dispatcher.Addresses)
}

// Places reverse-geocodes points. Result values are shaped place records.
func (uc *NormalizerUseCase) Places(ctx context.Context, queries []domain.ParsedQuery) ([]Result, error) {
	if err := uc.checkBatch(queries); err != nil {
		return nil, err
	}

	results := make([]Result, len(queries))
	positions := make([]int, 0, len(queries))
	requests := make([]PlaceRequest, 0, len(queries))
	for i, q := range queries {
		if !q.Valid() {
			results[i] = Result{Errors: q.Errors}
			continue
		}
		req, err := BuildPlaceQuery(q)
		if err != nil {
			return nil, err
		}
		positions = append(positions, i)
		requests = append(requests, req)
	}

	places, err := uc.composer.Compose(ctx, requests)
	if err != nil {
		return nil, err
	}

	for j, pos := range positions {
		results[pos] = Result{Value: Shape(places[j].Record(), requests[j].Directives)}
	}

	logger.FromContext(ctx, uc.logger).Debug("Places resolved",
		zap.Int("queries", len(queries)),
		zap.Int("dispatched", len(requests)))
	return results, nil
}

type batchFunc func(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error)

// resolve dispatches the valid records as one batch and merges the responses back by position.
func (uc *NormalizerUseCase) resolve(ctx context.Context, entity domain.Entity, queries []domain.ParsedQuery, dispatch batchFunc) ([]Result, error) {
	if err := uc.checkBatch(queries); err != nil {
		return nil, err
	}

	results := make([]Result, len(queries))
	positions := make([]int, 0, len(queries))
	built := make([]domain.IndexQuery, 0, len(queries))
	for i, q := range queries {
		if !q.Valid() {
			results[i] = Result{Errors: q.Errors}
			continue
		}
		iq, err := BuildQuery(entity, q)
		if err != nil {
			return nil, err
		}
		positions = append(positions, i)
		built = append(built, iq)
	}

	responses, err := dispatch(ctx, built)
	if err != nil {
		return nil, err
	}

	reverse := SourceKeys(entity).Invert()
	for j, pos := range positions {
		hits := make([]domain.Record, len(responses[j]))
		for k, hit := range responses[j] {
			hits[k] = TranslateRecord(hit, reverse)
		}
		results[pos] = Result{Value: ShapeAll(hits, queries[pos].Directives)}
	}

	logger.FromContext(ctx, uc.logger).Debug("Entities resolved",
		zap.String("entity", entity.String()),
		zap.Int("queries", len(queries)),
		zap.Int("dispatched", len(built)))
	return results, nil
}

func (uc *NormalizerUseCase) checkBatch(queries []domain.ParsedQuery) error {
	if len(queries) == 0 {
		return errors.ErrEmptyBatch
	}
	if uc.maxBatchSize > 0 && len(queries) > uc.maxBatchSize {
		return errors.ErrBatchTooLarge.WithMessage(
			fmt.Sprintf("batch of %d queries exceeds the limit of %d", len(queries), uc.maxBatchSize))
	}
	return nil
}
