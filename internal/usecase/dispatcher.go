package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/domain/repository"
	"github.com/georef-api/internal/metrics"
	"github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/pkg/logger"
)

// Dispatcher sends ordered query batches to the index, one call per batch.
// Responses are positional: response i answers query i. A failed call fails
// the whole batch; there are no partial results and no retries.
type Dispatcher struct {
	index  repository.IndexRepository
	logger *zap.Logger
}

// NewDispatcher - создание нового Dispatcher
func NewDispatcher(index repository.IndexRepository, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		index:  index,
		logger: logger,
	}
}

// Entities dispatches administrative-division or street queries.
func (d *Dispatcher) Entities(ctx context.Context, entity domain.Entity, queries []domain.IndexQuery) ([][]domain.Record, error) {
	if len(queries) == 0 {
		return [][]domain.Record{}, nil
	}

	start := time.Now()
	responses, err := d.index.QueryEntities(ctx, entity, queries)
	metrics.ObserveIndexBatch(entity.String(), len(queries), time.Since(start), err)
	if err != nil {
		return nil, d.indexFailure(ctx, entity, len(queries), err)
	}
	if err := d.checkLength(ctx, entity, len(queries), len(responses)); err != nil {
		return nil, err
	}
	return responses, nil
}

// Addresses dispatches address queries.
func (d *Dispatcher) Addresses(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error) {
	if len(queries) == 0 {
		return [][]domain.Record{}, nil
	}

	start := time.Now()
	responses, err := d.index.QueryAddresses(ctx, queries)
	metrics.ObserveIndexBatch(domain.EntityAddresses.String(), len(queries), time.Since(start), err)
	if err != nil {
		return nil, d.indexFailure(ctx, domain.EntityAddresses, len(queries), err)
	}
	if err := d.checkLength(ctx, domain.EntityAddresses, len(queries), len(responses)); err != nil {
		return nil, err
	}
	return responses, nil
}

// Places dispatches "entity containing point" queries; one top record (or none) per query.
func (d *Dispatcher) Places(ctx context.Context, entity domain.Entity, queries []domain.PlaceQuery) ([]domain.Record, error) {
	if len(queries) == 0 {
		return []domain.Record{}, nil
	}

	start := time.Now()
	responses, err := d.index.QueryPlaces(ctx, entity, queries)
	metrics.ObserveIndexBatch("place:"+entity.String(), len(queries), time.Since(start), err)
	if err != nil {
		return nil, d.indexFailure(ctx, entity, len(queries), err)
	}
	if err := d.checkLength(ctx, entity, len(queries), len(responses)); err != nil {
		return nil, err
	}
	return responses, nil
}

func (d *Dispatcher) indexFailure(ctx context.Context, entity domain.Entity, size int, err error) error {
	logger.FromContext(ctx, d.logger).Error("Index batch failed",
		zap.String("entity", entity.String()),
		zap.Int("batch_size", size),
		zap.Error(err))
	return fmt.Errorf("dispatch %s batch: %v: %w", entity, err, errors.ErrIndexError)
}

func (d *Dispatcher) checkLength(ctx context.Context, entity domain.Entity, queries, responses int) error {
	if queries == responses {
		return nil
	}
	logger.FromContext(ctx, d.logger).Error("Index returned a misaligned batch",
		zap.String("entity", entity.String()),
		zap.Int("queries", queries),
		zap.Int("responses", responses),
		zap.Stack("stack"))
	return fmt.Errorf("%s: %d responses for %d queries: %w", entity, responses, queries, errors.ErrInvariantViolation)
}
