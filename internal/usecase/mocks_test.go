package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/domain/repository"
)

// MockIndexRepository is a mock of IndexRepository
type MockIndexRepository struct {
	mock.Mock
}

var _ repository.IndexRepository = (*MockIndexRepository)(nil)

func (m *MockIndexRepository) QueryEntities(ctx context.Context, entity domain.Entity, queries []domain.IndexQuery) ([][]domain.Record, error) {
	args := m.Called(ctx, entity, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]domain.Record), args.Error(1)
}

func (m *MockIndexRepository) QueryAddresses(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error) {
	args := m.Called(ctx, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]domain.Record), args.Error(1)
}

func (m *MockIndexRepository) QueryPlaces(ctx context.Context, entity domain.Entity, queries []domain.PlaceQuery) ([]domain.Record, error) {
	args := m.Called(ctx, entity, queries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

func (m *MockIndexRepository) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func entity(id, name interface{}, extra ...domain.KV) domain.Record {
	pairs := append([]domain.KV{{Key: domain.FieldID, Value: id}, {Key: domain.FieldName, Value: name}}, extra...)
	return domain.NewRecord(pairs...)
}
