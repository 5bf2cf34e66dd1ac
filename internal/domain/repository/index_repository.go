package repository

import (
	"context"

	"github.com/georef-api/internal/domain"
)

// IndexRepository - клиент поискового индекса.
// Все методы позиционные: i-й ответ соответствует i-му запросу.
// Любая ошибка связи с индексом возвращается для всего батча целиком.
type IndexRepository interface {
	// QueryEntities ищет административные единицы или улицы, по одному списку совпадений на запрос
	QueryEntities(ctx context.Context, entity domain.Entity, queries []domain.IndexQuery) ([][]domain.Record, error)

	// QueryAddresses ищет адреса (улица + номер дома)
	QueryAddresses(ctx context.Context, queries []domain.IndexQuery) ([][]domain.Record, error)

	// QueryPlaces возвращает сущность, содержащую точку; пустой Record, если совпадений нет
	QueryPlaces(ctx context.Context, entity domain.Entity, queries []domain.PlaceQuery) ([]domain.Record, error)

	// Health проверяет доступность индекса
	Health(ctx context.Context) error
}
