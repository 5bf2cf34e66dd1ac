package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetMany получает значения по списку ключей; промах возвращается как nil на своей позиции
	GetMany(ctx context.Context, keys []string) ([][]byte, error)

	// SetMany сохраняет несколько значений одним pipeline
	SetMany(ctx context.Context, entries map[string][]byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error
}
