package place

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/domain/repository"
	"github.com/georef-api/internal/pkg/params"
	"github.com/georef-api/internal/usecase"
	"github.com/georef-api/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
	retryBackoff    = 200 * time.Millisecond
)

// PlaceResolver - то, что умеет обратное геокодирование батча точек
type PlaceResolver interface {
	Places(ctx context.Context, queries []domain.ParsedQuery) ([]usecase.Result, error)
}

// ResolveWorker обрабатывает события обратного геокодирования из stream:place:resolve
type ResolveWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	resolver     PlaceResolver
	consumerName string
	batchSize    int
	maxRetries   int
}

// NewResolveWorker создает новый ResolveWorker
func NewResolveWorker(
	streamRepo repository.StreamRepository,
	resolver PlaceResolver,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	logger *zap.Logger,
) *ResolveWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if batchSize <= 0 {
		batchSize = 100
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &ResolveWorker{
		BaseWorker:   worker.NewBaseWorker("place-resolve", consumerGroup, logger),
		streamRepo:   streamRepo,
		resolver:     resolver,
		consumerName: consumerName,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *ResolveWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting place resolve worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlaceResolve, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.ProcessBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Pause(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Pause(ctx, emptyQueueSleep)
			}
		}
	}
}

// ProcessBatch читает и обрабатывает один батч сообщений.
// Возвращает количество прочитанных сообщений. Если индекс недоступен после всех
// повторов, сообщения не подтверждаются и будут доставлены повторно.
func (w *ResolveWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamPlaceResolve, w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	events := make([]domain.PlaceResolveEvent, 0, len(messages))
	records := make([]map[string]interface{}, 0, len(messages))
	messageIDs := make([]string, 0, len(messages))
	var broken []string

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			broken = append(broken, msg.ID)
			continue
		}
		events = append(events, *event)
		records = append(records, event.Params())
		messageIDs = append(messageIDs, msg.ID)
	}

	// битые сообщения подтверждаем сразу, чтобы не застревали
	if len(broken) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamPlaceResolve, w.ConsumerGroup(), broken); err != nil {
			logger.Error("Failed to ack malformed messages", zap.Error(err))
		}
	}
	if len(events) == 0 {
		return len(messages), nil
	}

	results, err := w.resolve(ctx, params.Parse(records, params.Places))
	if err != nil {
		return 0, fmt.Errorf("place resolution failed: %w", err)
	}

	// подтверждаем только опубликованные; остальные вернутся через pending
	acked := make([]string, 0, len(results))
	for i, result := range results {
		resolved := buildResolvedEvent(events[i], result)
		if err := w.streamRepo.PublishToStream(ctx, domain.StreamPlaceResolved, resolved); err != nil {
			logger.Error("Failed to publish resolved event",
				zap.String("request_id", events[i].RequestID.String()),
				zap.Error(err))
			continue
		}
		acked = append(acked, messageIDs[i])
	}

	if len(acked) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamPlaceResolve, w.ConsumerGroup(), acked); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	logger.Info("Batch processed",
		zap.Int("events", len(events)),
		zap.Int("published", len(acked)),
		zap.Int("malformed", len(broken)))

	return len(messages), nil
}

// resolve вызывает resolver с повторами
func (w *ResolveWorker) resolve(ctx context.Context, queries []domain.ParsedQuery) ([]usecase.Result, error) {
	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			w.Logger().Warn("Retrying place resolution",
				zap.Int("attempt", attempt),
				zap.Error(lastErr))
			if !w.Pause(ctx, time.Duration(attempt)*retryBackoff) {
				return nil, lastErr
			}
		}

		results, err := w.resolver.Places(ctx, queries)
		if err == nil {
			if len(results) != len(queries) {
				return nil, fmt.Errorf("resolver returned %d results for %d queries", len(results), len(queries))
			}
			return results, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// parseMessage парсит сообщение из стрима в PlaceResolveEvent
func parseMessage(msg domain.StreamMessage) (*domain.PlaceResolveEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.PlaceResolveEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}

func buildResolvedEvent(event domain.PlaceResolveEvent, result usecase.Result) domain.PlaceResolvedEvent {
	resolved := domain.PlaceResolvedEvent{RequestID: event.RequestID}
	if result.HasErrors() {
		resolved.Errors = result.Errors
		return resolved
	}
	if place, ok := result.Value.(domain.Record); ok {
		resolved.Place = &place
	}
	return resolved
}
