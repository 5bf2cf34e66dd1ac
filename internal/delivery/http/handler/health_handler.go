package handler

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/georef-api/internal/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker - зависимость, состояние которой проверяет /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler - обработчик health-check
type HealthHandler struct {
	checks map[string]HealthChecker
	logger *zap.Logger
}

// NewHealthHandler - создание нового HealthHandler; nil-зависимости пропускаются
func NewHealthHandler(checks map[string]HealthChecker, logger *zap.Logger) *HealthHandler {
	filtered := make(map[string]HealthChecker, len(checks))
	for name, check := range checks {
		if check != nil {
			filtered[name] = check
		}
	}
	return &HealthHandler{
		checks: filtered,
		logger: logger,
	}
}

// Health godoc
// @Summary Health check
// @Description Checks the search index and the cache backend.
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "healthy"
	code := fiber.StatusOK
	components := make(fiber.Map, len(names))
	for _, name := range names {
		if err := h.checks[name].Health(ctx); err != nil {
			logger.FromContext(ctx, h.logger).Warn("Health check failed",
				zap.String("component", name),
				zap.Error(err))
			components[name] = fiber.Map{"status": "unhealthy", "error": err.Error()}
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = fiber.Map{"status": "healthy"}
	}

	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"components": components,
		"time":       time.Now(),
	})
}
