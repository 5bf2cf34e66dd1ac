package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/georef-api/internal/config"
	"github.com/georef-api/internal/delivery/http/handler"
	"github.com/georef-api/internal/delivery/http/middleware"
	"github.com/georef-api/internal/metrics"
	"github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/pkg/logger"
	"github.com/georef-api/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	normalizerHandler *handler.NormalizerHandler
	healthHandler     *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	normalizerHandler *handler.NormalizerHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "georef-api",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		normalizerHandler: normalizerHandler,
		healthHandler:     healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Administrative divisions
	api.Get("/states", s.normalizerHandler.GetStates)
	api.Post("/states", s.normalizerHandler.PostStates)
	api.Get("/departments", s.normalizerHandler.GetDepartments)
	api.Post("/departments", s.normalizerHandler.PostDepartments)
	api.Get("/municipalities", s.normalizerHandler.GetMunicipalities)
	api.Post("/municipalities", s.normalizerHandler.PostMunicipalities)
	api.Get("/localities", s.normalizerHandler.GetLocalities)
	api.Post("/localities", s.normalizerHandler.PostLocalities)

	// Streets and addresses
	api.Get("/streets", s.normalizerHandler.GetStreets)
	api.Post("/streets", s.normalizerHandler.PostStreets)
	api.Get("/addresses", s.normalizerHandler.GetAddresses)
	api.Post("/addresses", s.normalizerHandler.PostAddresses)

	// Reverse geocoding
	api.Get("/place", s.normalizerHandler.GetPlace)
	api.Post("/place", s.normalizerHandler.PostPlaces)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок.
// Ошибки Fiber (404, 405, слишком большое тело) отдаются со своим статусом в формате AppError
func customErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := errors.AsAppError(err)

		if e, ok := err.(*fiber.Error); ok {
			code := errors.ErrInvalidRequest.Code
			switch {
			case e.Code >= fiber.StatusInternalServerError:
				code = errors.ErrInternalServer.Code
			case e.Code == fiber.StatusNotFound:
				code = errors.ErrNotFound.Code
			}
			appErr = errors.New(code, e.Message, e.Code)
		}

		if appErr.StatusCode >= fiber.StatusInternalServerError {
			logger.FromContext(c.UserContext(), log).Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", appErr.StatusCode),
				zap.Error(err),
			)
		}

		return utils.SendError(c, appErr)
	}
}
