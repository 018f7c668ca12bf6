// Package server hosts the weather history persistence service: a small
// HTTP API over the record database plus a pass-through to the weather
// provider.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/aldermoor/weatherlog/internal/domain/ports"
	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// Server is the history service HTTP server.
type Server struct {
	app      *fiber.App
	db       ports.RecordDB
	provider ports.WeatherProvider
	logger   *zap.Logger
}

// New creates a Server over the given database and weather provider.
func New(db ports.RecordDB, provider ports.WeatherProvider, logger *zap.Logger) *Server {
	s := &Server{
		db:       db,
		provider: provider,
		logger:   logger,
	}

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: s.errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
	}))

	s.registerRoutes()
	return s
}

// Listen starts serving on addr and blocks until shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("starting history service", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, records.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, records.ErrLocationNotFound):
		code = fiber.StatusNotFound
	}

	if code >= 500 {
		s.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}
