// Package di wires the CV function's dependencies with Wire.
package di

import (
	"cv-backend/internal/config"
	"cv-backend/internal/handlers"
	"cv-backend/internal/repository"
	"cv-backend/internal/repository/memory"
	"cv-backend/internal/service/cv"
	"cv-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Tracer    *observability.Tracer
	Seed      *memory.Store
	Store     repository.CVStore
	Publisher cv.EventPublisher
	Metrics   observability.Recorder
	Service   *cv.ViewService
	Handler   *handlers.CVHandler
}

// Close flushes the logger.
func (c *Container) Close() error {
	return c.Logger.Sync()
}
