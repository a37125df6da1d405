package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cv-backend/internal/config"
	"cv-backend/internal/di"
	"cv-backend/internal/repository/memory"
	"cv-backend/internal/server"
	"cv-backend/pkg/observability"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	collector := observability.NewCollector("cv")
	container, err := di.InitializeLocalContainer(ctx, cfg, collector)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	// Edits to the seed file are picked up without a restart.
	if container.Seed != nil {
		watcher, err := config.NewFileWatcher(cfg.SeedFile, func(path string) {
			records, err := memory.LoadFile(path)
			if err != nil {
				logger.Error("Failed to reload seed file", zap.String("path", path), zap.Error(err))
				return
			}
			container.Seed.Replace(records)
			logger.Info("Seed file reloaded", zap.String("path", path), zap.Int("records", len(records)))
		}, logger)
		if err != nil {
			logger.Warn("Seed file will not be reloaded", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      server.NewRouter(container.Handler, collector.Handler(), logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("table", cfg.TableName),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := container.Close(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
