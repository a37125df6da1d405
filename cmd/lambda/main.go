package main

import (
	"context"
	"log"
	"time"

	"cv-backend/internal/config"
	"cv-backend/internal/di"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

// container is built once per execution environment and reused by every
// invocation.
var container *di.Container

// init runs during cold start
func init() {
	coldStartTime := time.Now()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	container.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)),
		zap.String("environment", cfg.Environment),
		zap.Bool("atomic_views", cfg.AtomicViews),
	)
}

func main() {
	defer func() { _ = container.Close() }()
	lambda.Start(container.Handler.Handle)
}
