//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"cv-backend/internal/config"
	"cv-backend/pkg/observability"

	"github.com/google/wire"
)

// BaseSet holds the providers shared by every entry point.
var BaseSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideSeedStore,
	ProvideStore,
	ProvidePublisher,
	ProvideViewService,
	ProvideCVHandler,
	wire.Struct(new(Container), "*"),
)

// LambdaSet records metrics to CloudWatch.
var LambdaSet = wire.NewSet(
	BaseSet,
	ProvideCloudWatchClient,
	ProvideMetrics,
)

// InitializeContainer creates a fully wired container for the Lambda runtime
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(LambdaSet)
	return nil, nil // Wire will replace this
}

// InitializeLocalContainer creates a container whose metrics go to the
// given recorder, typically the local server's Prometheus collector.
func InitializeLocalContainer(ctx context.Context, cfg *config.Config, metrics observability.Recorder) (*Container, error) {
	wire.Build(BaseSet)
	return nil, nil // Wire will replace this
}
