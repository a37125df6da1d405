package di

import (
	"context"
	"fmt"

	"cv-backend/internal/config"
	"cv-backend/internal/handlers"
	"cv-backend/internal/messaging/eventbridge"
	"cv-backend/internal/repository"
	"cv-backend/internal/repository/ddb"
	"cv-backend/internal/repository/memory"
	"cv-backend/internal/service/cv"
	"cv-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "cv-api"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName), zap.String("table", cfg.TableName)), nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration. When tracing is on every
// client built from it is instrumented.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client. DYNAMODB_ENDPOINT points
// it at DynamoDB Local.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideSeedStore loads SEED_FILE into an in-memory store. It returns nil
// when no seed file is configured.
func ProvideSeedStore(cfg *config.Config) (*memory.Store, error) {
	if cfg.SeedFile == "" {
		return nil, nil
	}
	records, err := memory.LoadFile(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	return memory.NewStore(records...), nil
}

// ProvideStore picks the record store: the seeded in-memory store when there
// is one, DynamoDB otherwise, optionally behind a circuit breaker.
func ProvideStore(
	client *awsdynamodb.Client,
	seed *memory.Store,
	cfg *config.Config,
	logger *zap.Logger,
) repository.CVStore {
	if seed != nil {
		logger.Info("Using in-memory store", zap.String("seed_file", cfg.SeedFile), zap.Int("records", seed.Len()))
		return seed
	}

	store := ddb.NewStore(client, cfg.TableName, logger)
	if cfg.CircuitBreakerEnabled {
		store = repository.NewCircuitBreakerStore(store, repository.DefaultCircuitBreakerConfig("dynamodb"), logger)
	}
	return store
}

// ProvidePublisher creates the view event publisher
func ProvidePublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) cv.EventPublisher {
	if cfg.EventBusName == "" {
		return cv.NopPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the CloudWatch recorder used inside Lambda
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) observability.Recorder {
	if !cfg.EnableMetrics {
		return observability.NopRecorder{}
	}
	return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
}

// ProvideViewService creates the view counting service
func ProvideViewService(
	store repository.CVStore,
	publisher cv.EventPublisher,
	tracer *observability.Tracer,
	metrics observability.Recorder,
	cfg *config.Config,
	logger *zap.Logger,
) *cv.ViewService {
	return cv.NewViewService(store, publisher, tracer, metrics, logger, cfg.AtomicViews)
}

// ProvideCVHandler creates the API Gateway handler
func ProvideCVHandler(svc *cv.ViewService, metrics observability.Recorder, logger *zap.Logger) *handlers.CVHandler {
	return handlers.NewCVHandler(svc, metrics, logger)
}
