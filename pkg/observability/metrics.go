// Package observability provides tracing and metrics for the CV function.
package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Recorder receives request level measurements.
type Recorder interface {
	RecordRequest(ctx context.Context, status int, duration time.Duration)
	RecordView(ctx context.Context, cvID string)
}

// NopRecorder discards every measurement.
type NopRecorder struct{}

func (NopRecorder) RecordRequest(context.Context, int, time.Duration) {}
func (NopRecorder) RecordView(context.Context, string) {}

// CloudWatchAPI is the subset of the CloudWatch client used for metrics.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics publishes request metrics to CloudWatch
type Metrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// RecordRequest records the outcome and latency of one request.
func (m *Metrics) RecordRequest(ctx context.Context, status int, duration time.Duration) {
	now := aws.Time(time.Now())
	statusDim := []types.Dimension{
		{Name: aws.String("StatusCode"), Value: aws.String(strconv.Itoa(status))},
	}

	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("RequestCount"),
			Dimensions: statusDim,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  now,
		},
		{
			MetricName: aws.String("RequestLatency"),
			Dimensions: statusDim,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  now,
		},
	})
}

// RecordView counts one successful view of cvID.
func (m *Metrics) RecordView(ctx context.Context, cvID string) {
	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("CVViews"),
			Dimensions: []types.Dimension{
				{Name: aws.String("CVID"), Value: aws.String(cvID)},
			},
			Value:     aws.Float64(1),
			Unit:      types.StandardUnitCount,
			Timestamp: aws.Time(time.Now()),
		},
	})
}

func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) {
	if m.client == nil {
		return
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	})
	if err != nil {
		m.logger.Warn("Failed to publish metrics", zap.Error(err), zap.String("namespace", m.namespace))
	}
}
