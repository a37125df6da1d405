// Package handlers turns API Gateway events into CV responses.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cv-backend/internal/domain"
	appErrors "cv-backend/internal/errors"
	"cv-backend/pkg/observability"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Viewer fetches a CV and counts the view.
type Viewer interface {
	View(ctx context.Context, id string) (domain.CV, error)
}

type getCVRequest struct {
	ID string `validate:"required"`
}

// CVHandler serves GET /cv?id=... through API Gateway.
type CVHandler struct {
	viewer   Viewer
	validate *validator.Validate
	metrics  observability.Recorder
	logger   *zap.Logger
}

// NewCVHandler creates the handler
func NewCVHandler(viewer Viewer, metrics observability.Recorder, logger *zap.Logger) *CVHandler {
	if metrics == nil {
		metrics = observability.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CVHandler{
		viewer:   viewer,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
	}
}

// Handle answers one gateway event. It never returns an error: every
// failure, including a panic further down, becomes a JSON response.
func (h *CVHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	start := time.Now()
	logger := h.logger.With(zap.String("request_id", requestID(ctx, req)))

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Recovered from panic", zap.Any("panic", rec), zap.Stack("stack"))
			resp = h.errorResponse(logger, appErrors.NewInternalError(fmt.Errorf("%v", rec)))
			err = nil
		}
		h.metrics.RecordRequest(ctx, resp.StatusCode, time.Since(start))
	}()

	logger.Debug("Received event", zap.Any("event", req))

	if req.HTTPMethod == http.MethodOptions {
		return NewResponse(http.StatusOK, struct{}{}), nil
	}

	id := queryParam(req, "id")
	logger.Info("Received request",
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
		zap.String("id", id),
	)

	if verr := h.validate.Struct(getCVRequest{ID: id}); verr != nil {
		return h.errorResponse(logger, appErrors.NewMissingParameterError("id")), nil
	}

	cv, verr := h.viewer.View(ctx, id)
	if verr != nil {
		return h.errorResponse(logger, appErrors.Classify(verr)), nil
	}

	logger.Info("Successfully retrieved CV", zap.String("id", id), zap.Any("views", cv[domain.AttrViews]))
	return NewResponse(http.StatusOK, cv), nil
}

func (h *CVHandler) errorResponse(logger *zap.Logger, appErr *appErrors.AppError) events.APIGatewayProxyResponse {
	fields := []zap.Field{
		zap.String("error_type", string(appErr.Type)),
		zap.Int("status", appErr.HTTPStatus),
		zap.String("message", appErr.Message),
	}
	if appErr.Code != "" {
		fields = append(fields, zap.String("error_code", appErr.Code))
	}

	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error(appErr.Title, fields...)
	} else {
		logger.Warn(appErr.Title, fields...)
	}
	return NewResponse(appErr.HTTPStatus, appErr.Body())
}

// queryParam reads a single valued query parameter, falling back to the
// first value of the multi-value map some gateway setups send instead.
func queryParam(req events.APIGatewayProxyRequest, name string) string {
	if v, ok := req.QueryStringParameters[name]; ok {
		return v
	}
	if values := req.MultiValueQueryStringParameters[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func requestID(ctx context.Context, req events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if req.RequestContext.RequestID != "" {
		return req.RequestContext.RequestID
	}
	return uuid.New().String()
}
