// Package cv implements the view-counting retrieval of CV records.
package cv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cv-backend/internal/domain"
	appErrors "cv-backend/internal/errors"
	"cv-backend/internal/repository"
	"cv-backend/pkg/observability"

	"go.uber.org/zap"
)

// EventPublisher receives an event for every counted view.
type EventPublisher interface {
	PublishViewed(ctx context.Context, event domain.CVViewed) error
}

// NopPublisher drops events. Used when no event bus is configured.
type NopPublisher struct{}

func (NopPublisher) PublishViewed(context.Context, domain.CVViewed) error { return nil }

// ViewService fetches a CV and counts the view.
type ViewService struct {
	store     repository.CVStore
	publisher EventPublisher
	tracer    *observability.Tracer
	metrics   observability.Recorder
	logger    *zap.Logger
	atomic    bool
	now       func() time.Time
}

// NewViewService creates the service. With atomic set, the counter is
// incremented server side in one call instead of read, then written.
func NewViewService(
	store repository.CVStore,
	publisher EventPublisher,
	tracer *observability.Tracer,
	metrics observability.Recorder,
	logger *zap.Logger,
	atomic bool,
) *ViewService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if metrics == nil {
		metrics = observability.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewService{
		store:     store,
		publisher: publisher,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger,
		atomic:    atomic,
		now:       time.Now,
	}
}

// View returns the record stored under id with its view counter already
// incremented, and persists the new counter. Errors are *errors.AppError of
// type NOT_FOUND, DATABASE or INTERNAL.
func (s *ViewService) View(ctx context.Context, id string) (domain.CV, error) {
	var (
		cv    domain.CV
		views int
		err   error
	)
	if s.atomic {
		cv, views, err = s.incrementAtomically(ctx, id)
	} else {
		cv, views, err = s.readThenWrite(ctx, id)
	}
	if err != nil {
		return nil, s.classify(id, err)
	}

	s.tracer.AddAnnotation(ctx, "cv_id", id)
	s.metrics.RecordView(ctx, id)
	if err := s.publisher.PublishViewed(ctx, domain.NewCVViewed(id, views, s.now())); err != nil {
		s.logger.Warn("Failed to publish view event", zap.String("id", id), zap.Error(err))
	}
	return cv, nil
}

// readThenWrite is not transactional: concurrent views of the same record
// may read the same counter and one increment is lost.
func (s *ViewService) readThenWrite(ctx context.Context, id string) (domain.CV, int, error) {
	var cv domain.CV
	err := s.tracer.Trace(ctx, "GetCV", func(ctx context.Context) error {
		var err error
		cv, err = s.store.GetCV(ctx, id)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	current, err := cv.Views()
	if err != nil {
		return nil, 0, fmt.Errorf("cv %s: %w", id, err)
	}
	next := current + 1

	err = s.tracer.Trace(ctx, "SetViews", func(ctx context.Context) error {
		return s.store.SetViews(ctx, id, next)
	})
	if err != nil {
		return nil, 0, err
	}
	return cv.WithViews(next), next, nil
}

func (s *ViewService) incrementAtomically(ctx context.Context, id string) (domain.CV, int, error) {
	var cv domain.CV
	err := s.tracer.Trace(ctx, "IncrementViews", func(ctx context.Context) error {
		var err error
		cv, err = s.store.IncrementViews(ctx, id)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	views, err := cv.Views()
	if err != nil {
		return nil, 0, fmt.Errorf("cv %s: %w", id, err)
	}
	return cv.WithViews(views), views, nil
}

func (s *ViewService) classify(id string, err error) *appErrors.AppError {
	if errors.Is(err, repository.ErrCVNotFound) {
		return appErrors.NewCVNotFoundError(id)
	}
	appErr := appErrors.Classify(err)
	if appErr.Type == appErrors.ErrorTypeDatabase {
		s.logger.Error("DynamoDB error",
			zap.String("id", id),
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Details),
		)
	} else {
		s.logger.Error("Unexpected error", zap.String("id", id), zap.Error(err))
	}
	return appErr
}
