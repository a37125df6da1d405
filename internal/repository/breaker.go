package repository

import (
	"context"
	"errors"
	"time"

	"cv-backend/internal/domain"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// CircuitBreakerConfig holds configuration for the store circuit breaker
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns a default configuration for circuit breaker
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

type breakerStore struct {
	next CVStore
	cb   *gobreaker.CircuitBreaker
}

// NewCircuitBreakerStore guards next with a circuit breaker. A missing record
// is a normal answer and never counts as a failure. While the breaker is
// open calls fail fast with gobreaker.ErrOpenState.
func NewCircuitBreakerStore(next CVStore, config CircuitBreakerConfig, logger *zap.Logger) CVStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCVNotFound)
		},
	})
	return &breakerStore{next: next, cb: cb}
}

func (s *breakerStore) GetCV(ctx context.Context, id string) (domain.CV, error) {
	out, err := s.cb.Execute(func() (any, error) {
		return s.next.GetCV(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return out.(domain.CV), nil
}

func (s *breakerStore) SetViews(ctx context.Context, id string, views int) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, s.next.SetViews(ctx, id, views)
	})
	return err
}

func (s *breakerStore) IncrementViews(ctx context.Context, id string) (domain.CV, error) {
	out, err := s.cb.Execute(func() (any, error) {
		return s.next.IncrementViews(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return out.(domain.CV), nil
}
