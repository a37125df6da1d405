package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cv-backend/internal/domain"
	"cv-backend/internal/repository"
	"cv-backend/internal/repository/mocks"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testBreakerConfig() repository.CircuitBreakerConfig {
	return repository.CircuitBreakerConfig{
		Name:             "cv-store-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestCircuitBreakerStore_PassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockCVStore)
	inner.On("GetCV", ctx, "portfolio1").Return(domain.CV{"id": "portfolio1", "views": 1}, nil)
	inner.On("SetViews", ctx, "portfolio1", 2).Return(nil)
	inner.On("IncrementViews", ctx, "portfolio1").Return(domain.CV{"id": "portfolio1", "views": 3}, nil)

	store := repository.NewCircuitBreakerStore(inner, testBreakerConfig(), zap.NewNop())

	cv, err := store.GetCV(ctx, "portfolio1")
	require.NoError(t, err)
	assert.Equal(t, "portfolio1", cv.ID())

	require.NoError(t, store.SetViews(ctx, "portfolio1", 2))

	cv, err = store.IncrementViews(ctx, "portfolio1")
	require.NoError(t, err)
	assert.Equal(t, 3, cv["views"])
	inner.AssertExpectations(t)
}

func TestCircuitBreakerStore_NotFoundDoesNotTrip(t *testing.T) {
	ctx := context.Background()
	inner := new(mocks.MockCVStore)
	inner.On("GetCV", ctx, "missing").Return(nil, repository.ErrCVNotFound)

	store := repository.NewCircuitBreakerStore(inner, testBreakerConfig(), zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := store.GetCV(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrCVNotFound)
	}
	inner.AssertNumberOfCalls(t, "GetCV", 5)
}

func TestCircuitBreakerStore_OpensOnFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	inner := new(mocks.MockCVStore)
	inner.On("GetCV", ctx, mock.Anything).Return(nil, boom)

	store := repository.NewCircuitBreakerStore(inner, testBreakerConfig(), zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := store.GetCV(ctx, "portfolio1")
		assert.ErrorIs(t, err, boom)
	}

	_, err := store.GetCV(ctx, "portfolio1")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	inner.AssertNumberOfCalls(t, "GetCV", 2)
}
