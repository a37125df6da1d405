// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"cv-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockCVStore is a mock implementation of repository.CVStore.
type MockCVStore struct {
	mock.Mock
}

func (m *MockCVStore) GetCV(ctx context.Context, id string) (domain.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CV), args.Error(1)
}

func (m *MockCVStore) SetViews(ctx context.Context, id string, views int) error {
	args := m.Called(ctx, id, views)
	return args.Error(0)
}

func (m *MockCVStore) IncrementViews(ctx context.Context, id string) (domain.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CV), args.Error(1)
}
