package cv

import (
	"context"
	"errors"
	"testing"
	"time"

	"cv-backend/internal/domain"
	appErrors "cv-backend/internal/errors"
	"cv-backend/internal/repository"
	"cv-backend/internal/repository/mocks"
	"cv-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishViewed(ctx context.Context, event domain.CVViewed) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestService(store repository.CVStore, publisher EventPublisher, atomic bool) *ViewService {
	svc := NewViewService(store, publisher, observability.NewTracer("cv-api", false), nil, zap.NewNop(), atomic)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestViewService_View_IncrementsExistingCounter(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := new(mocks.MockCVStore)
	store.On("GetCV", ctx, "portfolio1").
		Return(domain.CV{"id": "portfolio1", "name": "Test Portfolio", "views": 10}, nil)
	store.On("SetViews", ctx, "portfolio1", 11).Return(nil).Once()

	svc := newTestService(store, nil, false)

	// Act
	cv, err := svc.View(ctx, "portfolio1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.CV{"id": "portfolio1", "name": "Test Portfolio", "views": 11}, cv)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "SetViews", 1)
}

func TestViewService_View_AbsentCounterStartsAtOne(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockCVStore)
	store.On("GetCV", ctx, "fresh").Return(domain.CV{"id": "fresh"}, nil)
	store.On("SetViews", ctx, "fresh", 1).Return(nil)

	cv, err := newTestService(store, nil, false).View(ctx, "fresh")

	require.NoError(t, err)
	assert.Equal(t, 1, cv["views"])
	store.AssertExpectations(t)
}

func TestViewService_View_NotFound(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockCVStore)
	store.On("GetCV", ctx, "nonexistent").Return(nil, repository.ErrCVNotFound)

	_, err := newTestService(store, nil, false).View(ctx, "nonexistent")

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	assert.Equal(t, "No CV found with id: nonexistent", appErrors.GetAppError(err).Message)
	store.AssertNotCalled(t, "SetViews", mock.Anything, mock.Anything, mock.Anything)
}

func TestViewService_View_StoreErrors(t *testing.T) {
	serviceErr := &appErrors.ServiceError{Operation: "GetItem", Code: "ResourceNotFoundException", Message: "Requested resource not found"}

	tests := []struct {
		name      string
		setup     func(ctx context.Context, store *mocks.MockCVStore)
		errType   appErrors.ErrorType
		details   string
		noUpdates bool
	}{
		{
			name: "lookup service error",
			setup: func(ctx context.Context, store *mocks.MockCVStore) {
				store.On("GetCV", ctx, "portfolio1").Return(nil, serviceErr)
			},
			errType:   appErrors.ErrorTypeDatabase,
			details:   "Requested resource not found",
			noUpdates: true,
		},
		{
			name: "update service error",
			setup: func(ctx context.Context, store *mocks.MockCVStore) {
				store.On("GetCV", ctx, "portfolio1").Return(domain.CV{"id": "portfolio1", "views": 2}, nil)
				store.On("SetViews", ctx, "portfolio1", 3).Return(&appErrors.ServiceError{
					Operation: "UpdateItem", Code: "ProvisionedThroughputExceededException", Message: "Rate exceeded",
				})
			},
			errType: appErrors.ErrorTypeDatabase,
			details: "Rate exceeded",
		},
		{
			name: "unexpected lookup failure",
			setup: func(ctx context.Context, store *mocks.MockCVStore) {
				store.On("GetCV", ctx, "portfolio1").Return(nil, errors.New("connection reset by peer"))
			},
			errType:   appErrors.ErrorTypeInternal,
			noUpdates: true,
		},
		{
			name: "unusable counter",
			setup: func(ctx context.Context, store *mocks.MockCVStore) {
				store.On("GetCV", ctx, "portfolio1").Return(domain.CV{"id": "portfolio1", "views": "lots"}, nil)
			},
			errType:   appErrors.ErrorTypeInternal,
			noUpdates: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := new(mocks.MockCVStore)
			tt.setup(ctx, store)
			publisher := new(mockPublisher)

			_, err := newTestService(store, publisher, false).View(ctx, "portfolio1")

			appErr := appErrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.errType, appErr.Type)
			assert.Equal(t, tt.details, appErr.Details)
			if tt.noUpdates {
				store.AssertNotCalled(t, "SetViews", mock.Anything, mock.Anything, mock.Anything)
			}
			publisher.AssertNotCalled(t, "PublishViewed", mock.Anything, mock.Anything)
		})
	}
}

func TestViewService_View_Atomic(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockCVStore)
	store.On("IncrementViews", ctx, "portfolio1").
		Return(domain.CV{"id": "portfolio1", "views": 11}, nil).Once()

	cv, err := newTestService(store, nil, true).View(ctx, "portfolio1")

	require.NoError(t, err)
	assert.Equal(t, 11, cv["views"])
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "GetCV", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SetViews", mock.Anything, mock.Anything, mock.Anything)
}

func TestViewService_View_AtomicNotFound(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockCVStore)
	store.On("IncrementViews", ctx, "nonexistent").Return(nil, repository.ErrCVNotFound)

	_, err := newTestService(store, nil, true).View(ctx, "nonexistent")

	assert.True(t, appErrors.IsNotFound(err))
}

func TestViewService_View_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockCVStore)
	store.On("GetCV", ctx, "portfolio1").Return(domain.CV{"id": "portfolio1", "views": 4}, nil)
	store.On("SetViews", ctx, "portfolio1", 5).Return(nil)

	publisher := new(mockPublisher)
	publisher.On("PublishViewed", ctx, mock.MatchedBy(func(e domain.CVViewed) bool {
		return e.CVID == "portfolio1" && e.Views == 5
	})).Return(nil).Once()

	_, err := newTestService(store, publisher, false).View(ctx, "portfolio1")

	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestViewService_View_PublishFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockCVStore)
	store.On("GetCV", ctx, "portfolio1").Return(domain.CV{"id": "portfolio1", "views": 0}, nil)
	store.On("SetViews", ctx, "portfolio1", 1).Return(nil)

	publisher := new(mockPublisher)
	publisher.On("PublishViewed", ctx, mock.Anything).Return(errors.New("event bus unavailable"))

	cv, err := newTestService(store, publisher, false).View(ctx, "portfolio1")

	require.NoError(t, err)
	assert.Equal(t, 1, cv["views"])
}
