package mocks

import (
	"context"

	"github.com/phrazzld/mnemo-api/internal/domain"
	"github.com/phrazzld/mnemo-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockSessionService is a testify mock of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

var _ service.SessionService = (*MockSessionService)(nil)

// CreateSession implements service.SessionService
func (m *MockSessionService) CreateSession(
	ctx context.Context,
	userID int64,
	exerciseID *int64,
	cfg domain.ExerciseConfig,
) (*domain.Session, error) {
	args := m.Called(ctx, userID, exerciseID, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// UpdateSession implements service.SessionService
func (m *MockSessionService) UpdateSession(
	ctx context.Context,
	sessionID, userID int64,
	update domain.SessionUpdate,
) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// GetSession implements service.SessionService
func (m *MockSessionService) GetSession(ctx context.Context, sessionID, userID int64) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// ListSessions implements service.SessionService
func (m *MockSessionService) ListSessions(
	ctx context.Context,
	userID int64,
	params service.ListSessionsParams,
) ([]*domain.Session, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Session), args.Error(1)
}

// GetScoreBreakdown implements service.SessionService
func (m *MockSessionService) GetScoreBreakdown(
	ctx context.Context,
	sessionID, userID int64,
) (*domain.ScoreBreakdown, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreBreakdown), args.Error(1)
}
