package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/swole-ai/backend/internal/service"
	"github.com/pageza/swole-ai/backend/internal/types"
)

// MockUserService is a mock implementation of service.IUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*types.CreateUserResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CreateUserResponse), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*types.UserResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserResponse), args.Error(1)
}

// MockWorkoutService is a mock implementation of service.IWorkoutService
type MockWorkoutService struct {
	mock.Mock
}

func (m *MockWorkoutService) Generate(ctx context.Context, req *types.GenerateWorkoutRequest) (*types.GenerateWorkoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GenerateWorkoutResponse), args.Error(1)
}

func (m *MockWorkoutService) GetWorkout(ctx context.Context, id uuid.UUID) (*types.WorkoutResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WorkoutResponse), args.Error(1)
}

func (m *MockWorkoutService) History(ctx context.Context, userID uuid.UUID, limit int) (*types.WorkoutHistoryResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WorkoutHistoryResponse), args.Error(1)
}

func (m *MockWorkoutService) SubmitFeedback(ctx context.Context, workoutID uuid.UUID, req *types.SubmitFeedbackRequest) (*types.SubmitFeedbackResponse, error) {
	args := m.Called(ctx, workoutID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SubmitFeedbackResponse), args.Error(1)
}

// MockChatService is a mock implementation of service.IChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ChatResponse), args.Error(1)
}

// MockHealthChecker returns a canned report
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) Check(ctx context.Context) service.HealthReport {
	args := m.Called(ctx)
	return args.Get(0).(service.HealthReport)
}
