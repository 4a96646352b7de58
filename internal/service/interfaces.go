package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/swole-ai/backend/internal/types"
)

// Completer is the generative-model capability: given a structured prompt and
// a response budget, return a text completion
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ExerciseCatalog is the exercise-catalog provider
type ExerciseCatalog interface {
	ListExercises(ctx context.Context, categoryID, language, limit int) ([]types.CandidateExercise, error)
	ListImages(ctx context.Context, exerciseID int) ([]string, error)
	ListVideos(ctx context.Context, exerciseID int) ([]string, error)
}

// MediaFetcher attaches media URLs to an exercise. Implementations never fail.
type MediaFetcher interface {
	Fetch(ctx context.Context, exerciseID int) Media
}

// CandidateSource produces the candidate pool for a workout type
type CandidateSource interface {
	FetchCandidates(ctx context.Context, tag types.WorkoutType, limit int) []types.CandidateExercise
}

// ImageStore persists chat images and returns a URL the model provider can read
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}

// IUserService defines the interface for user profile operations
type IUserService interface {
	CreateUser(ctx context.Context, req *types.CreateUserRequest) (*types.CreateUserResponse, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.UserResponse, error)
}

// IWorkoutService defines the interface for workout operations
type IWorkoutService interface {
	Generate(ctx context.Context, req *types.GenerateWorkoutRequest) (*types.GenerateWorkoutResponse, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*types.WorkoutResponse, error)
	History(ctx context.Context, userID uuid.UUID, limit int) (*types.WorkoutHistoryResponse, error)
	SubmitFeedback(ctx context.Context, workoutID uuid.UUID, req *types.SubmitFeedbackRequest) (*types.SubmitFeedbackResponse, error)
}

// IChatService defines the interface for the trainer chat
type IChatService interface {
	Chat(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error)
}
