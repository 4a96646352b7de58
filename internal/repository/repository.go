package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/swole-ai/backend/internal/models"
	"github.com/pageza/swole-ai/backend/internal/types"
)

var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError distinguishes storage errors from the rest
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository stores user profiles
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// WorkoutRepository stores generated workouts and their feedback
type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	// ListByUser returns at most limit workouts, newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Workout, error)
	RecordFeedback(ctx context.Context, id uuid.UUID, feedback types.FeedbackRecord, recommendation string) error
}
