package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pageza/swole-ai/backend/internal/models"
	"github.com/pageza/swole-ai/backend/internal/repository"
	"github.com/pageza/swole-ai/backend/internal/types"
)

const (
	minDurationMinutes  = 10
	maxDurationMinutes  = 120
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	feedbackMessage     = "Feedback recorded!"
)

// WorkoutService orchestrates workout generation, lookup and feedback
type WorkoutService struct {
	users       repository.UserRepository
	workouts    repository.WorkoutRepository
	candidates  CandidateSource
	synthesizer *PlanSynthesizer
	advisor     *FeedbackAdvisor
}

// NewWorkoutService creates a new WorkoutService instance
func NewWorkoutService(
	users repository.UserRepository,
	workouts repository.WorkoutRepository,
	candidates CandidateSource,
	synthesizer *PlanSynthesizer,
	advisor *FeedbackAdvisor,
) *WorkoutService {
	return &WorkoutService{
		users:       users,
		workouts:    workouts,
		candidates:  candidates,
		synthesizer: synthesizer,
		advisor:     advisor,
	}
}

// Generate builds, stores and returns a workout for the requesting user.
// An empty candidate pool fails with ErrNoExercises before the model is called.
func (s *WorkoutService) Generate(ctx context.Context, req *types.GenerateWorkoutRequest) (*types.GenerateWorkoutResponse, error) {
	if !req.WorkoutType.Valid() {
		return nil, fmt.Errorf("%w: unknown workout type %q", ErrValidation, req.WorkoutType)
	}
	duration := req.Duration()
	if duration < minDurationMinutes || duration > maxDurationMinutes {
		return nil, fmt.Errorf("%w: duration_minutes must be between %d and %d", ErrValidation, minDurationMinutes, maxDurationMinutes)
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	profile := user.Profile()

	pool := s.candidates.FetchCandidates(ctx, req.WorkoutType, 0)
	if len(pool) == 0 {
		return nil, ErrNoExercises
	}

	plan := s.synthesizer.Synthesize(ctx, profile, req.WorkoutType, duration, pool)

	workout, err := models.NewWorkout(user.ID, req, duration, plan)
	if err != nil {
		return nil, err
	}
	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, fmt.Errorf("failed to save workout: %w", err)
	}

	log.Info().
		Str("workout_id", workout.ID.String()).
		Str("user_id", user.ID.String()).
		Str("workout_type", string(req.WorkoutType)).
		Str("source", string(plan.Source)).
		Int("exercises", len(plan.Exercises)).
		Msg("Workout generated")

	return &types.GenerateWorkoutResponse{
		WorkoutID:       workout.ID,
		UserName:        profile.Name,
		WorkoutType:     req.WorkoutType,
		DurationMinutes: duration,
		WorkoutPlan:     plan,
	}, nil
}

// GetWorkout returns a stored workout
func (s *WorkoutService) GetWorkout(ctx context.Context, id uuid.UUID) (*types.WorkoutResponse, error) {
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	resp, err := workout.ToResponse()
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// History lists a user's workouts newest first. limit <= 0 means 10.
func (s *WorkoutService) History(ctx context.Context, userID uuid.UUID, limit int) (*types.WorkoutHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	workouts, err := s.workouts.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	history := &types.WorkoutHistoryResponse{
		UserID:   userID,
		Workouts: make([]types.WorkoutResponse, 0, len(workouts)),
	}
	for i := range workouts {
		resp, err := workouts[i].ToResponse()
		if err != nil {
			return nil, err
		}
		history.Workouts = append(history.Workouts, resp)
	}
	history.TotalWorkouts = len(history.Workouts)
	return history, nil
}

// SubmitFeedback records feedback on a workout and returns a recommendation
func (s *WorkoutService) SubmitFeedback(ctx context.Context, workoutID uuid.UUID, req *types.SubmitFeedbackRequest) (*types.SubmitFeedbackResponse, error) {
	if req.DifficultyRating < 1 || req.DifficultyRating > 10 {
		return nil, fmt.Errorf("%w: difficulty_rating must be between 1 and 10", ErrValidation)
	}

	if _, err := s.workouts.GetByID(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	record := req.Record()
	recommendation := s.advisor.Recommend(ctx, record)

	if err := s.workouts.RecordFeedback(ctx, workoutID, record, recommendation); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return &types.SubmitFeedbackResponse{
		Message:        feedbackMessage,
		Recommendation: recommendation,
	}, nil
}
