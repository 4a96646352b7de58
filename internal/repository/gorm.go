package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/swole-ai/backend/internal/models"
	"github.com/pageza/swole-ai/backend/internal/types"
)

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a gorm backed UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

type gormWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository returns a gorm backed WorkoutRepository
func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &gormWorkoutRepository{db: db}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	if err := r.db.WithContext(ctx).Create(workout).Error; err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

func (r *gormWorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&workout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&workouts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return workouts, nil
}

func (r *gormWorkoutRepository) RecordFeedback(ctx context.Context, id uuid.UUID, feedback types.FeedbackRecord, recommendation string) error {
	raw, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completed":      feedback.Completed,
			"feedback":       datatypes.JSON(raw),
			"recommendation": recommendation,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
