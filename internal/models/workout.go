package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/pageza/swole-ai/backend/internal/types"
)

type Workout struct {
	ID                 uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	UserID             uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User               *User            `gorm:"foreignKey:UserID" json:"-"`
	WorkoutType        string           `gorm:"size:20;not null" json:"workout_type"`
	DurationMinutes    int              `gorm:"not null" json:"duration_minutes"`
	EquipmentAvailable JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"equipment_available"`
	Exercises          datatypes.JSON   `gorm:"not null" json:"exercises"`
	EstimatedCalories  float64          `gorm:"not null" json:"estimated_calories"`
	WorkoutNotes       string           `gorm:"type:text" json:"workout_notes"`
	Source             string           `gorm:"size:10;not null;default:'ai'" json:"source"` // ai, fallback
	Completed          bool             `gorm:"not null;default:false" json:"completed"`
	Feedback           datatypes.JSON   `json:"feedback,omitempty"`
	Recommendation     string           `gorm:"type:text" json:"recommendation"`
}

// TableName returns the table name for the Workout model
func (Workout) TableName() string {
	return "workouts"
}

// NewWorkout builds a workout row for a synthesized plan
func NewWorkout(userID uuid.UUID, req *types.GenerateWorkoutRequest, duration int, plan types.WorkoutPlan) (*Workout, error) {
	exercises, err := json.Marshal(plan.Exercises)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal exercises: %w", err)
	}
	return &Workout{
		ID:                 uuid.New(),
		UserID:             userID,
		WorkoutType:        string(req.WorkoutType),
		DurationMinutes:    duration,
		EquipmentAvailable: JSONBStringArray(req.EquipmentAvailable),
		Exercises:          datatypes.JSON(exercises),
		EstimatedCalories:  plan.EstimatedCalories,
		WorkoutNotes:       plan.WorkoutNotes,
		Source:             string(plan.Source),
	}, nil
}

// ToResponse decodes the JSON columns into the API shape
func (w *Workout) ToResponse() (types.WorkoutResponse, error) {
	resp := types.WorkoutResponse{
		WorkoutID:          w.ID,
		UserID:             w.UserID,
		WorkoutType:        types.WorkoutType(w.WorkoutType),
		DurationMinutes:    w.DurationMinutes,
		EquipmentAvailable: []string(w.EquipmentAvailable),
		Exercises:          []types.PlanExercise{},
		EstimatedCalories:  w.EstimatedCalories,
		WorkoutNotes:       w.WorkoutNotes,
		Source:             types.PlanSource(w.Source),
		Completed:          w.Completed,
		Recommendation:     w.Recommendation,
		CreatedAt:          w.CreatedAt,
	}
	if resp.EquipmentAvailable == nil {
		resp.EquipmentAvailable = []string{}
	}
	if len(w.Exercises) > 0 {
		if err := json.Unmarshal(w.Exercises, &resp.Exercises); err != nil {
			return resp, fmt.Errorf("failed to decode exercises for workout %s: %w", w.ID, err)
		}
	}
	if len(w.Feedback) > 0 && string(w.Feedback) != "null" {
		var fb types.FeedbackRecord
		if err := json.Unmarshal(w.Feedback, &fb); err != nil {
			return resp, fmt.Errorf("failed to decode feedback for workout %s: %w", w.ID, err)
		}
		resp.Feedback = &fb
	}
	return resp, nil
}
