package types

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest represents the request body for creating a user profile
type CreateUserRequest struct {
	Name              string       `json:"name" binding:"required,max=100"`
	Age               int          `json:"age" binding:"required,min=13,max=120"`
	Gender            Gender       `json:"gender" binding:"required,oneof=male female other"`
	WeightKg          float64      `json:"weight_kg" binding:"required,gt=0"`
	HeightCm          float64      `json:"height_cm" binding:"required,gt=0"`
	FitnessLevel      FitnessLevel `json:"fitness_level" binding:"required,oneof=beginner intermediate advanced"`
	Goals             []string     `json:"goals" binding:"required"`
	MedicalConditions []string     `json:"medical_conditions"`
}

// Profile converts the request into the profile value the pipeline reads
func (r *CreateUserRequest) Profile() UserProfile {
	conditions := r.MedicalConditions
	if conditions == nil {
		conditions = []string{}
	}
	return UserProfile{
		Name:              r.Name,
		Age:               r.Age,
		Gender:            r.Gender,
		WeightKg:          r.WeightKg,
		HeightCm:          r.HeightCm,
		FitnessLevel:      r.FitnessLevel,
		Goals:             r.Goals,
		MedicalConditions: conditions,
	}
}

// CreateUserResponse is returned after a profile has been stored
type CreateUserResponse struct {
	UserID  uuid.UUID   `json:"user_id"`
	Message string      `json:"message"`
	BMI     float64     `json:"bmi"`
	Profile UserProfile `json:"profile"`
}

// UserResponse represents a stored user profile
type UserResponse struct {
	UserID uuid.UUID `json:"user_id"`
	UserProfile
}

// GenerateWorkoutRequest represents the request body for workout generation.
// EquipmentAvailable is stored with the workout but not used for filtering.
type GenerateWorkoutRequest struct {
	UserID             uuid.UUID   `json:"user_id" binding:"required"`
	WorkoutType        WorkoutType `json:"workout_type" binding:"required"`
	DurationMinutes    *int        `json:"duration_minutes" binding:"omitempty,min=10,max=120"`
	EquipmentAvailable []string    `json:"equipment_available"`
}

// DefaultDurationMinutes applies when a generate request omits the duration
const DefaultDurationMinutes = 30

// Duration returns the requested minutes, or the default when the field was omitted.
// An explicit zero is returned as is.
func (r *GenerateWorkoutRequest) Duration() int {
	if r.DurationMinutes == nil {
		return DefaultDurationMinutes
	}
	return *r.DurationMinutes
}

// GenerateWorkoutResponse is a freshly synthesized and stored workout
type GenerateWorkoutResponse struct {
	WorkoutID       uuid.UUID   `json:"workout_id"`
	UserName        string      `json:"user_name"`
	WorkoutType     WorkoutType `json:"workout_type"`
	DurationMinutes int         `json:"duration_minutes"`
	WorkoutPlan
}

// WorkoutResponse represents a stored workout
type WorkoutResponse struct {
	WorkoutID          uuid.UUID       `json:"workout_id"`
	UserID             uuid.UUID       `json:"user_id"`
	WorkoutType        WorkoutType     `json:"workout_type"`
	DurationMinutes    int             `json:"duration_minutes"`
	EquipmentAvailable []string        `json:"equipment_available"`
	Exercises          []PlanExercise  `json:"exercises"`
	EstimatedCalories  float64         `json:"estimated_calories"`
	WorkoutNotes       string          `json:"workout_notes"`
	Source             PlanSource      `json:"source"`
	Completed          bool            `json:"completed"`
	Feedback           *FeedbackRecord `json:"feedback,omitempty"`
	Recommendation     string          `json:"recommendation,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// WorkoutHistoryResponse lists a user's workouts, newest first
type WorkoutHistoryResponse struct {
	UserID        uuid.UUID         `json:"user_id"`
	TotalWorkouts int               `json:"total_workouts"`
	Workouts      []WorkoutResponse `json:"workouts"`
}

// SubmitFeedbackRequest represents the request body for workout feedback
type SubmitFeedbackRequest struct {
	Completed        bool    `json:"completed"`
	DifficultyRating int     `json:"difficulty_rating" binding:"required,min=1,max=10"`
	Enjoyed          bool    `json:"enjoyed"`
	Notes            *string `json:"notes" binding:"omitempty,max=2000"`
}

// Record converts the request into a feedback record
func (r *SubmitFeedbackRequest) Record() FeedbackRecord {
	return FeedbackRecord{
		Completed:        r.Completed,
		DifficultyRating: r.DifficultyRating,
		Enjoyed:          r.Enjoyed,
		Notes:            r.Notes,
	}
}

// SubmitFeedbackResponse is returned once feedback has been recorded
type SubmitFeedbackResponse struct {
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
}

// ChatMessage is one turn of a chat conversation
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest carries the conversation so far and an optional image, either a
// data URL or raw base64
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
	Image    string        `json:"image"`
}

// ChatResponse is the assistant's reply
type ChatResponse struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}
