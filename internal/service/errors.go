package service

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrNoExercises         = errors.New("no exercises found")
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
	ErrSchemaViolation     = errors.New("model response violates plan schema")
	ErrValidation          = errors.New("validation failed")
)
