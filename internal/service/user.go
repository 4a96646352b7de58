package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/swole-ai/backend/internal/models"
	"github.com/pageza/swole-ai/backend/internal/repository"
	"github.com/pageza/swole-ai/backend/internal/types"
)

// UserService handles user profile operations
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService instance
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func validateProfile(p types.UserProfile) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case p.Age < 13 || p.Age > 120:
		return fmt.Errorf("%w: age must be between 13 and 120", ErrValidation)
	case !p.Gender.Valid():
		return fmt.Errorf("%w: unknown gender %q", ErrValidation, p.Gender)
	case p.WeightKg <= 0 || p.HeightCm <= 0:
		return fmt.Errorf("%w: weight and height must be positive", ErrValidation)
	case !p.FitnessLevel.Valid():
		return fmt.Errorf("%w: unknown fitness level %q", ErrValidation, p.FitnessLevel)
	}
	return nil
}

// CreateUser stores a new profile and returns its id and BMI
func (s *UserService) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*types.CreateUserResponse, error) {
	profile := req.Profile()
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Goals == nil {
		profile.Goals = []string{}
	}
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	user := models.NewUser(profile)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &types.CreateUserResponse{
		UserID:  user.ID,
		Message: fmt.Sprintf("Welcome, %s!", profile.Name),
		BMI:     profile.BMI(),
		Profile: profile,
	}, nil
}

// GetUser returns a stored profile
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*types.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &types.UserResponse{UserID: user.ID, UserProfile: user.Profile()}, nil
}
