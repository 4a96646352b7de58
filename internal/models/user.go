package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/swole-ai/backend/internal/types"
)

type User struct {
	ID                uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	Name              string           `gorm:"size:100;not null" json:"name"`
	Age               int              `gorm:"not null" json:"age"`
	Gender            string           `gorm:"size:10;not null" json:"gender"`
	WeightKg          float64          `gorm:"not null" json:"weight_kg"`
	HeightCm          float64          `gorm:"not null" json:"height_cm"`
	FitnessLevel      string           `gorm:"size:20;not null" json:"fitness_level"`
	Goals             JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"goals"`
	MedicalConditions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"medical_conditions"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser builds a user row from a validated profile
func NewUser(p types.UserProfile) *User {
	return &User{
		ID:                uuid.New(),
		Name:              p.Name,
		Age:               p.Age,
		Gender:            string(p.Gender),
		WeightKg:          p.WeightKg,
		HeightCm:          p.HeightCm,
		FitnessLevel:      string(p.FitnessLevel),
		Goals:             JSONBStringArray(p.Goals),
		MedicalConditions: JSONBStringArray(p.MedicalConditions),
	}
}

// Profile returns the profile view of the row
func (u *User) Profile() types.UserProfile {
	goals := []string(u.Goals)
	if goals == nil {
		goals = []string{}
	}
	conditions := []string(u.MedicalConditions)
	if conditions == nil {
		conditions = []string{}
	}
	return types.UserProfile{
		Name:              u.Name,
		Age:               u.Age,
		Gender:            types.Gender(u.Gender),
		WeightKg:          u.WeightKg,
		HeightCm:          u.HeightCm,
		FitnessLevel:      types.FitnessLevel(u.FitnessLevel),
		Goals:             goals,
		MedicalConditions: conditions,
	}
}
