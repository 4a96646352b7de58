package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pageza/swole-ai/backend/config"
	"github.com/pageza/swole-ai/backend/internal/database"
	"github.com/pageza/swole-ai/backend/internal/repository"
	"github.com/pageza/swole-ai/backend/internal/service"
	"github.com/pageza/swole-ai/backend/internal/types"
)

// demoUsers covers every fitness level and gender
var demoUsers = []types.CreateUserRequest{
	{
		Name: "John Doe", Age: 34, Gender: types.GenderMale, WeightKg: 82, HeightCm: 180,
		FitnessLevel: types.FitnessBeginner, Goals: []string{"weight loss"},
	},
	{
		Name: "Jane Smith", Age: 28, Gender: types.GenderFemale, WeightKg: 61, HeightCm: 167,
		FitnessLevel: types.FitnessIntermediate, Goals: []string{"strength", "endurance"},
	},
	{
		Name: "Alex Rivera", Age: 45, Gender: types.GenderOther, WeightKg: 74, HeightCm: 172,
		FitnessLevel: types.FitnessAdvanced, Goals: []string{"muscle gain"},
		MedicalConditions: []string{"lower back pain"},
	},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.Database.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	users := service.NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()
	for i := range demoUsers {
		created, err := users.CreateUser(ctx, &demoUsers[i])
		if err != nil {
			log.Fatal().Err(err).Str("name", demoUsers[i].Name).Msg("Failed to create user")
		}
		log.Info().
			Str("user_id", created.UserID.String()).
			Str("name", created.Profile.Name).
			Str("fitness_level", string(created.Profile.FitnessLevel)).
			Float64("bmi", created.BMI).
			Msg("Created demo user")
	}
	log.Info().Int("count", len(demoUsers)).Msg("Demo users created")
}
