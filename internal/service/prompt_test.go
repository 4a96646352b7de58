package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/swole-ai/backend/internal/types"
)

func TestBuildWorkoutPromptContents(t *testing.T) {
	prompt, err := BuildWorkoutPrompt(beginnerProfile(), types.WorkoutLegs, 25, makePool(3))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "You are an expert fitness trainer. Create a personalized 25-minute workout."))
	assert.Contains(t, prompt, "- Name: Sam")
	assert.Contains(t, prompt, "- Age: 28")
	assert.Contains(t, prompt, "- Fitness Level: beginner")
	assert.Contains(t, prompt, "- Goals: endurance, mobility")
	assert.Contains(t, prompt, "- Medical Conditions: None")
	assert.Contains(t, prompt, "WORKOUT TYPE: legs")
	assert.Contains(t, prompt, `"id": 3`)
	assert.Contains(t, prompt, "Select 4-6 appropriate exercises")
	assert.Contains(t, prompt, `"rest_seconds": <number>`)
}

func TestBuildWorkoutPromptMedicalConditions(t *testing.T) {
	profile := beginnerProfile()
	profile.MedicalConditions = []string{"asthma", "bad knee"}

	prompt, err := BuildWorkoutPrompt(profile, types.WorkoutCardio, 30, makePool(1))
	require.NoError(t, err)
	assert.Contains(t, prompt, "- Medical Conditions: asthma, bad knee")
}

func TestBuildWorkoutPromptBoundsCandidates(t *testing.T) {
	pool := makePool(40)
	pool[0].Description = strings.Repeat("é", 150)

	prompt, err := BuildWorkoutPrompt(beginnerProfile(), types.WorkoutFullBody, 45, pool)
	require.NoError(t, err)

	assert.Contains(t, prompt, `"id": 30,`)
	assert.NotContains(t, prompt, `"id": 31,`)
	assert.Contains(t, prompt, strings.Repeat("é", 100)+`"`)
	assert.NotContains(t, prompt, strings.Repeat("é", 101))
}

func TestBuildWorkoutPromptDeterministic(t *testing.T) {
	a, err := BuildWorkoutPrompt(beginnerProfile(), types.WorkoutBack, 60, makePool(35))
	require.NoError(t, err)
	b, err := BuildWorkoutPrompt(beginnerProfile(), types.WorkoutBack, 60, makePool(35))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildWorkoutPromptNilSlicesRenderAsArrays(t *testing.T) {
	pool := []types.CandidateExercise{{ID: 5, Name: "Plank"}}
	prompt, err := BuildWorkoutPrompt(beginnerProfile(), types.WorkoutAbs, 20, pool)
	require.NoError(t, err)
	assert.Contains(t, prompt, `"muscles": []`)
	assert.NotContains(t, prompt, "null")
}
