package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageza/swole-ai/backend/internal/types"
)

const (
	maxPromptCandidates  = 30
	maxPromptDescription = 100
	trainerSystemPrompt  = "You are an expert personal trainer who creates safe, effective workouts."
)

type promptExercise struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Muscles     []string `json:"muscles"`
	Equipment   []string `json:"equipment"`
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// BuildWorkoutPrompt renders the plan request for the model. It reads only the
// first 30 candidates and the first 100 characters of each description, so
// identical inputs always yield identical prompts.
func BuildWorkoutPrompt(profile types.UserProfile, tag types.WorkoutType, duration int, pool []types.CandidateExercise) (string, error) {
	if len(pool) > maxPromptCandidates {
		pool = pool[:maxPromptCandidates]
	}
	list := make([]promptExercise, 0, len(pool))
	for _, c := range pool {
		list = append(list, promptExercise{
			ID:          c.ID,
			Name:        c.Name,
			Description: truncateRunes(c.Description, maxPromptDescription),
			Category:    c.Category,
			Muscles:     nonNil(c.Muscles),
			Equipment:   nonNil(c.Equipment),
		})
	}
	exercises, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal candidate exercises: %w", err)
	}

	conditions := strings.Join(profile.MedicalConditions, ", ")
	if conditions == "" {
		conditions = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert fitness trainer. Create a personalized %d-minute workout.\n\n", duration)
	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "- Age: %d\n", profile.Age)
	fmt.Fprintf(&b, "- Fitness Level: %s\n", profile.FitnessLevel)
	fmt.Fprintf(&b, "- Goals: %s\n", strings.Join(profile.Goals, ", "))
	fmt.Fprintf(&b, "- Medical Conditions: %s\n\n", conditions)
	fmt.Fprintf(&b, "WORKOUT TYPE: %s\n\n", tag)
	b.WriteString("AVAILABLE EXERCISES:\n")
	b.Write(exercises)
	b.WriteString("\n\n")
	b.WriteString(`INSTRUCTIONS:
1. Select 4-6 appropriate exercises from the list above, using only their ids
2. Order them logically (warm-up → intense → cool-down)
3. Assign sets, reps, and rest periods based on fitness level
4. Provide 3-4 specific coaching cues per exercise
5. Calculate estimated calories burned

Return ONLY valid JSON with this structure:
{
  "exercises": [
    {
      "id": <exercise_id>,
      "name": "<exercise_name>",
      "sets": <number>,
      "reps": <number>,
      "rest_seconds": <number>,
      "coaching_cues": ["<cue1>", "<cue2>", "<cue3>"],
      "why_chosen": "<brief reason>"
    }
  ],
  "estimated_calories": <number>,
  "workout_notes": "<motivational message>"
}`)
	return b.String(), nil
}
