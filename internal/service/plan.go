package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/swole-ai/backend/internal/types"
)

const (
	planTemperature  = 0.7
	planMaxTokens    = 2000
	minPlanExercises = 4
	maxPlanExercises = 6
	minCoachingCues  = 3
	maxCoachingCues  = 4
)

// rawPlan mirrors the requested response shape. Pointers distinguish missing
// fields from zero values.
type rawPlan struct {
	Exercises         []rawExercise `json:"exercises"`
	EstimatedCalories *float64      `json:"estimated_calories"`
	WorkoutNotes      *string       `json:"workout_notes"`
}

type rawExercise struct {
	ID           *int     `json:"id"`
	Name         string   `json:"name"`
	Sets         *int     `json:"sets"`
	Reps         *int     `json:"reps"`
	RestSeconds  *int     `json:"rest_seconds"`
	CoachingCues []string `json:"coaching_cues"`
	WhyChosen    *string  `json:"why_chosen"`
}

// stripCodeFences removes a surrounding ``` or ```json block
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(strings.TrimPrefix(text, "```json"), "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// ParsePlanResponse validates a raw model response against the plan schema
// and the candidate pool. Every exercise id must belong to the pool and
// appear once, and each exercise needs at least 3 cues and a why_chosen; any
// violation rejects the whole response. Cue lists are cut to 4. Muscles, equipment
// and description always come from the pool entry.
func ParsePlanResponse(raw string, pool []types.CandidateExercise) types.PlanResult {
	text := stripCodeFences(raw)
	if text == "" {
		return types.Invalid("empty response")
	}

	var parsed rawPlan
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return types.Invalid(fmt.Sprintf("malformed JSON: %v", err))
	}

	if n := len(parsed.Exercises); n < minPlanExercises || n > maxPlanExercises {
		return types.Invalid(fmt.Sprintf("expected %d-%d exercises, got %d", minPlanExercises, maxPlanExercises, n))
	}
	if parsed.EstimatedCalories == nil || *parsed.EstimatedCalories <= 0 {
		return types.Invalid("estimated_calories missing or not positive")
	}
	if parsed.WorkoutNotes == nil {
		return types.Invalid("workout_notes missing")
	}

	byID := make(map[int]types.CandidateExercise, len(pool))
	for _, c := range pool {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}

	seen := make(map[int]bool, len(parsed.Exercises))
	exercises := make([]types.PlanExercise, 0, len(parsed.Exercises))
	for i, ex := range parsed.Exercises {
		switch {
		case ex.ID == nil:
			return types.Invalid(fmt.Sprintf("exercise %d: id missing", i))
		case ex.Sets == nil || *ex.Sets <= 0:
			return types.Invalid(fmt.Sprintf("exercise %d: sets missing or not positive", i))
		case ex.Reps == nil || *ex.Reps <= 0:
			return types.Invalid(fmt.Sprintf("exercise %d: reps missing or not positive", i))
		case ex.RestSeconds == nil || *ex.RestSeconds < 0:
			return types.Invalid(fmt.Sprintf("exercise %d: rest_seconds missing or negative", i))
		case len(ex.CoachingCues) < minCoachingCues:
			return types.Invalid(fmt.Sprintf("exercise %d: expected at least %d coaching_cues, got %d", i, minCoachingCues, len(ex.CoachingCues)))
		case ex.WhyChosen == nil || strings.TrimSpace(*ex.WhyChosen) == "":
			return types.Invalid(fmt.Sprintf("exercise %d: why_chosen missing", i))
		}

		candidate, ok := byID[*ex.ID]
		if !ok {
			return types.Invalid(fmt.Sprintf("exercise id %d is not in the candidate pool", *ex.ID))
		}
		if seen[*ex.ID] {
			return types.Invalid(fmt.Sprintf("exercise id %d appears more than once", *ex.ID))
		}
		seen[*ex.ID] = true

		cues := ex.CoachingCues
		if len(cues) > maxCoachingCues {
			cues = cues[:maxCoachingCues]
		}
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			name = candidate.Name
		}

		exercises = append(exercises, types.PlanExercise{
			ID:           candidate.ID,
			Name:         name,
			Sets:         *ex.Sets,
			Reps:         *ex.Reps,
			RestSeconds:  *ex.RestSeconds,
			CoachingCues: cues,
			WhyChosen:    *ex.WhyChosen,
			Images:       []string{},
			Videos:       []string{},
			Muscles:      nonNil(candidate.Muscles),
			Equipment:    nonNil(candidate.Equipment),
			Description:  candidate.Description,
		})
	}

	return types.Valid(types.WorkoutPlan{
		Exercises:         exercises,
		EstimatedCalories: *parsed.EstimatedCalories,
		WorkoutNotes:      *parsed.WorkoutNotes,
		Source:            types.PlanSourceAI,
	})
}

// PlanSynthesizer turns a candidate pool into a plan through the model,
// delegating to the fallback on any failure
type PlanSynthesizer struct {
	llm      Completer
	media    MediaFetcher
	fallback *FallbackSynthesizer
}

// NewPlanSynthesizer creates a synthesizer. llm may be nil, in which case every
// plan comes from the fallback.
func NewPlanSynthesizer(llm Completer, media MediaFetcher, fallback *FallbackSynthesizer) *PlanSynthesizer {
	return &PlanSynthesizer{
		llm:      llm,
		media:    media,
		fallback: fallback,
	}
}

// Synthesize never fails: the result is either a fully validated and enriched
// model plan or a fallback plan over the same pool.
func (s *PlanSynthesizer) Synthesize(ctx context.Context, profile types.UserProfile, tag types.WorkoutType, duration int, pool []types.CandidateExercise) types.WorkoutPlan {
	plan, err := s.synthesize(ctx, profile, tag, duration, pool)
	if err != nil {
		log.Warn().Err(err).Str("workout_type", string(tag)).Msg("Plan synthesis failed, using fallback")
		return s.fallback.Synthesize(profile, duration, pool)
	}
	return plan
}

func (s *PlanSynthesizer) synthesize(ctx context.Context, profile types.UserProfile, tag types.WorkoutType, duration int, pool []types.CandidateExercise) (types.WorkoutPlan, error) {
	if s.llm == nil {
		return types.WorkoutPlan{}, fmt.Errorf("%w: no model configured", ErrUpstreamUnavailable)
	}

	prompt, err := BuildWorkoutPrompt(profile, tag, duration, pool)
	if err != nil {
		return types.WorkoutPlan{}, err
	}

	raw, err := s.llm.Complete(ctx, CompletionRequest{
		System:      trainerSystemPrompt,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: planTemperature,
		MaxTokens:   planMaxTokens,
	})
	if err != nil {
		return types.WorkoutPlan{}, err
	}

	result := ParsePlanResponse(raw, pool)
	if !result.OK() {
		return types.WorkoutPlan{}, fmt.Errorf("%w: %s", ErrSchemaViolation, result.Reason)
	}

	plan := *result.Plan
	s.enrich(ctx, plan.Exercises)
	return plan, nil
}

// enrich attaches media to every exercise concurrently, writing each result
// back to its own index so plan order is preserved
func (s *PlanSynthesizer) enrich(ctx context.Context, exercises []types.PlanExercise) {
	if s.media == nil {
		return
	}
	var eg errgroup.Group
	for i := range exercises {
		eg.Go(func() error {
			m := s.media.Fetch(ctx, exercises[i].ID)
			exercises[i].Images = m.Images
			exercises[i].Videos = m.Videos
			return nil
		})
	}
	_ = eg.Wait()
}
