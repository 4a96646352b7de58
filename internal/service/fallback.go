package service

import (
	"math/rand/v2"
	"sync"

	"github.com/pageza/swole-ai/backend/internal/types"
)

const (
	fallbackWindow       = 20
	fallbackShortSession = 30
	fallbackRestSeconds  = 60
	fallbackCaloriesRate = 5
	fallbackWhyChosen    = "Selected for balanced workout"
	fallbackNotes        = "Great workout ahead!"
)

var fallbackCues = []string{"Maintain proper form", "Control breathing", "Start light"}

// FallbackSynthesizer builds a plan without the model. Only the exercise
// sample is random.
type FallbackSynthesizer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallbackSynthesizer creates a synthesizer drawing from src; nil seeds a
// fresh PCG source.
func NewFallbackSynthesizer(src rand.Source) *FallbackSynthesizer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &FallbackSynthesizer{rng: rand.New(src)}
}

// VolumeFor returns sets and reps for a fitness level
func VolumeFor(level types.FitnessLevel) (sets, reps int) {
	if level == types.FitnessBeginner {
		return 2, 10
	}
	return 3, 12
}

// Synthesize samples without replacement from the first 20 candidates: 4
// exercises for sessions up to 30 minutes, otherwise 6, capped by the pool.
func (f *FallbackSynthesizer) Synthesize(profile types.UserProfile, duration int, pool []types.CandidateExercise) types.WorkoutPlan {
	window := pool
	if len(window) > fallbackWindow {
		window = window[:fallbackWindow]
	}
	n := 6
	if duration <= fallbackShortSession {
		n = 4
	}
	n = min(n, len(window))

	f.mu.Lock()
	picks := f.rng.Perm(len(window))[:n]
	f.mu.Unlock()

	sets, reps := VolumeFor(profile.FitnessLevel)
	exercises := make([]types.PlanExercise, 0, n)
	for _, idx := range picks {
		c := window[idx]
		exercises = append(exercises, types.PlanExercise{
			ID:           c.ID,
			Name:         c.Name,
			Sets:         sets,
			Reps:         reps,
			RestSeconds:  fallbackRestSeconds,
			CoachingCues: append([]string(nil), fallbackCues...),
			WhyChosen:    fallbackWhyChosen,
			Images:       []string{},
			Videos:       []string{},
			Muscles:      nonNil(c.Muscles),
			Equipment:    nonNil(c.Equipment),
			Description:  c.Description,
		})
	}

	return types.WorkoutPlan{
		Exercises:         exercises,
		EstimatedCalories: float64(duration * fallbackCaloriesRate),
		WorkoutNotes:      fallbackNotes,
		Source:            types.PlanSourceFallback,
	}
}
