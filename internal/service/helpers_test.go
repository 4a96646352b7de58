package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/swole-ai/backend/internal/types"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// stubCompleter returns a fixed reply and counts calls
type stubCompleter struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	return s.reply, s.err
}

func (s *stubCompleter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// fakeCatalog serves canned exercises per category
type fakeCatalog struct {
	mu         sync.Mutex
	exercises  map[int][]types.CandidateExercise
	failing    map[int]bool
	delays     map[int]time.Duration
	images     map[int][]string
	videos     map[int][]string
	mediaErr   error
	listCalls  int
	imageCalls int
}

var errCatalogDown = errors.New("catalog down")

func (f *fakeCatalog) ListExercises(ctx context.Context, categoryID, _ int, limit int) ([]types.CandidateExercise, error) {
	f.mu.Lock()
	f.listCalls++
	delay := f.delays[categoryID]
	failing := f.failing[categoryID]
	list := f.exercises[categoryID]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if failing {
		return nil, errCatalogDown
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeCatalog) ListImages(_ context.Context, exerciseID int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageCalls++
	if f.mediaErr != nil {
		return nil, f.mediaErr
	}
	return f.images[exerciseID], nil
}

func (f *fakeCatalog) ListVideos(_ context.Context, exerciseID int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mediaErr != nil {
		return nil, f.mediaErr
	}
	return f.videos[exerciseID], nil
}

// staticMedia returns deterministic media per id
type staticMedia struct{}

func (staticMedia) Fetch(_ context.Context, id int) Media {
	return Media{
		Images: []string{fmt.Sprintf("https://img/%d.png", id)},
		Videos: []string{},
	}
}

// slowMedia answers lower ids later so lookups complete out of order
type slowMedia struct {
	mu    sync.Mutex
	order []int
}

func (m *slowMedia) Fetch(ctx context.Context, id int) Media {
	time.Sleep(time.Duration(20-id) * 5 * time.Millisecond)
	m.mu.Lock()
	m.order = append(m.order, id)
	m.mu.Unlock()
	return staticMedia{}.Fetch(ctx, id)
}

func (m *slowMedia) completed() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.order...)
}

type staticCandidates struct {
	pool  []types.CandidateExercise
	calls int
}

func (s *staticCandidates) FetchCandidates(context.Context, types.WorkoutType, int) []types.CandidateExercise {
	s.calls++
	return s.pool
}

func makePool(n int) []types.CandidateExercise {
	pool := make([]types.CandidateExercise, 0, n)
	for i := 1; i <= n; i++ {
		pool = append(pool, types.CandidateExercise{
			ID:          i,
			Name:        fmt.Sprintf("Exercise %d", i),
			Description: fmt.Sprintf("Description %d", i),
			Category:    "Legs",
			Muscles:     []string{fmt.Sprintf("muscle-%d", i)},
			Equipment:   []string{"none"},
		})
	}
	return pool
}

func beginnerProfile() types.UserProfile {
	return types.UserProfile{
		Name:              "Sam",
		Age:               28,
		Gender:            types.GenderFemale,
		WeightKg:          60,
		HeightCm:          165,
		FitnessLevel:      types.FitnessBeginner,
		Goals:             []string{"endurance", "mobility"},
		MedicalConditions: []string{},
	}
}

// planJSON renders a model reply selecting ids
func planJSON(ids ...int) string {
	out := `{"exercises": [`
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"id": %d, "name": "Pick %d", "sets": 3, "reps": 12, "rest_seconds": 45,
			"coaching_cues": ["Brace", "Breathe", "Drive", "Control", "Extra"], "why_chosen": "fits",
			"muscles": ["model says"], "equipment": ["model says"]}`, id, id)
	}
	return out + `], "estimated_calories": 210, "workout_notes": "Let's go"}`
}
