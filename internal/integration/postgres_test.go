package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/swole-ai/backend/config"
	"github.com/pageza/swole-ai/backend/internal/server"
	"github.com/pageza/swole-ai/backend/internal/testhelpers"
	"github.com/pageza/swole-ai/backend/internal/types"
)

func post(t *testing.T, h http.Handler, path string, body, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	return w.Code
}

func get(t *testing.T, h http.Handler, path string, out interface{}) int {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	return w.Code
}

// TestPostgresWorkoutLifecycle runs generate, feedback and history against
// PostgreSQL and Redis containers with fake catalog and model upstreams.
func TestPostgresWorkoutLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupPostgres(t)
	redisClient := testhelpers.SetupRedis(t)
	wger := testhelpers.FakeWger(t, 6)
	llm := testhelpers.NewFakeLLM(t, `{"exercises": [
		{"id": 1001, "name": "Crunch", "sets": 3, "reps": 15, "rest_seconds": 30, "coaching_cues": ["Exhale up", "Breathe", "Control"], "why_chosen": "core"},
		{"id": 1002, "name": "Plank", "sets": 3, "reps": 1, "rest_seconds": 45, "coaching_cues": ["Neutral spine", "Breathe", "Control"], "why_chosen": "core"},
		{"id": 1003, "name": "Dead bug", "sets": 2, "reps": 12, "rest_seconds": 30, "coaching_cues": ["Slow", "Breathe", "Control"], "why_chosen": "core"},
		{"id": 1004, "name": "Side plank", "sets": 2, "reps": 1, "rest_seconds": 30, "coaching_cues": ["Hips high", "Breathe", "Control"], "why_chosen": "core"}
	], "estimated_calories": 120, "workout_notes": "Brace throughout"}`)

	cfg := &config.Config{
		Env:       config.Test,
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: "0", ShutdownTimeout: time.Second},
		LLM:       config.LLMConfig{APIKey: "key", APIURL: llm.URL, Model: "test", Timeout: 5 * time.Second},
		RateLimit: config.RateLimitConfig{Requests: 2, Window: time.Minute},
		Catalog: config.CatalogConfig{
			BaseURL: wger.URL, Language: 2, Limit: 50,
			Timeout: 5 * time.Second, MediaTimeout: 5 * time.Second, MediaCacheSize: 32, CacheTTL: time.Minute,
		},
	}
	srv, err := server.New(cfg, server.Deps{DB: db, Redis: redisClient})
	require.NoError(t, err)
	h := srv.Handler()

	var user types.CreateUserResponse
	require.Equal(t, http.StatusCreated, post(t, h, "/api/v1/users", map[string]interface{}{
		"name": "Casey", "age": 52, "gender": "male", "weight_kg": 90, "height_cm": 185,
		"fitness_level": "intermediate", "goals": []string{"mobility"}, "medical_conditions": []string{"knee surgery"},
	}, &user))

	var workout types.GenerateWorkoutResponse
	require.Equal(t, http.StatusOK, post(t, h, "/api/v1/workouts/generate", map[string]interface{}{
		"user_id": user.UserID, "workout_type": "abs",
	}, &workout))
	assert.Equal(t, types.PlanSourceAI, workout.Source)
	assert.Equal(t, 30, workout.DurationMinutes)

	// the category listing is now cached in redis
	keys, err := redisClient.Keys(context.Background(), "catalog:category:*").Result()
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog:category:10:2:50"}, keys)

	var fb types.SubmitFeedbackResponse
	require.Equal(t, http.StatusOK, post(t, h, fmt.Sprintf("/api/v1/workouts/%s/feedback", workout.WorkoutID),
		map[string]interface{}{"completed": false, "difficulty_rating": 2, "enjoyed": false}, &fb))
	assert.Equal(t, "Feedback recorded!", fb.Message)

	var history types.WorkoutHistoryResponse
	require.Equal(t, http.StatusOK, get(t, h, fmt.Sprintf("/api/v1/users/%s/workouts?limit=5", user.UserID), &history))
	require.Equal(t, 1, history.TotalWorkouts)
	require.NotNil(t, history.Workouts[0].Feedback)
	assert.Equal(t, 2, history.Workouts[0].Feedback.DifficultyRating)

	var second types.GenerateWorkoutResponse
	require.Equal(t, http.StatusOK, post(t, h, "/api/v1/workouts/generate", map[string]interface{}{
		"user_id": user.UserID, "workout_type": "abs",
	}, &second))

	var limited map[string]interface{}
	code := post(t, h, "/api/v1/workouts/generate", map[string]interface{}{"user_id": user.UserID, "workout_type": "abs"}, &limited)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "rate limit exceeded", limited["error"])
}
