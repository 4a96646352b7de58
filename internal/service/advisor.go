package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pageza/swole-ai/backend/internal/types"
)

const (
	adviceTemperature = 0.8
	adviceMaxTokens   = 150

	adviceTooHard = "That was intense! Next time we'll dial it back for better recovery."
	adviceTooEasy = "You crushed it! Next workout, we'll increase the challenge."
	adviceOnPoint = "Perfect intensity! Keep up the amazing work!"
)

// FallbackRecommendation picks the fixed message for a difficulty rating
func FallbackRecommendation(rating int) string {
	switch {
	case rating >= 8:
		return adviceTooHard
	case rating <= 3:
		return adviceTooEasy
	default:
		return adviceOnPoint
	}
}

// BuildFeedbackPrompt summarizes a feedback record for the model
func BuildFeedbackPrompt(fb types.FeedbackRecord) string {
	notes := "None"
	if fb.Notes != nil && strings.TrimSpace(*fb.Notes) != "" {
		notes = strings.TrimSpace(*fb.Notes)
	}
	return fmt.Sprintf(`Based on this workout feedback, provide a brief (2-3 sentences) motivational recommendation:

Completed: %t
Difficulty (1-10): %d
Enjoyed: %t
Notes: %s

Be encouraging and specific about adjustments if needed.`, fb.Completed, fb.DifficultyRating, fb.Enjoyed, notes)
}

// FeedbackAdvisor turns workout feedback into a short recommendation
type FeedbackAdvisor struct {
	llm Completer
}

// NewFeedbackAdvisor creates an advisor; llm may be nil
func NewFeedbackAdvisor(llm Completer) *FeedbackAdvisor {
	return &FeedbackAdvisor{llm: llm}
}

// Recommend never returns an empty string
func (a *FeedbackAdvisor) Recommend(ctx context.Context, fb types.FeedbackRecord) string {
	if a.llm == nil {
		return FallbackRecommendation(fb.DifficultyRating)
	}

	text, err := a.llm.Complete(ctx, CompletionRequest{
		Messages:    []Message{{Role: "user", Content: BuildFeedbackPrompt(fb)}},
		Temperature: adviceTemperature,
		MaxTokens:   adviceMaxTokens,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Feedback recommendation failed, using fallback")
		return FallbackRecommendation(fb.DifficultyRating)
	}
	if text = strings.TrimSpace(text); text == "" {
		return FallbackRecommendation(fb.DifficultyRating)
	}
	return text
}
