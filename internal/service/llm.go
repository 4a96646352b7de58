package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pageza/swole-ai/backend/config"
)

// Message represents a message in the chat. ImageURL is only sent for user
// messages and switches the content to the multi-part form.
type Message struct {
	Role     string
	Content  string
	ImageURL string
}

// CompletionRequest is one call to the generative model
type CompletionRequest struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type wireMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// Request represents a request to an OpenAI-compatible chat completions API
type Request struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMService handles interactions with the chat completions provider
type LLMService struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg config.LLMConfig) *LLMService {
	return &LLMService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether an API key is present
func (s *LLMService) Configured() bool {
	return s.cfg.APIKey != ""
}

// Complete sends the request and returns the first choice's content, trimmed.
// Every failure wraps ErrUpstreamUnavailable.
func (s *LLMService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if !s.Configured() {
		return "", fmt.Errorf("%w: llm api key not configured", ErrUpstreamUnavailable)
	}

	body := Request{
		Model:       s.cfg.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, wireMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, toWire(m))
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var result completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrUpstreamUnavailable, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in API response", ErrUpstreamUnavailable)
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func toWire(m Message) wireMessage {
	if m.ImageURL == "" || m.Role != "user" {
		return wireMessage{Role: m.Role, Content: m.Content}
	}
	return wireMessage{
		Role: m.Role,
		Content: []contentPart{
			{Type: "text", Text: m.Content},
			{Type: "image_url", ImageURL: &imageURL{URL: m.ImageURL}},
		},
	}
}
