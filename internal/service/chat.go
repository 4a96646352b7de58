package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pageza/swole-ai/backend/internal/types"
)

const (
	chatHistoryLimit = 10
	chatTemperature  = 0.7
	chatMaxTokens    = 1000
	chatSystemPrompt = "You are an expert personal trainer and fitness coach. " +
		"Give safe, practical advice about exercise technique and training. " +
		"When the user shares an image, use it to inform your answer."
)

// ChatService relays a trainer conversation to the model
type ChatService struct {
	llm    Completer
	images ImageStore
}

// NewChatService creates a chat service. images may be nil, in which case
// images are inlined as data URLs.
func NewChatService(llm Completer, images ImageStore) *ChatService {
	return &ChatService{llm: llm, images: images}
}

// Chat forwards the last 10 messages with the trainer framing
func (s *ChatService) Chat(ctx context.Context, req *types.ChatRequest) (*types.ChatResponse, error) {
	history := req.Messages
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: messages must not be empty", ErrValidation)
	}
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}

	messages := make([]Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, Message{Role: m.Role, Content: m.Content})
	}

	if req.Image != "" {
		url, err := s.imageURL(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		for i := len(messages) - 1; i >= 0; i-- {
			if messages[i].Role == "user" {
				messages[i].ImageURL = url
				break
			}
		}
	}

	content, err := s.llm.Complete(ctx, CompletionRequest{
		System:      chatSystemPrompt,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	return &types.ChatResponse{Content: content, Role: "assistant"}, nil
}

// imageURL uploads the image when a store is configured, otherwise it returns
// a data URL
func (s *ChatService) imageURL(ctx context.Context, image string) (string, error) {
	data, contentType, err := DecodeImage(image)
	if err != nil {
		return "", err
	}

	if s.images != nil {
		url, err := s.images.Upload(ctx, data, contentType)
		if err == nil {
			return url, nil
		}
		log.Warn().Err(err).Msg("Chat image upload failed, inlining image")
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeImage accepts a data URL or raw base64 and returns the bytes and
// their content type. Only image content is accepted.
func DecodeImage(image string) ([]byte, string, error) {
	payload := strings.TrimSpace(image)
	contentType := ""
	if strings.HasPrefix(payload, "data:") {
		header, body, ok := strings.Cut(payload, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("%w: image must be a base64 data URL", ErrValidation)
		}
		contentType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = body
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: image is not valid base64", ErrValidation)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: image is empty", ErrValidation)
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("%w: unsupported image type %s", ErrValidation, contentType)
	}
	return data, contentType, nil
}
