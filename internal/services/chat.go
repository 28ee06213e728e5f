package services

import (
	"context"
	"net/http"

	"geminichat/internal/config"
)

// Generator turns one prompt into one reply. Implementations make exactly
// one upstream call per Generate.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

const missingKeyMessage = "API key not configured. Please add GEMINI_API_KEY to .env file."

type ChatService struct {
	generator Generator
}

// NewChatService accepts a nil generator; every Ask then fails with a
// ConfigError instead of the process refusing to start.
func NewChatService(generator Generator) *ChatService {
	return &ChatService{generator: generator}
}

func (s *ChatService) Ask(ctx context.Context, message string) (string, error) {
	if s.generator == nil {
		return "", &ConfigError{Message: missingKeyMessage}
	}
	return s.generator.Generate(ctx, message)
}

func (s *ChatService) Close() error {
	if s.generator == nil {
		return nil
	}
	return s.generator.Close()
}

// NewGenerator builds the backend selected by cfg. It returns nil, nil
// when no API key is configured.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil
	}
	if cfg.GeminiClient == config.ClientSDK {
		sdk, err := NewGeminiSDK(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return sdk, nil
	}
	return NewGeminiREST(cfg.GeminiAPIURL, cfg.GeminiModel, cfg.GeminiAPIKey, http.DefaultClient), nil
}
