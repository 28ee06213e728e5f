package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiSDK is the generative-ai-go backed Generator.
type GeminiSDK struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiSDK(ctx context.Context, apiKey, modelName string, opts ...option.ClientOption) (*GeminiSDK, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSDK{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (s *GeminiSDK) Close() error {
	return s.client.Close()
}

// Generate sends a single-turn request: no history, no system instruction.
func (s *GeminiSDK) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifySDKError(err)
	}
	return firstCandidateText(resp)
}

func classifySDKError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &UpstreamError{StatusCode: gerr.Code, Message: gerr.Message}
	}
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &UpstreamError{Message: blocked.Error()}
	}
	return &TransportError{Err: err}
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &NoCandidatesError{}
	}

	cand := resp.Candidates[0]
	if cand.FinishReason != genai.FinishReasonStop && cand.FinishReason != genai.FinishReasonUnspecified {
		log.Warn().Str("finish_reason", cand.FinishReason.String()).Msg("Gemini stopped early")
	}
	if cand.Content == nil {
		return "", nil
	}
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			return string(t), nil
		}
	}
	return "", nil
}
