package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"

	"geminichat/internal/models"
)

// GeminiREST calls generateContent over plain HTTPS with the key in the
// query string. It does not retry and sets no timeout of its own.
type GeminiREST struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

func NewGeminiREST(baseURL, model, apiKey string, httpClient *http.Client) *GeminiREST {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeminiREST{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (g *GeminiREST) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		g.baseURL, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
}

func (g *GeminiREST) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(models.GenerateContentRequest{
		Contents: []models.GeminiContent{{Parts: []models.GeminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: redactKey(err, g.apiKey)}
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return "", upstreamError(err, resp.StatusCode)
	}

	var data models.GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(data.Candidates) == 0 {
		return "", &NoCandidatesError{}
	}
	return firstPartText(data.Candidates[0].Content), nil
}

func (g *GeminiREST) Close() error { return nil }

func firstPartText(content *models.GeminiContent) string {
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}

func upstreamError(err error, status int) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &UpstreamError{StatusCode: gerr.Code, Message: gerr.Message}
	}
	return &UpstreamError{StatusCode: status}
}

// url.Error embeds the full request URL, key included.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &url.Error{
			Op:  uerr.Op,
			URL: strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED"),
			Err: uerr.Err,
		}
	}
	return err
}
