// Package llm provides the text-generation collaborator used for animation
// analysis.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient calls the Gemini generateContent REST endpoint. The API key
// comes from process environment, never from user input.
type GeminiClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewGemini returns a client using the default API endpoint.
func NewGemini(apiKey string, log *slog.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log,
	}
}

// NewGeminiWithBaseURL returns a client against a custom endpoint. Used in tests.
func NewGeminiWithBaseURL(apiKey, baseURL string, log *slog.Logger) *GeminiClient {
	c := NewGemini(apiKey, log)
	c.baseURL = baseURL
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to the given model and returns the generated text.
func (c *GeminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("gemini API key required")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(respBody))
	}

	var out generateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("gemini response decode failed: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	text := out.Candidates[0].Content.Parts[0].Text
	c.log.Debug("gemini response received", slog.Int("chars", len(text)))
	return text, nil
}
