// internal/recommend/openai.go
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Prediction is the strict JSON object the model is instructed to return.
type Prediction struct {
	RecommendedCourt string `json:"recommendedCourt"`
	ConfidenceScore  int    `json:"confidenceScore"`
	Reasoning        string `json:"reasoning"`
}

// PredictionClient asks an external text-generation service to pick a court.
type PredictionClient interface {
	BestCourt(ctx context.Context, prompt string) (*Prediction, error)
}

// OpenAI calls the chat-completions API.
type OpenAI struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewOpenAI builds a client; returns nil when no API key is configured.
func NewOpenAI(apiKey string) *OpenAI {
	if apiKey == "" {
		return nil
	}
	return &OpenAI{
		APIKey:     apiKey,
		BaseURL:    "https://api.openai.com/v1/chat/completions",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *OpenAI) BestCourt(ctx context.Context, prompt string) (*Prediction, error) {
	body, err := json.Marshal(map[string]interface{}{
		"model": "gpt-4",
		"messages": []map[string]string{
			{"role": "system", "content": "You are a basketball court activity prediction AI. Always respond with valid JSON only."},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.7,
		"max_tokens":  300,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode prediction response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return nil, fmt.Errorf("prediction response contained no choices")
	}

	content := stripFences(strings.TrimSpace(payload.Choices[0].Message.Content))

	var p Prediction
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return nil, fmt.Errorf("prediction was not valid JSON: %w", err)
	}
	return &p, nil
}

// stripFences removes a surrounding markdown code fence, optionally tagged
// "json", that models sometimes wrap their output in.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	s = parts[1]
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}
