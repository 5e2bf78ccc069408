// Package llm calls the OpenAI chat-completions API and decodes the
// structured JSON analysis it returns. Callers treat any error from this
// package as "generation failed" and fall back to a local analysis.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/momentum-hq/momentum-api/internal/config"
	"github.com/momentum-hq/momentum-api/internal/domain"
)

const (
	temperature = 0.7
	maxTokens   = 2000
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func New(cfg config.OpenAI) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// analysisPayload is the JSON shape the prompt instructs the model to emit.
type analysisPayload struct {
	Summary     string              `json:"summary"`
	ActionItems []domain.ActionItem `json:"actionItems"`
	Insights    []string            `json:"insights"`
}

// GenerateAnalysis sends the prompt and parses the structured result. The
// request demands a JSON object, but the model is not fully trusted: an
// unparseable body or a missing summary is an error, never a partial result.
func (c *Client) GenerateAnalysis(ctx context.Context, systemPrompt, userPrompt string) (*domain.Analysis, error) {
	reqPayload := completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("llm: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llm: status %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("llm: decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("llm: response contained no choices")
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("llm: decode analysis: %w", err)
	}
	if payload.Summary == "" {
		return nil, fmt.Errorf("llm: analysis missing summary")
	}

	analysis := &domain.Analysis{
		Summary:     payload.Summary,
		ActionItems: payload.ActionItems,
		Insights:    payload.Insights,
	}
	if analysis.ActionItems == nil {
		analysis.ActionItems = []domain.ActionItem{}
	}
	if analysis.Insights == nil {
		analysis.Insights = []string{}
	}
	return analysis, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
