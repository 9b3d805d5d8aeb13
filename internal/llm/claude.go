package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultClaudeModel = "claude-sonnet-4-20250514"
	claudeBaseURL      = "https://api.anthropic.com/v1"
)

type Claude struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
}

func NewClaude(apiKey, model string, timeout time.Duration) *Claude {
	if model == "" {
		model = DefaultClaudeModel
	}
	return &Claude{apiKey: apiKey, model: model, baseURL: claudeBaseURL, timeout: timeout}
}

func (c *Claude) WithBaseURL(u string) *Claude {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

func (c *Claude) Name() string {
	return "claude/" + c.model
}

func (c *Claude) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model": c.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens": 4000,
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": "2023-06-01",
	}
	respBytes, err := postJSON(ctx, newHTTPClient(c.timeout), c.baseURL+"/messages", headers, body, "Claude")
	if err != nil {
		return "", err
	}

	var claudeResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &claudeResp); err != nil {
		return "", fmt.Errorf("decode Claude response: %w", err)
	}
	if claudeResp.Error.Message != "" {
		return "", fmt.Errorf("Claude API error: %s", claudeResp.Error.Message)
	}

	var sb strings.Builder
	for _, block := range claudeResp.Content {
		if block.Type == "" || block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}
	return sb.String(), nil
}
