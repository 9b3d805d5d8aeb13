package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultOpenAIModel = "gpt-4o"
	openAIBaseURL      = "https://api.openai.com/v1"
)

type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
}

func NewOpenAI(apiKey, model string, timeout time.Duration) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{apiKey: apiKey, model: model, baseURL: openAIBaseURL, timeout: timeout}
}

func (o *OpenAI) WithBaseURL(u string) *OpenAI {
	o.baseURL = strings.TrimRight(u, "/")
	return o
}

func (o *OpenAI) Name() string {
	return "openai/" + o.model
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model": o.model,
		"messages": []map[string]string{{
			"role":    "user",
			"content": prompt,
		}},
		"max_tokens": 4000,
	}

	headers := map[string]string{"Authorization": "Bearer " + o.apiKey}
	respBytes, err := postJSON(ctx, newHTTPClient(o.timeout), o.baseURL+"/chat/completions", headers, body, "OpenAI")
	if err != nil {
		return "", err
	}

	var openaiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &openaiResp); err != nil {
		return "", fmt.Errorf("decode OpenAI response: %w", err)
	}
	if openaiResp.Error.Message != "" {
		return "", fmt.Errorf("OpenAI API error: %s", openaiResp.Error.Message)
	}
	if len(openaiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return openaiResp.Choices[0].Message.Content, nil
}
