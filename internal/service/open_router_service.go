package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shadtorh/jobconnect/internal/config"
	"github.com/shadtorh/jobconnect/internal/model"
	"github.com/tidwall/gjson"
)

// OpenRouterService is the OpenRouter-backed CompletionProvider, selected
// with AI_PROVIDER=openrouter. It speaks the OpenAI chat-completions dialect
// and requests a JSON object response.
type OpenRouterService struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseURL string
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	client := resty.New().
		SetTimeout(60 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	return &OpenRouterService{
		client:  client,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
	}
}

func (s *OpenRouterService) Name() string {
	return "openrouter"
}

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", &model.AiServiceError{Provider: s.Name(), Err: fmt.Errorf("OPENROUTER_API_KEY not set")}
	}

	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature":     0.2,
		"response_format": map[string]string{"type": "json_object"},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.baseURL + "/chat/completions")
	if err != nil {
		return "", &model.AiServiceError{Provider: s.Name(), Err: err}
	}
	if resp.IsError() {
		return "", &model.AiServiceError{
			Provider: s.Name(),
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return "", &model.AiServiceError{
			Provider: s.Name(),
			Err:      fmt.Errorf("empty completion in response"),
		}
	}
	return content.String(), nil
}
