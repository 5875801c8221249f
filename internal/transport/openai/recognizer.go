// Package openai provides the named-entity recognizer over an
// OpenAI-compatible chat API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/geodex-search/geodex/internal/domain"
	"github.com/geodex-search/geodex/internal/metrics"
)

const systemPrompt = `You are a named-entity recognizer. Extract named entities from the user text.
Respond with a JSON object of the form {"entities":[{"text":"...","label":"..."}]}.
Use the label DATE for temporal expressions (dates, months, years, relative periods),
GPE for geopolitical places and PERSON for people. Preserve the exact surface text of
each entity. If there are no entities, return {"entities":[]}.`

// Recognizer extracts named entities using an OpenAI-compatible chat model.
type Recognizer struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the recognizer provider settings. A hung completion call
// would otherwise stall the whole search pipeline, so requests always carry
// a client-side timeout.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewRecognizer creates an OpenAI-compatible entity recognizer.
func NewRecognizer(cfg *Config) *Recognizer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Recognizer{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Entities recognizes named entities in text, with transport-level metrics.
func (r *Recognizer) Entities(ctx context.Context, text string) ([]domain.Entity, error) {
	req := openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}

	start := time.Now()

	resp, err := r.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.RecognizerRequestsTotal.WithLabelValues(r.provider, r.model, "error").Inc()
		return nil, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.RecognizerRequestsTotal.WithLabelValues(r.provider, r.model, "error").Inc()
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrRecognizerUnavailable)
	}

	entities, err := parseEntities(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.RecognizerRequestsTotal.WithLabelValues(r.provider, r.model, "error").Inc()
		return nil, fmt.Errorf("parse entities: %w", err)
	}

	metrics.RecognizerRequestsTotal.WithLabelValues(r.provider, r.model, "success").Inc()
	metrics.RecognizerRequestDuration.WithLabelValues(r.provider, r.model).Observe(duration.Seconds())

	return entities, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (r *Recognizer) HealthCheck(ctx context.Context) error {
	if _, err := r.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

func parseEntities(content string) ([]domain.Entity, error) {
	var parsed struct {
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
		} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}

	entities := make([]domain.Entity, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		if e.Text == "" {
			continue
		}
		entities = append(entities, domain.Entity{Text: e.Text, Label: e.Label})
	}
	return entities, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrRecognizerUnavailable.
func parseAPIError(err error) error {
	wrap := domain.ErrRecognizerUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("recognizer API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("recognizer API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("recognizer request failed: %w", wrap)
}
