package adapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "github.com/diug22/BeCreativIA/backend/pkg/errors"
	"github.com/diug22/BeCreativIA/backend/pkg/logger"
)

// OpenRouter attribution headers, sent with every request so the app shows
// up under its own name in the OpenRouter dashboard.
const (
	refererHeader = "https://www.becreativia.com"
	titleHeader   = "Concept Graph Visualizer"
)

// retryBaseDelay is the unit of the linear backoff between attempts.
// Tests shrink it.
var retryBaseDelay = time.Second

// LLMAdapter handles chat completions against an OpenRouter-compatible API
type LLMAdapter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewLLMAdapter creates an adapter for the given OpenRouter endpoint.
// baseURL must already include the version prefix (".../api/v1").
func NewLLMAdapter(baseURL, apiKey, modelID string) *LLMAdapter {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{
		Transport: &attributionTransport{base: http.DefaultTransport},
	}

	return &LLMAdapter{
		client: openai.NewClientWithConfig(config),
		model:  modelID,
		logger: logger.Get(),
	}
}

// Complete sends a system prompt plus one user message and returns the
// model's reply with surrounding whitespace trimmed.
func (a *LLMAdapter) Complete(ctx context.Context, systemPrompt, userMsg string, maxTokens int, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMsg,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	// Retry with linear backoff
	var resp openai.ChatCompletionResponse
	var err error
	maxRetries := 3
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * retryBaseDelay
			a.logger.Warn("Retrying LLM request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			time.Sleep(backoff)
		}

		resp, err = a.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}

		a.logger.Error("LLM request failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.String("model", a.model),
		)
	}

	if err != nil {
		return "", apperrors.NewLLMRequestFailed(a.model, maxRetries, err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	a.logger.Debug("LLM response received",
		zap.String("model", a.model),
		zap.Int("length", len(content)),
	)

	return content, nil
}

// attributionTransport injects the OpenRouter attribution headers into
// every outgoing request
type attributionTransport struct {
	base http.RoundTripper
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone before mutating; RoundTrippers must not modify the caller's
	// request.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("HTTP-Referer", refererHeader)
	cloned.Header.Set("X-Title", titleHeader)
	return t.base.RoundTrip(cloned)
}
