package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	apperrors "github.com/diug22/BeCreativIA/backend/pkg/errors"
)

func TestComplete_SendsAttributionHeaders(t *testing.T) {
	var gotHeaders http.Header
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Hola  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	adapter := NewLLMAdapter(server.URL, "test-key", "test-model")

	content, err := adapter.Complete(context.Background(), "sistema", "Concepto: Sol", 50, 0.5)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if content != "Hola" {
		t.Errorf("Expected trimmed content %q, got %q", "Hola", content)
	}
	if got := gotHeaders.Get("HTTP-Referer"); got != refererHeader {
		t.Errorf("Expected HTTP-Referer %q, got %q", refererHeader, got)
	}
	if got := gotHeaders.Get("X-Title"); got != titleHeader {
		t.Errorf("Expected X-Title %q, got %q", titleHeader, got)
	}
	if got := gotHeaders.Get("Authorization"); got != "Bearer test-key" {
		t.Errorf("Expected Authorization bearer token, got %q", got)
	}

	if got := gotBody["model"]; got != "test-model" {
		t.Errorf("Expected model test-model in request, got %v", got)
	}
	if got := gotBody["max_tokens"]; got != float64(50) {
		t.Errorf("Expected max_tokens 50 in request, got %v", got)
	}
	if got := gotBody["temperature"]; got != 0.5 {
		t.Errorf("Expected temperature 0.5 in request, got %v", got)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	adapter := NewLLMAdapter(server.URL, "test-key", "test-model")

	_, err := adapter.Complete(context.Background(), "sistema", "Concepto: Sol", 50, 0.5)
	if err == nil {
		t.Fatal("Expected error for empty choices")
	}
	if !apperrors.IsErrorType(err, apperrors.ErrorTypeLLM) {
		t.Errorf("Expected LLM error type, got %v", err)
	}
}

func TestComplete_RetriesThenSucceeds(t *testing.T) {
	restore := retryBaseDelay
	retryBaseDelay = time.Millisecond
	defer func() { retryBaseDelay = restore }()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Guitarra"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	adapter := NewLLMAdapter(server.URL, "test-key", "test-model")

	content, err := adapter.Complete(context.Background(), "sistema", "Concepto: Música", 50, 0.5)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != "Guitarra" {
		t.Errorf("Expected content Guitarra, got %q", content)
	}
	if requests != 3 {
		t.Errorf("Expected 3 requests, got %d", requests)
	}
}

func TestComplete_FailsAfterRetries(t *testing.T) {
	restore := retryBaseDelay
	retryBaseDelay = time.Millisecond
	defer func() { retryBaseDelay = restore }()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
	}))
	defer server.Close()

	adapter := NewLLMAdapter(server.URL, "test-key", "test-model")

	_, err := adapter.Complete(context.Background(), "sistema", "Concepto: Sol", 50, 0.5)
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	var reqErr *apperrors.ErrLLMRequestFailed
	if !errors.As(err, &reqErr) {
		t.Fatalf("Expected ErrLLMRequestFailed, got %v", err)
	}
	if reqErr.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", reqErr.Attempts)
	}
	if requests != 3 {
		t.Errorf("Expected 3 requests, got %d", requests)
	}
}

// TestComplete_OpenRouter requires a real OpenRouter API key
// This is a basic integration test
func TestComplete_OpenRouter(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		t.Skip("OPENROUTER_API_KEY not set")
	}

	adapter := NewLLMAdapter("https://openrouter.ai/api/v1", apiKey, "openrouter/horizon-beta")

	content, err := adapter.Complete(context.Background(), "Eres un asistente útil.", "Di hola en una frase.", 50, 0.5)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if content == "" {
		t.Error("Expected non-empty content in response")
	}
}
