package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testClient(endpoint string) *AzureClient {
	return &AzureClient{
		Endpoint:   endpoint,
		APIKey:     "test-key",
		Deployment: "test-model",
		HTTPClient: &http.Client{},
	}
}

func completionBody(content string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return body
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "test-key" {
			t.Errorf("missing api-key header")
		}
		if got := r.URL.Query().Get("api-version"); got != apiVersion {
			t.Errorf("api-version = %q", got)
		}

		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Write(completionBody("  a summary  "))
	}))
	defer server.Close()

	client := testClient(server.URL)
	got, err := client.Complete(context.Background(), ChatRequest{
		System:      "persona",
		Prompt:      "prompt",
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if got != "a summary" {
		t.Errorf("completion = %q", got)
	}
}

func TestCompleteRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), ChatRequest{Prompt: "p"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCompleteConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	_, err := testClient(server.URL).Complete(context.Background(), ChatRequest{Prompt: "p"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "content filter tripped"},
		})
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), ChatRequest{Prompt: "p"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "content filter tripped" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Complete(context.Background(), ChatRequest{Prompt: "p"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("expected APIError for empty choices, got %v", err)
	}
}

func TestNewAzureClientFromEnvMissingConfig(t *testing.T) {
	for _, name := range []string{"AZURE_OPENAI_KEY", "AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_MODEL_NAME"} {
		os.Unsetenv(name)
	}

	_, err := NewAzureClientFromEnv()
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewAzureClientFromEnv(t *testing.T) {
	t.Setenv("AZURE_OPENAI_KEY", "k")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com/")
	t.Setenv("AZURE_OPENAI_MODEL_NAME", "gpt-4o-mini")

	client, err := NewAzureClientFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Endpoint != "https://example.openai.azure.com" {
		t.Errorf("endpoint not trimmed: %q", client.Endpoint)
	}
}
