package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const apiVersion = "2024-12-01-preview"

var (
	// ErrNotConfigured means one of the AZURE_OPENAI_* variables is
	// missing; the caller degrades to an advisory message.
	ErrNotConfigured = errors.New("azure openai is not configured")

	// ErrUnavailable covers connectivity failures and throttling. A
	// single attempt is made; there is no retry.
	ErrUnavailable = errors.New("azure openai is unavailable")
)

// APIError is any other non-2xx answer from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("azure openai returned %d: %s", e.StatusCode, e.Message)
}

// AzureClient talks to the Azure OpenAI chat-completions REST endpoint.
type AzureClient struct {
	Endpoint   string
	APIKey     string
	Deployment string
	HTTPClient *http.Client
}

// NewAzureClientFromEnv builds a client from AZURE_OPENAI_KEY,
// AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_MODEL_NAME. Missing variables are
// reported by name so the configuration warning can list them.
func NewAzureClientFromEnv() (*AzureClient, error) {
	required := []string{"AZURE_OPENAI_KEY", "AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_MODEL_NAME"}
	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}

	return &AzureClient{
		Endpoint:   strings.TrimSuffix(os.Getenv("AZURE_OPENAI_ENDPOINT"), "/"),
		APIKey:     os.Getenv("AZURE_OPENAI_KEY"),
		Deployment: os.Getenv("AZURE_OPENAI_MODEL_NAME"),
		HTTPClient: &http.Client{},
	}, nil
}

type chatCompletionRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AzureClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if c == nil || c.APIKey == "" || c.Endpoint == "" || c.Deployment == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(chatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.Endpoint, c.Deployment, apiVersion)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: rate limited", ErrUnavailable)
	}

	var completion chatCompletionResponse
	if resp.StatusCode != http.StatusOK {
		message := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &completion) == nil && completion.Error != nil {
			message = completion.Error.Message
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(data, &completion); err != nil {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "malformed completion response"}
	}
	if len(completion.Choices) == 0 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "completion response has no choices"}
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
