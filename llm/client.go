package llm

import "context"

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer is the injected model boundary: prompt text in, completion text
// out. The summarization logic never talks to the network directly, so it
// can be tested against a fake.
type Completer interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
