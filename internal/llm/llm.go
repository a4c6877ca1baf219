package llm

import "context"

// CompletionRequest carries the prompt and decoding parameters for one call.
// Exactly one candidate is requested; Temperature is only sent when set.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature *float32
}

// Client abstracts the remote text-completion endpoint. The API key is the
// caller's per-request credential; implementations must not retain it.
type Client interface {
	Complete(ctx context.Context, apiKey string, req CompletionRequest) (string, error)
}
