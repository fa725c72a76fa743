package ai

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single-shot generate-content call: role-tagged text parts and
// an optional demand for strict JSON output. No retries, no streaming.
type Request struct {
	Messages []Message
	JSONOnly bool
}

type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}
