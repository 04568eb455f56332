package llm

import "context"

// Provider is a text-generation backend. It returns the raw model text and
// makes no promise about its shape; callers parse defensively.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt
type Request struct {
	System string
	Prompt string

	// JSON asks providers with a native JSON mode to use it
	JSON bool

	MaxTokens   int
	Temperature float64
}

// Response holds the raw generated text
type Response struct {
	Text  string
	Model string
}

const defaultMaxTokens = 256
