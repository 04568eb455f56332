package llm

import (
	"context"
	"fmt"
)

// NewProvider builds the configured provider wrapped with logging. It
// returns (nil, nil) for "none" or an empty provider name so callers run
// on their local fallback.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg)
	case "openai":
		base, err = NewOpenAIProvider(cfg)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithLogging(base), nil
}
