package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AIConfig holds the text-screening provider settings
type AIConfig struct {
	Provider  string `json:"provider"` // gemini | openai | anthropic | mock | none
	APIKey    string `json:"-"`        // Never serialize
	Model     string `json:"model"`
	BaseURL   string `json:"baseUrl,omitempty"`
	TimeoutMS int    `json:"timeoutMs"`
}

func setAIDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.timeout_ms", 8000)

	_ = v.BindEnv("ai.gemini_api_key", "RISKWATCH_AI_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("ai.openai_api_key", "RISKWATCH_AI_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("ai.anthropic_api_key", "RISKWATCH_AI_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
}

func loadAIConfig(v *viper.Viper) *AIConfig {
	c := &AIConfig{
		Provider:  strings.ToLower(v.GetString("ai.provider")),
		Model:     v.GetString("ai.model"),
		BaseURL:   v.GetString("ai.base_url"),
		TimeoutMS: v.GetInt("ai.timeout_ms"),
	}
	switch c.Provider {
	case "gemini":
		c.APIKey = v.GetString("ai.gemini_api_key")
	case "openai":
		c.APIKey = v.GetString("ai.openai_api_key")
	case "anthropic":
		c.APIKey = v.GetString("ai.anthropic_api_key")
	}
	return c
}

// IsEnabled returns true if an external provider can be called. A provider
// without a key runs on the keyword fallback.
func (c *AIConfig) IsEnabled() bool {
	switch c.Provider {
	case "mock":
		return true
	case "", "none":
		return false
	}
	return c.APIKey != ""
}

// Timeout is the bound on a single screening call
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Validate rejects unknown providers and non-positive timeouts
func (c *AIConfig) Validate() error {
	switch c.Provider {
	case "", "none", "mock", "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("%w: ai.provider %q", ErrInvalid, c.Provider)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("%w: ai.timeout_ms must be positive", ErrInvalid)
	}
	return nil
}
