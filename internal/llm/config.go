package llm

// Config selects and configures one provider
type Config struct {
	// Provider is one of "gemini", "openai", "anthropic", "mock" or "none"
	Provider string
	APIKey   string
	Model    string
	BaseURL  string // optional, OpenAI-compatible endpoints only
}

// resolveModel maps a friendly model name to a provider model ID
func resolveModel(name string, models map[string]string, fallback string) string {
	if name == "" {
		return fallback
	}
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
