package llm

import "context"

// Provider defines the interface for completion providers backing the
// LLM-driven agents. A nil Provider means LLM analysis is disabled and the
// agents fall back to mock mode.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a completion for the given request
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for a completion call.
type CompletionRequest struct {
	// System sets the system instruction (may be empty)
	System string

	// Prompt is the user prompt
	Prompt string

	// Model is the specific model to use (provider-specific; empty = default)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling; agents use low values for structured output
	Temperature float32
}

// CompletionResponse contains the provider's output.
type CompletionResponse struct {
	// Text is the generated completion
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption when the provider reports it
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "ollama", "cohere", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, API-compatible gateways)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1000,
	}
}
