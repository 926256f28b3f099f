package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/realitypatch/realitypatch/internal/model"
)

// Flag values shared by check, batch, and serve.
var (
	agentTimeout  time.Duration
	llmProvider   string
	llmModel      string
	validateLinks bool
)

// buildConfig assembles the explicit configuration value from defaults,
// flags, and environment. Everything downstream receives this value; no
// component reads the environment on its own.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if agentTimeout > 0 {
		cfg.Agents.Timeout = agentTimeout
	}
	cfg.Agents.ValidateEvidence = validateLinks
	cfg.Output.Verbose = verbose

	cfg.Search.APIKey = os.Getenv("SERPER_API_KEY")

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "cohere":
		cfg.LLM.APIKey = os.Getenv("COHERE_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("COHERE_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	case "":
		// LLM disabled: the LLM-backed agents run in mock mode
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama, cohere)", llmProvider)
	}

	return cfg, nil
}
