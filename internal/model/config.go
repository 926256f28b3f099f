package model

import "time"

// Config is the explicit configuration value passed to the orchestrator and
// adapters at construction time. No component reads the environment on its
// own; the CLI and API layers build a Config and hand it down.
type Config struct {
	Agents  AgentsConfig  `yaml:"agents"`
	LLM     LLMConfig     `yaml:"llm"`
	Search  SearchConfig  `yaml:"search"`
	HTTP    HTTPConfig    `yaml:"http"`
	Server  ServerConfig  `yaml:"server"`
	Output  OutputConfig  `yaml:"output"`
	Workers WorkersConfig `yaml:"workers"`
}

// AgentsConfig holds per-agent timeouts, aggregation weights, and the
// ContextNet selection policy knobs.
type AgentsConfig struct {
	Timeout time.Duration `yaml:"timeout"` // Per-adapter invocation deadline

	// Aggregation weights. Failed outcomes contribute no weight; the
	// weighted average is renormalized over resolved agents.
	Weights map[AgentName]float64 `yaml:"weights"`

	// ContextNet selection policy: a claim is context-worthy when its text
	// reaches MinContextLength runes or contains one of the trigger terms.
	MinContextLength int      `yaml:"min_context_length"`
	BiasTriggerTerms []string `yaml:"bias_trigger_terms"`

	// ValidateEvidence enables accessibility checks on Proof evidence URLs.
	ValidateEvidence bool `yaml:"validate_evidence"`
}

// LLMConfig configures the completion provider shared by the LLM-backed
// agents.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, ollama, cohere, "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // Never serialized
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// SearchConfig configures the Serper web-search client.
type SearchConfig struct {
	APIKey      string        `yaml:"-"` // Never serialized
	BaseURL     string        `yaml:"base_url"`
	ResultCount int           `yaml:"result_count"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	RatePerSec  float64       `yaml:"rate_per_sec"`
	RateBurst   int           `yaml:"rate_burst"`
}

// HTTPConfig holds outbound HTTP behavior shared by clients.
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	HTTPProxy  string        `yaml:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
	Styled        bool `yaml:"styled"` // Persona-styled summaries
}

// WorkersConfig controls batch processing concurrency.
type WorkersConfig struct {
	BatchWorkers      int `yaml:"batch_workers"`
	ValidationWorkers int `yaml:"validation_workers"`
}

// DefaultConfig returns sensible defaults. Clarity carries the largest
// aggregation weight since decomposition quality gates everything downstream;
// the remaining share splits proof 0.3, contextnet 0.15, mediascan 0.15.
func DefaultConfig() *Config {
	return &Config{
		Agents: AgentsConfig{
			Timeout: 30 * time.Second,
			Weights: map[AgentName]float64{
				AgentClarity:    0.4,
				AgentProof:      0.3,
				AgentContextNet: 0.15,
				AgentMediaScan:  0.15,
			},
			MinContextLength: 80,
			BiasTriggerTerms: []string{
				"government", "policy", "election", "conspiracy",
				"mainstream media", "radical", "regime", "propaganda",
				"woke", "deep state",
			},
			ValidateEvidence: false,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Search: SearchConfig{
			BaseURL:     "https://google.serper.dev",
			ResultCount: 3,
			CacheTTL:    15 * time.Minute,
			RatePerSec:  2,
			RateBurst:   5,
		},
		HTTP: HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "RealityPatch/0.1 (+https://github.com/realitypatch/realitypatch)",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
		Workers: WorkersConfig{
			BatchWorkers:      4,
			ValidationWorkers: 10,
		},
	}
}
