package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/realitypatch/realitypatch/internal/util"
)

// CohereProvider implements the Provider interface for Cohere models.
type CohereProvider struct {
	client *cohereclient.Client
	config Config
}

// NewCohereProvider creates a new Cohere provider.
func NewCohereProvider(config Config) (*CohereProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Cohere API key is required")
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	client := cohereclient.NewClient(
		cohereclient.WithToken(config.APIKey),
		cohereclient.WithHTTPClient(httpClient),
	)

	return &CohereProvider{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *CohereProvider) Name() string {
	return "cohere"
}

// IsAvailable checks if the API key is valid.
func (p *CohereProvider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.CheckApiKey(ctx)
	if err != nil {
		return false
	}
	return resp != nil
}

// Complete generates a completion using Cohere's Chat API.
func (p *CohereProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = "command-r"
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	temperature := float64(req.Temperature)

	chatReq := &cohere.ChatRequest{
		Message:     req.Prompt,
		Model:       &model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	}
	if req.System != "" {
		chatReq.Preamble = &req.System
	}

	resp, err := p.client.Chat(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("Cohere API error: %w", err)
	}

	return &CompletionResponse{
		Text:  strings.TrimSpace(resp.Text),
		Model: model,
	}, nil
}
