package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/realitypatch/realitypatch/internal/llm"
	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/search"
)

// ContextNetAgent surrounds a claim with background and bias context. It
// needs both the search client and the LLM provider; with either missing
// it serves a mock-mode context built from canned search results.
type ContextNetAgent struct {
	provider llm.Provider  // nil = mock mode
	client   search.Client // unavailable = mock mode
	mock     search.Client
}

// NewContextNetAgent creates a context agent.
func NewContextNetAgent(provider llm.Provider, client search.Client) *ContextNetAgent {
	return &ContextNetAgent{
		provider: provider,
		client:   client,
		mock:     search.NewMockClient(),
	}
}

// Name returns the agent identifier.
func (a *ContextNetAgent) Name() model.AgentName {
	return model.AgentContextNet
}

const contextSystem = "You analyze claims for background context and bias. Respond with strict JSON only, no prose."

const contextPromptTemplate = `Analyze this claim and the related articles for context and bias.

Claim: %s

Related articles:
%s

Respond with exactly this JSON shape:
{
  "background": "neutral factual background summary",
  "bias_indicators": ["list of detected bias signals"],
  "controversial": false,
  "confidence": 0.0
}
Confidence in [0,1] reflects clarity and agreement among the sources.`

// contextAnalysis is the LLM's structured answer.
type contextAnalysis struct {
	Background     string   `json:"background"`
	BiasIndicators []string `json:"bias_indicators"`
	Controversial  bool     `json:"controversial"`
	Confidence     float64  `json:"confidence"`
}

// Analyze gathers related content and asks the provider for a context
// report. Outcome confidence is the LLM-reported bias confidence, clamped
// to [0,1].
func (a *ContextNetAgent) Analyze(ctx context.Context, claim model.Claim) model.AgentOutcome {
	if a.provider == nil || a.client == nil || !a.client.Available() {
		return a.mockOutcome(ctx, claim)
	}

	results, err := a.client.Search(ctx, claim.Text)
	if err != nil {
		return failed(model.AgentContextNet, fmt.Sprintf("context search: %v", err))
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System:      contextSystem,
		Prompt:      fmt.Sprintf(contextPromptTemplate, claim.Text, formatArticles(results)),
		Temperature: 0.2,
	})
	if err != nil {
		return failed(model.AgentContextNet, fmt.Sprintf("context analysis: %v", err))
	}

	raw := extractJSON(resp.Text)
	if raw == "" {
		return failed(model.AgentContextNet, "malformed response: no JSON object found")
	}

	var analysis contextAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		// Keep the raw text as a partial background rather than dropping it
		outcome := degraded(model.AgentContextNet, 0.3, fmt.Sprintf("malformed response: %v", err))
		outcome.Context = &model.ContextReport{
			Background: strings.TrimSpace(resp.Text),
			Sources:    sourceURLs(results),
		}
		return outcome
	}

	outcome := success(model.AgentContextNet, analysis.Confidence)
	outcome.Context = &model.ContextReport{
		Background:     analysis.Background,
		BiasIndicators: analysis.BiasIndicators,
		Controversial:  analysis.Controversial,
		Sources:        sourceURLs(results),
	}
	return outcome
}

// mockOutcome builds the degraded context from canned search results.
func (a *ContextNetAgent) mockOutcome(ctx context.Context, claim model.Claim) model.AgentOutcome {
	results, err := a.mock.Search(ctx, claim.Text)
	if err != nil {
		return failed(model.AgentContextNet, fmt.Sprintf("mock search: %v", err))
	}

	var background strings.Builder
	for _, r := range results {
		if r.Snippet != "" {
			if background.Len() > 0 {
				background.WriteString(" ")
			}
			background.WriteString(r.Snippet)
		}
	}

	outcome := degraded(model.AgentContextNet, 0.2, model.ReasonMockMode)
	outcome.Context = &model.ContextReport{
		Background: background.String(),
		Sources:    sourceURLs(results),
	}
	return outcome
}

func formatArticles(results []search.Result) string {
	if len(results) == 0 {
		return "(no related articles found)"
	}
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "Title: %s\nSnippet: %s\nSource: %s\n\n", r.Title, r.Snippet, r.Source)
	}
	return sb.String()
}

func sourceURLs(results []search.Result) []string {
	var urls []string
	for _, r := range results {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls
}
