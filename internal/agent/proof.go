package agent

import (
	"context"
	"fmt"

	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/search"
	"github.com/realitypatch/realitypatch/internal/validate"
)

// ProofAgent gathers external evidence for a claim through web search.
// With no search key configured it serves the deterministic mock tables,
// tagged as a degraded mock-mode outcome.
type ProofAgent struct {
	client    search.Client
	mock      search.Client
	validator *validate.Validator // nil = link validation disabled
}

// NewProofAgent creates a proof agent. validator may be nil.
func NewProofAgent(client search.Client, validator *validate.Validator) *ProofAgent {
	return &ProofAgent{
		client:    client,
		mock:      search.NewMockClient(),
		validator: validator,
	}
}

// Name returns the agent identifier.
func (a *ProofAgent) Name() model.AgentName {
	return model.AgentProof
}

// Outcome confidence mirrors the upstream constants: 0.75 when usable
// evidence was found, 0.0 otherwise. Per-item confidence decays with rank.
const (
	evidenceFoundConfidence = 0.75
	mockModeDiscount        = 0.8
)

// Analyze searches for evidence supporting or refuting the claim.
func (a *ProofAgent) Analyze(ctx context.Context, claim model.Claim) model.AgentOutcome {
	query := "Fact check: " + claim.Text

	if a.client == nil || !a.client.Available() {
		results, err := a.mock.Search(ctx, query)
		if err != nil {
			return failed(model.AgentProof, fmt.Sprintf("mock search: %v", err))
		}
		evidence := toEvidence(results)
		outcome := degraded(model.AgentProof, evidenceConfidence(evidence)*mockModeDiscount, model.ReasonMockMode)
		outcome.Evidence = evidence
		return outcome
	}

	results, err := a.client.Search(ctx, query)
	if err != nil {
		return failed(model.AgentProof, fmt.Sprintf("evidence search: %v", err))
	}

	evidence := toEvidence(results)
	outcome := success(model.AgentProof, evidenceConfidence(evidence))
	outcome.Evidence = evidence

	if a.validator != nil && len(evidence) > 0 {
		outcome.LinkChecks = a.validator.CheckLinks(ctx, evidence)
	}

	return outcome
}

// toEvidence maps search hits to evidence items, preserving relevance
// order. Per-item confidence starts at 0.75 and drops 0.1 per rank,
// floored at 0.3; items without a URL score 0.
func toEvidence(results []search.Result) []model.EvidenceItem {
	evidence := make([]model.EvidenceItem, 0, len(results))
	for i, r := range results {
		confidence := 0.75 - 0.1*float64(i)
		if confidence < 0.3 {
			confidence = 0.3
		}
		if r.URL == "" {
			confidence = 0
		}
		evidence = append(evidence, model.EvidenceItem{
			Title:      r.Title,
			Snippet:    r.Snippet,
			SourceURL:  r.URL,
			Source:     r.Source,
			Confidence: confidence,
		})
	}
	return evidence
}

// evidenceConfidence is the outcome-level confidence: 0.75 when at least
// one item carries a real URL, else 0.
func evidenceConfidence(evidence []model.EvidenceItem) float64 {
	for _, e := range evidence {
		if e.SourceURL != "" {
			return evidenceFoundConfidence
		}
	}
	return 0
}
