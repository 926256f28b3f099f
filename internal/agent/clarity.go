package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/realitypatch/realitypatch/internal/llm"
	"github.com/realitypatch/realitypatch/internal/model"
)

// ClarityAgent decomposes a claim into its structural parts using the
// configured LLM provider. Without a provider it degrades to a rule-based
// decomposition so downstream aggregation still renders.
type ClarityAgent struct {
	provider llm.Provider // nil = mock mode
}

// NewClarityAgent creates a clarity agent. provider may be nil.
func NewClarityAgent(provider llm.Provider) *ClarityAgent {
	return &ClarityAgent{provider: provider}
}

// Name returns the agent identifier.
func (a *ClarityAgent) Name() model.AgentName {
	return model.AgentClarity
}

const claritySystem = "You decompose factual claims into structured parts. Respond with strict JSON only, no prose."

const clarityPromptTemplate = `Decompose this claim into its structural parts. For each part give the
extracted value (empty string if absent) and your confidence in [0,1].

Claim: %s

Respond with exactly this JSON shape:
{
  "subject": {"value": "", "confidence": 0},
  "predicate": {"value": "", "confidence": 0},
  "object": {"value": "", "confidence": 0},
  "quantifier": {"value": "", "confidence": 0},
  "time_reference": {"value": "", "confidence": 0},
  "location": {"value": "", "confidence": 0},
  "source": {"value": "", "confidence": 0}
}`

// Analyze decomposes the claim. Outcome confidence is structure-derived:
// 0.5 base plus 0.3 times the decomposition's specificity, so a fully
// formed decomposition scores 0.8. Mock-mode results score half that.
func (a *ClarityAgent) Analyze(ctx context.Context, claim model.Claim) model.AgentOutcome {
	if a.provider == nil {
		decomp := heuristicDecompose(claim.Text)
		outcome := degraded(model.AgentClarity, clarityConfidence(decomp)/2, model.ReasonMockMode)
		outcome.Decomposition = &decomp
		return outcome
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System:      claritySystem,
		Prompt:      fmt.Sprintf(clarityPromptTemplate, claim.Text),
		Temperature: 0.1,
	})
	if err != nil {
		return failed(model.AgentClarity, fmt.Sprintf("clarity analysis: %v", err))
	}

	raw := extractJSON(resp.Text)
	if raw == "" {
		return failed(model.AgentClarity, "malformed response: no JSON object found")
	}

	var decomp model.Decomposition
	if err := json.Unmarshal([]byte(raw), &decomp); err != nil {
		// Partial extraction failed entirely
		return failed(model.AgentClarity, fmt.Sprintf("malformed response: %v", err))
	}

	if decomp.Specificity() == 0 {
		// Parsed but empty: treat as a degraded partial result
		outcome := degraded(model.AgentClarity, 0.1, "decomposition produced no fields")
		outcome.Decomposition = &decomp
		return outcome
	}

	outcome := success(model.AgentClarity, clarityConfidence(decomp))
	outcome.Decomposition = &decomp
	return outcome
}

// clarityConfidence derives outcome confidence from structure: well-formed
// decompositions (subject, predicate, object present) score higher.
func clarityConfidence(d model.Decomposition) float64 {
	return clamp01(0.5 + 0.3*d.Specificity())
}

var (
	copulaPattern     = regexp.MustCompile(`(?i)\b(is|are|was|were|will be|has|have|had|broke|caused|increased|decreased|confirmed|denied)\b`)
	quantifierPattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*(%|percent|million|billion|thousand)?\b`)
	yearPattern       = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
)

// heuristicDecompose is the mock-mode fallback: split the claim around the
// first copula/action verb. Each extracted field gets a flat 0.3
// confidence to mark its heuristic origin.
func heuristicDecompose(text string) model.Decomposition {
	text = strings.TrimSpace(text)
	var d model.Decomposition
	if text == "" {
		return d
	}

	const heuristicFieldConfidence = 0.3

	loc := copulaPattern.FindStringIndex(text)
	if loc != nil {
		subject := strings.TrimSpace(text[:loc[0]])
		predicate := strings.TrimSpace(text[loc[0]:loc[1]])
		object := strings.TrimSpace(strings.TrimSuffix(text[loc[1]:], "."))
		if subject != "" {
			d.Subject = model.Field{Value: subject, Confidence: heuristicFieldConfidence}
		}
		d.Predicate = model.Field{Value: predicate, Confidence: heuristicFieldConfidence}
		if object != "" {
			d.Object = model.Field{Value: object, Confidence: heuristicFieldConfidence}
		}
	} else {
		d.Subject = model.Field{Value: strings.TrimSuffix(text, "."), Confidence: heuristicFieldConfidence}
	}

	if m := quantifierPattern.FindString(text); m != "" && strings.TrimSpace(m) != "" {
		d.Quantifier = model.Field{Value: strings.TrimSpace(m), Confidence: heuristicFieldConfidence}
	}
	if m := yearPattern.FindString(text); m != "" {
		d.TimeReference = model.Field{Value: m, Confidence: heuristicFieldConfidence}
	}

	return d
}
