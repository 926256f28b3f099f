package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/realitypatch/realitypatch/internal/llm"
	"github.com/realitypatch/realitypatch/internal/media"
	"github.com/realitypatch/realitypatch/internal/model"
)

// MediaScanAgent judges the authenticity of an attached media file. Local
// inspection always runs; the LLM provider adds reasoning on top. Without
// a provider the verdict is the inspection heuristic alone, degraded.
type MediaScanAgent struct {
	provider llm.Provider // nil = mock mode
}

// NewMediaScanAgent creates a media scan agent. provider may be nil.
func NewMediaScanAgent(provider llm.Provider) *MediaScanAgent {
	return &MediaScanAgent{provider: provider}
}

// Name returns the agent identifier.
func (a *MediaScanAgent) Name() model.AgentName {
	return model.AgentMediaScan
}

const mediaSystem = "You assess whether an image is likely authentic based on its technical properties. Respond with strict JSON only, no prose."

const mediaPromptTemplate = `Assess the authenticity of an image attached to this claim, using its
technical properties below. You cannot see the pixels; reason from the
properties and anomalies only.

Claim: %s

Image properties:
%s

Respond with exactly this JSON shape:
{
  "authenticity_score": 0.0,
  "matched_sources": [],
  "reasoning": "explanation of the assessment",
  "confidence": 0.0
}
authenticity_score in [0,1], 1 = likely authentic. confidence in [0,1].`

// mediaAnalysis is the LLM's structured answer.
type mediaAnalysis struct {
	AuthenticityScore float64  `json:"authenticity_score"`
	MatchedSources    []string `json:"matched_sources"`
	Reasoning         string   `json:"reasoning"`
	Confidence        float64  `json:"confidence"`
}

// Analyze inspects the media file and, when a provider is configured,
// asks it to reason about authenticity.
func (a *MediaScanAgent) Analyze(ctx context.Context, claim model.Claim) model.AgentOutcome {
	if !claim.HasMedia() {
		return failed(model.AgentMediaScan, "no media attached")
	}

	props, err := media.Inspect(claim.MediaPath)
	if err != nil {
		return failed(model.AgentMediaScan, fmt.Sprintf("inspect media: %v", err))
	}

	if a.provider == nil {
		verdict := heuristicVerdict(props)
		outcome := degraded(model.AgentMediaScan, 0.3, model.ReasonMockMode)
		outcome.Media = verdict
		return outcome
	}

	propsJSON, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return failed(model.AgentMediaScan, fmt.Sprintf("encode properties: %v", err))
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		System:      mediaSystem,
		Prompt:      fmt.Sprintf(mediaPromptTemplate, claim.Text, propsJSON),
		Temperature: 0.2,
	})
	if err != nil {
		return failed(model.AgentMediaScan, fmt.Sprintf("media analysis: %v", err))
	}

	raw := extractJSON(resp.Text)
	if raw == "" {
		// Fall back to the inspection heuristic rather than dropping the scan
		verdict := heuristicVerdict(props)
		verdict.Reasoning = strings.TrimSpace(resp.Text)
		outcome := degraded(model.AgentMediaScan, 0.3, "malformed response: no JSON object found")
		outcome.Media = verdict
		return outcome
	}

	var analysis mediaAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		verdict := heuristicVerdict(props)
		outcome := degraded(model.AgentMediaScan, 0.3, fmt.Sprintf("malformed response: %v", err))
		outcome.Media = verdict
		return outcome
	}

	outcome := success(model.AgentMediaScan, analysis.Confidence)
	outcome.Media = &model.MediaVerdict{
		AuthenticityScore: clamp01(analysis.AuthenticityScore),
		MatchedSources:    analysis.MatchedSources,
		Reasoning:         analysis.Reasoning,
	}
	return outcome
}

// heuristicVerdict scores authenticity from inspection alone: 0.7 base,
// minus 0.1 per detected anomaly, floored at 0.1.
func heuristicVerdict(props *media.Properties) *model.MediaVerdict {
	score := 0.7 - 0.1*float64(len(props.Anomalies))
	if score < 0.1 {
		score = 0.1
	}

	reasoning := fmt.Sprintf("Heuristic assessment from local inspection: %dx%d %s, brightness %.0f, contrast %.0f.",
		props.Width, props.Height, props.Format, props.Brightness, props.Contrast)
	if len(props.Anomalies) > 0 {
		reasoning += " Anomalies: " + strings.Join(props.Anomalies, "; ") + "."
	}

	return &model.MediaVerdict{
		AuthenticityScore: score,
		Reasoning:         reasoning,
	}
}
