// Package agent implements the four analysis adapters. Each adapter wraps
// one external AI or search dependency under a uniform outcome contract:
// every invocation resolves to a success, degraded, or failed outcome, and
// no error condition escapes the adapter boundary.
package agent

import (
	"context"
	"strings"

	"github.com/realitypatch/realitypatch/internal/model"
)

// Agent is the shared adapter contract. Analyze never panics and never
// returns a Go error; all failure modes are expressed in the outcome.
type Agent interface {
	// Name returns the agent identifier used as the report key
	Name() model.AgentName

	// Analyze runs the agent against the claim
	Analyze(ctx context.Context, claim model.Claim) model.AgentOutcome
}

// success builds a success outcome shell; the caller attaches the payload.
func success(name model.AgentName, confidence float64) model.AgentOutcome {
	return model.AgentOutcome{
		Agent:      name,
		Status:     model.StatusSuccess,
		Confidence: clamp01(confidence),
	}
}

// degraded builds a degraded outcome shell with the given reason.
func degraded(name model.AgentName, confidence float64, reason string) model.AgentOutcome {
	return model.AgentOutcome{
		Agent:      name,
		Status:     model.StatusDegraded,
		Confidence: clamp01(confidence),
		Reason:     reason,
	}
}

// failed builds a failed outcome. Failed outcomes carry no payload and
// zero confidence.
func failed(name model.AgentName, reason string) model.AgentOutcome {
	return model.AgentOutcome{
		Agent:  name,
		Status: model.StatusFailed,
		Reason: reason,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// extractJSON pulls the outermost JSON object out of an LLM response,
// tolerating prose or code fences around it. Returns "" when no object
// is present.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
