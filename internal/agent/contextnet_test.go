package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/search"
)

func TestContextNetAgent_MockMode_NoProvider(t *testing.T) {
	a := NewContextNetAgent(nil, &stubSearch{available: true})

	out := a.Analyze(context.Background(), model.NewClaim("India border tensions escalate", ""))

	if out.Status != model.StatusDegraded {
		t.Fatalf("Expected degraded status, got %s", out.Status)
	}
	if out.Reason != model.ReasonMockMode {
		t.Errorf("Expected mock_mode reason, got %q", out.Reason)
	}
	if out.Context == nil || out.Context.Background == "" {
		t.Error("Expected mock context with a background built from canned snippets")
	}
}

func TestContextNetAgent_MockMode_UnavailableSearch(t *testing.T) {
	provider := &stubProvider{text: "{}"}
	a := NewContextNetAgent(provider, &stubSearch{available: false})

	out := a.Analyze(context.Background(), model.NewClaim("claim", ""))

	if out.Status != model.StatusDegraded || out.Reason != model.ReasonMockMode {
		t.Fatalf("Expected mock-mode fallback, got %s (%s)", out.Status, out.Reason)
	}
}

func TestContextNetAgent_Success(t *testing.T) {
	provider := &stubProvider{text: `{
  "background": "Border incidents have a long documented history in the region.",
  "bias_indicators": ["loaded language"],
  "controversial": true,
  "confidence": 0.65
}`}
	client := &stubSearch{
		available: true,
		results: []search.Result{
			{Title: "Report", Snippet: "Context.", URL: "https://example.com/ctx"},
		},
	}
	a := NewContextNetAgent(provider, client)

	out := a.Analyze(context.Background(), model.NewClaim("The regime is collapsing", ""))

	if out.Status != model.StatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", out.Status, out.Reason)
	}
	if out.Confidence != 0.65 {
		t.Errorf("Expected LLM-reported confidence, got %v", out.Confidence)
	}
	if out.Context == nil {
		t.Fatal("Expected a context payload")
	}
	if !out.Context.Controversial {
		t.Error("Expected controversial flag to pass through")
	}
	if len(out.Context.BiasIndicators) != 1 {
		t.Errorf("Unexpected bias indicators: %v", out.Context.BiasIndicators)
	}
	if len(out.Context.Sources) != 1 || out.Context.Sources[0] != "https://example.com/ctx" {
		t.Errorf("Unexpected sources: %v", out.Context.Sources)
	}
}

func TestContextNetAgent_MalformedResponseKeepsRawText(t *testing.T) {
	provider := &stubProvider{text: `{"background": not valid json`}
	a := NewContextNetAgent(provider, &stubSearch{available: true})

	out := a.Analyze(context.Background(), model.NewClaim("claim", ""))

	if out.Status != model.StatusDegraded {
		t.Fatalf("Expected degraded for malformed JSON, got %s", out.Status)
	}
	if out.Context == nil || !strings.Contains(out.Context.Background, "background") {
		t.Error("Expected the raw response preserved as partial background")
	}
}

func TestContextNetAgent_NonJSONResponse(t *testing.T) {
	provider := &stubProvider{text: "Sorry, I can only answer in prose."}
	a := NewContextNetAgent(provider, &stubSearch{available: true})

	out := a.Analyze(context.Background(), model.NewClaim("claim", ""))

	if out.Status != model.StatusFailed {
		t.Fatalf("Expected failed for a response with no JSON, got %s", out.Status)
	}
}
