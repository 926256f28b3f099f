package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/realitypatch/realitypatch/internal/model"
	"github.com/realitypatch/realitypatch/internal/search"
)

// stubSearch returns fixed results or an error.
type stubSearch struct {
	results   []search.Result
	err       error
	available bool
	lastQuery string
}

func (s *stubSearch) Available() bool { return s.available }

func (s *stubSearch) Search(_ context.Context, query string) ([]search.Result, error) {
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func TestProofAgent_MockMode_KnownTopic(t *testing.T) {
	a := NewProofAgent(nil, nil)

	out := a.Analyze(context.Background(), model.NewClaim("The Earth is flat", ""))

	if out.Status != model.StatusDegraded {
		t.Fatalf("Expected degraded status, got %s", out.Status)
	}
	if out.Reason != model.ReasonMockMode {
		t.Errorf("Expected mock_mode reason, got %q", out.Reason)
	}
	if len(out.Evidence) != 2 {
		t.Fatalf("Expected 2 canned evidence items, got %d", len(out.Evidence))
	}
	if out.Evidence[0].Source != "NASA" {
		t.Errorf("Unexpected first source: %s", out.Evidence[0].Source)
	}
	// 0.75 found-evidence confidence, discounted for mock mode
	if out.Confidence < 0.59 || out.Confidence > 0.61 {
		t.Errorf("Unexpected mock confidence: %v", out.Confidence)
	}
}

func TestProofAgent_MockMode_UnknownTopic(t *testing.T) {
	a := NewProofAgent(nil, nil)

	out := a.Analyze(context.Background(), model.NewClaim("Quantum bananas cure everything", ""))

	if out.Status != model.StatusDegraded {
		t.Fatalf("Expected degraded status, got %s", out.Status)
	}
	if out.Confidence != 0 {
		t.Errorf("Expected zero confidence without usable evidence, got %v", out.Confidence)
	}
	if len(out.Evidence) != 1 || out.Evidence[0].SourceURL != "" {
		t.Errorf("Expected the single insufficient-evidence item, got %+v", out.Evidence)
	}
}

func TestProofAgent_UnavailableClientFallsBackToMock(t *testing.T) {
	a := NewProofAgent(&stubSearch{available: false}, nil)

	out := a.Analyze(context.Background(), model.NewClaim("The moon landing happened", ""))

	if out.Status != model.StatusDegraded || out.Reason != model.ReasonMockMode {
		t.Fatalf("Expected mock-mode fallback, got %s (%s)", out.Status, out.Reason)
	}
}

func TestProofAgent_Success(t *testing.T) {
	client := &stubSearch{
		available: true,
		results: []search.Result{
			{Title: "Fact Check", Snippet: "Verified.", URL: "https://example.com/1"},
			{Title: "Analysis", Snippet: "Corroborated.", URL: "https://example.com/2"},
			{Title: "Unlinked", Snippet: "No URL."},
		},
	}
	a := NewProofAgent(client, nil)

	out := a.Analyze(context.Background(), model.NewClaim("Vaccines cause autism", ""))

	if out.Status != model.StatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", out.Status, out.Reason)
	}
	if !strings.HasPrefix(client.lastQuery, "Fact check: ") {
		t.Errorf("Unexpected query: %q", client.lastQuery)
	}
	if out.Confidence != 0.75 {
		t.Errorf("Expected 0.75 confidence with evidence, got %v", out.Confidence)
	}

	if len(out.Evidence) != 3 {
		t.Fatalf("Expected 3 evidence items, got %d", len(out.Evidence))
	}
	// Per-item confidence decays with rank; URL-less items score zero
	if out.Evidence[0].Confidence != 0.75 {
		t.Errorf("Rank 0 confidence: %v", out.Evidence[0].Confidence)
	}
	if out.Evidence[1].Confidence != 0.65 {
		t.Errorf("Rank 1 confidence: %v", out.Evidence[1].Confidence)
	}
	if out.Evidence[2].Confidence != 0 {
		t.Errorf("URL-less item confidence: %v", out.Evidence[2].Confidence)
	}
}

func TestProofAgent_SearchError(t *testing.T) {
	a := NewProofAgent(&stubSearch{available: true, err: errors.New("quota exceeded")}, nil)

	out := a.Analyze(context.Background(), model.NewClaim("claim", ""))

	if out.Status != model.StatusFailed {
		t.Fatalf("Expected failed, got %s", out.Status)
	}
	if !strings.Contains(out.Reason, "quota exceeded") {
		t.Errorf("Expected reason to carry the error, got %q", out.Reason)
	}
	if out.Evidence != nil {
		t.Error("Failed outcome must carry no payload")
	}
}

func TestProofAgent_NoResults(t *testing.T) {
	a := NewProofAgent(&stubSearch{available: true}, nil)

	out := a.Analyze(context.Background(), model.NewClaim("claim", ""))

	if out.Status != model.StatusSuccess {
		t.Fatalf("Expected success with empty evidence, got %s", out.Status)
	}
	if out.Confidence != 0 {
		t.Errorf("Expected zero confidence without evidence, got %v", out.Confidence)
	}
}

func TestToEvidence_RankFloor(t *testing.T) {
	results := make([]search.Result, 8)
	for i := range results {
		results[i] = search.Result{Title: "t", URL: "https://example.com"}
	}

	evidence := toEvidence(results)
	last := evidence[len(evidence)-1]
	if last.Confidence != 0.3 {
		t.Errorf("Expected rank confidence floored at 0.3, got %v", last.Confidence)
	}
}
