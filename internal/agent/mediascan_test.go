package agent

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/realitypatch/realitypatch/internal/model"
)

// writeTestImage writes a small PNG with varied pixels to a temp file.
func writeTestImage(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y * 3), B: uint8(x + y), A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	return path
}

func TestMediaScanAgent_NoMedia(t *testing.T) {
	a := NewMediaScanAgent(nil)

	out := a.Analyze(context.Background(), model.NewClaim("claim", ""))

	if out.Status != model.StatusFailed {
		t.Fatalf("Expected failed without media, got %s", out.Status)
	}
	if !strings.Contains(out.Reason, "no media") {
		t.Errorf("Unexpected reason: %q", out.Reason)
	}
}

func TestMediaScanAgent_UnreadableFile(t *testing.T) {
	a := NewMediaScanAgent(nil)

	out := a.Analyze(context.Background(), model.NewClaim("claim", "/nonexistent/photo.jpg"))

	if out.Status != model.StatusFailed {
		t.Fatalf("Expected failed for unreadable media, got %s", out.Status)
	}
}

func TestMediaScanAgent_MockMode(t *testing.T) {
	path := writeTestImage(t)
	a := NewMediaScanAgent(nil)

	out := a.Analyze(context.Background(), model.NewClaim("Photo shows the event", path))

	if out.Status != model.StatusDegraded {
		t.Fatalf("Expected degraded status, got %s (%s)", out.Status, out.Reason)
	}
	if out.Reason != model.ReasonMockMode {
		t.Errorf("Expected mock_mode reason, got %q", out.Reason)
	}
	if out.Media == nil {
		t.Fatal("Expected a heuristic media verdict")
	}
	if out.Media.AuthenticityScore <= 0 || out.Media.AuthenticityScore > 1 {
		t.Errorf("Authenticity score out of range: %v", out.Media.AuthenticityScore)
	}
	if out.Media.Reasoning == "" {
		t.Error("Expected heuristic reasoning text")
	}
}

func TestMediaScanAgent_Success(t *testing.T) {
	path := writeTestImage(t)
	provider := &stubProvider{text: `{
  "authenticity_score": 0.85,
  "matched_sources": ["https://example.com/original"],
  "reasoning": "Properties consistent with an unedited capture.",
  "confidence": 0.7
}`}
	a := NewMediaScanAgent(provider)

	out := a.Analyze(context.Background(), model.NewClaim("Photo shows the event", path))

	if out.Status != model.StatusSuccess {
		t.Fatalf("Expected success, got %s (%s)", out.Status, out.Reason)
	}
	if out.Confidence != 0.7 {
		t.Errorf("Unexpected confidence: %v", out.Confidence)
	}
	if out.Media == nil || out.Media.AuthenticityScore != 0.85 {
		t.Errorf("Unexpected verdict: %+v", out.Media)
	}
	if len(out.Media.MatchedSources) != 1 {
		t.Errorf("Unexpected matched sources: %v", out.Media.MatchedSources)
	}
}

func TestMediaScanAgent_MalformedResponseFallsBackToHeuristic(t *testing.T) {
	path := writeTestImage(t)
	a := NewMediaScanAgent(&stubProvider{text: "not json at all"})

	out := a.Analyze(context.Background(), model.NewClaim("claim", path))

	if out.Status != model.StatusDegraded {
		t.Fatalf("Expected degraded for malformed response, got %s", out.Status)
	}
	if out.Media == nil {
		t.Error("Expected the heuristic verdict to be attached")
	}
}
