package media

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, width, height int, pixel func(x, y int) color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, pixel(x, y))
		}
	}

	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func varied(x, y int) color.Color {
	return color.RGBA{R: uint8(x * 7 % 256), G: uint8(y * 11 % 256), B: uint8((x + y) % 256), A: 255}
}

func TestInspect_BasicProperties(t *testing.T) {
	path := writeImage(t, 200, 100, varied)

	props, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if props.Format != "png" {
		t.Errorf("Expected png format, got %s", props.Format)
	}
	if props.Width != 200 || props.Height != 100 {
		t.Errorf("Unexpected dimensions: %dx%d", props.Width, props.Height)
	}
	if props.AspectRatio != 2.0 {
		t.Errorf("Expected aspect ratio 2.0, got %v", props.AspectRatio)
	}
	if props.FileSize <= 0 {
		t.Error("Expected positive file size")
	}
	if props.IsStandardResolution {
		t.Error("200x100 is not a standard resolution")
	}
}

func TestInspect_StandardResolution(t *testing.T) {
	path := writeImage(t, 800, 600, varied)

	props, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !props.IsStandardResolution {
		t.Error("Expected 800x600 to be a standard resolution")
	}
}

func TestInspect_UniformImageAnomaly(t *testing.T) {
	path := writeImage(t, 100, 100, func(x, y int) color.Color {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	})

	props, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	if props.Contrast >= 5 {
		t.Errorf("Expected near-zero contrast, got %v", props.Contrast)
	}
	if !hasAnomaly(props, "near-uniform pixel data") {
		t.Errorf("Expected uniform-pixel anomaly, got %v", props.Anomalies)
	}
}

func TestInspect_SmallImageAnomaly(t *testing.T) {
	path := writeImage(t, 32, 32, varied)

	props, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !hasAnomaly(props, "unusually small dimensions") {
		t.Errorf("Expected small-dimensions anomaly, got %v", props.Anomalies)
	}
}

func TestInspect_ExtremeAspectRatio(t *testing.T) {
	path := writeImage(t, 1000, 100, varied)

	props, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !hasAnomaly(props, "extreme aspect ratio") {
		t.Errorf("Expected aspect-ratio anomaly, got %v", props.Anomalies)
	}
}

func TestInspect_MissingFile(t *testing.T) {
	if _, err := Inspect("/nonexistent/photo.png"); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestInspect_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-image.png")
	if err := os.WriteFile(path, []byte("plain text"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := Inspect(path); err == nil {
		t.Fatal("Expected decode error for non-image data")
	}
}

func hasAnomaly(p *Properties, want string) bool {
	for _, a := range p.Anomalies {
		if a == want {
			return true
		}
	}
	return false
}
