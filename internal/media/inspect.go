// Package media performs local inspection of attached media files: basic
// properties, luminance statistics, and metadata anomaly checks. It feeds
// the MediaScan agent's verdict and works without any external service.
package media

import (
	"fmt"
	"image"
	"math"
	"os"
	"time"

	// Register decoders for the formats we accept.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Properties describes a decoded image.
type Properties struct {
	Format      string    `json:"format"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	AspectRatio float64   `json:"aspect_ratio"`
	FileSize    int64     `json:"file_size"`
	ModifiedAt  time.Time `json:"modified_at"`

	// Luminance statistics over the decoded pixels
	Brightness float64 `json:"brightness"` // Mean, [0,255]
	Contrast   float64 `json:"contrast"`   // Stddev, [0,255]

	IsStandardResolution bool     `json:"is_standard_resolution"`
	Anomalies            []string `json:"anomalies"`
}

// standardResolutions are common capture/display dimensions. Images at an
// exact standard resolution are slightly more likely to be screenshots or
// re-encodes than camera originals.
var standardResolutions = [][2]int{
	{1920, 1080}, // Full HD
	{1280, 720},  // HD
	{3840, 2160}, // 4K
	{2560, 1440}, // 2K
	{800, 600},   // SVGA
	{1024, 768},  // XGA
}

// Inspect decodes the file at path and computes its properties.
func Inspect(path string) (*Properties, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat media file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open media file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	props := &Properties{
		Format:     format,
		Width:      width,
		Height:     height,
		FileSize:   info.Size(),
		ModifiedAt: info.ModTime(),
	}
	if height > 0 {
		props.AspectRatio = math.Round(float64(width)/float64(height)*100) / 100
	}
	props.Brightness, props.Contrast = luminanceStats(img)
	props.IsStandardResolution = isStandardResolution(width, height)
	props.Anomalies = detectAnomalies(props)

	return props, nil
}

// luminanceStats computes mean and standard deviation of pixel luminance.
// Large images are sampled on a grid to bound the cost.
func luminanceStats(img image.Image) (mean, stddev float64) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return 0, 0
	}

	// Sample at most ~256x256 points
	stepX := width / 256
	if stepX < 1 {
		stepX = 1
	}
	stepY := height / 256
	if stepY < 1 {
		stepY = 1
	}

	var sum, sumSq float64
	var n int
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			// Rec. 601 luma, scaled to [0,255]
			luma := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257
			sum += luma
			sumSq += luma * luma
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}

	mean = sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

func isStandardResolution(width, height int) bool {
	for _, res := range standardResolutions {
		if width == res[0] && height == res[1] {
			return true
		}
	}
	return false
}

// detectAnomalies flags properties that warrant attention in the verdict.
func detectAnomalies(p *Properties) []string {
	var anomalies []string

	if p.Width < 64 || p.Height < 64 {
		anomalies = append(anomalies, "unusually small dimensions")
	}
	if p.AspectRatio > 4 || (p.AspectRatio > 0 && p.AspectRatio < 0.25) {
		anomalies = append(anomalies, "extreme aspect ratio")
	}
	if p.Contrast < 5 {
		anomalies = append(anomalies, "near-uniform pixel data")
	}
	if p.FileSize > 0 && p.Width > 0 && p.Height > 0 {
		bytesPerPixel := float64(p.FileSize) / float64(p.Width*p.Height)
		if p.Format == "jpeg" && bytesPerPixel < 0.02 {
			anomalies = append(anomalies, "suspiciously high compression for content")
		}
	}

	return anomalies
}
