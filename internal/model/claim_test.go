package model

import (
	"math"
	"testing"
)

func TestNewClaim(t *testing.T) {
	claim := NewClaim("The Earth is round", "")

	if claim.ID == "" {
		t.Error("Expected claim ID to be set")
	}
	if claim.Text != "The Earth is round" {
		t.Errorf("Unexpected claim text: %s", claim.Text)
	}
	if claim.SubmittedAt.IsZero() {
		t.Error("Expected submission timestamp to be set")
	}
	if claim.HasMedia() {
		t.Error("Expected no media")
	}

	other := NewClaim("Same text", "")
	if claim.ID == other.ID {
		t.Error("Expected distinct IDs for distinct claims")
	}
}

func TestClaim_HasMedia(t *testing.T) {
	claim := NewClaim("photo claim", "/tmp/photo.jpg")
	if !claim.HasMedia() {
		t.Error("Expected media to be detected")
	}
}

func TestDecomposition_Specificity(t *testing.T) {
	tests := []struct {
		name   string
		decomp Decomposition
		want   float64
	}{
		{
			name:   "empty",
			decomp: Decomposition{},
			want:   0.0,
		},
		{
			name: "subject only",
			decomp: Decomposition{
				Subject: Field{Value: "The Great Wall"},
			},
			want: 0.3,
		},
		{
			name: "subject predicate object",
			decomp: Decomposition{
				Subject:   Field{Value: "The Great Wall of China"},
				Predicate: Field{Value: "is visible"},
				Object:    Field{Value: "from space"},
			},
			want: 0.9,
		},
		{
			name: "fully quantified",
			decomp: Decomposition{
				Subject:    Field{Value: "Unemployment"},
				Predicate:  Field{Value: "increased"},
				Object:     Field{Value: "last year"},
				Quantifier: Field{Value: "5%"},
			},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.decomp.Specificity()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Specificity() = %v, want %v", got, tt.want)
			}
		})
	}
}
